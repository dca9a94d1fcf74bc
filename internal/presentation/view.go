package presentation

import (
	"github.com/MrSnakeDoc/secdash/internal/domain"
)

// Row is one rendered record.
type Row struct {
	Type        string `json:"type"`
	TypeLabel   string `json:"type_label"`
	Repository  string `json:"repository"`
	Year        int    `json:"year"`
	Summary     string `json:"summary"`
	Title       string `json:"title,omitempty"`
	Message     string `json:"message,omitempty"`
	Author      string `json:"author"`
	FilePath    string `json:"file_path"`
	SHA         string `json:"sha"`
	SHALabel    string `json:"sha_label"`
	PRNumber    int    `json:"pr_number,omitempty"`
	PRID        int64  `json:"pr_id,omitempty"`
	State       string `json:"state,omitempty"`
	StateLabel  string `json:"state_label,omitempty"`
	StateStyle  string `json:"state_style,omitempty"`
	Link        string `json:"link"`
	LinkTooltip string `json:"link_tooltip,omitempty"`
}

// View is a FilteredView ready to be serialized for a client.
type View struct {
	Query       domain.QueryState   `json:"query"`
	Count       int                 `json:"count"`
	Total       int                 `json:"total"`
	ResultsText string              `json:"results_text"`
	Empty       bool                `json:"empty"`
	Filtered    bool                `json:"filtered"` // a search term or facet is set
	EmptyState  *EmptyState         `json:"empty_state,omitempty"`
	Results     []Row               `json:"results"`
	Facets      domain.FacetOptions `json:"facets"`
}

// RenderRecord maps a record and its link to display fields.
func (c *Config) RenderRecord(r domain.Record, link string) Row {
	b := r.Info()
	row := Row{
		Type:       string(r.Kind()),
		TypeLabel:  c.TypeLabel(r.Kind()),
		Repository: b.Repository,
		Year:       b.Year,
		Summary:    b.Summary(),
		Title:      b.Title,
		Message:    b.Message,
		Author:     b.Author,
		FilePath:   b.FilePath,
		SHA:        b.CommitHash,
		SHALabel:   c.shaPrefix() + b.CommitHash,
		Link:       link,
	}
	if c != nil {
		row.LinkTooltip = c.Table.Actions["viewOnGithub"]
	}

	if pr, ok := r.(domain.PullRequestRecord); ok {
		row.PRNumber = pr.Number
		row.PRID = pr.InternalID
	}
	if state, ok := domain.StateOf(r); ok && state != "" {
		row.State = string(state)
		row.StateLabel = StateLabel(state)
		row.StateStyle = StateStyle(state)
	}
	return row
}

// RenderView maps a filtered view to its client form. The empty state is
// attached only when nothing matched.
func (c *Config) RenderView(v domain.FilteredView) View {
	out := View{
		Query:    v.Query,
		Count:    v.Count(),
		Total:    v.Total,
		Empty:    v.Empty(),
		Filtered: v.Query.SearchTerm != "" || v.Query.Selections.Active(),
		Results:  make([]Row, 0, v.Count()),
		Facets:   v.Facets,
	}
	if c != nil {
		out.ResultsText = c.Search.ResultsText
		if v.Empty() {
			es := c.EmptyState
			out.EmptyState = &es
		}
	}
	for i, r := range v.Records {
		out.Results = append(out.Results, c.RenderRecord(r, v.Links[i]))
	}
	return out
}

func (c *Config) shaPrefix() string {
	if c == nil {
		return ""
	}
	return c.Table.SHAPrefix
}
