package graphql

import (
	"github.com/MrSnakeDoc/secdash/internal/domain"
	"github.com/MrSnakeDoc/secdash/internal/presentation"
)

func viewToMap(v presentation.View) map[string]interface{} {
	results := make([]map[string]interface{}, 0, len(v.Results))
	for _, row := range v.Results {
		results = append(results, rowToMap(row))
	}

	out := map[string]interface{}{
		"query": map[string]interface{}{
			"search_term": v.Query.SearchTerm,
			"type":        v.Query.Selections.Type,
			"year":        v.Query.Selections.Year,
			"state":       v.Query.Selections.State,
			"repository":  v.Query.Selections.Repository,
		},
		"count":        v.Count,
		"total":        v.Total,
		"results_text": v.ResultsText,
		"empty":        v.Empty,
		"filtered":     v.Filtered,
		"results":      results,
		"facets":       facetsToMap(v.Facets),
	}
	if v.EmptyState != nil {
		out["empty_state"] = map[string]interface{}{
			"title":       v.EmptyState.Title,
			"description": v.EmptyState.Description,
		}
	}
	return out
}

func rowToMap(row presentation.Row) map[string]interface{} {
	out := map[string]interface{}{
		"type":         row.Type,
		"type_label":   row.TypeLabel,
		"repository":   row.Repository,
		"year":         row.Year,
		"summary":      row.Summary,
		"title":        row.Title,
		"message":      row.Message,
		"author":       row.Author,
		"file_path":    row.FilePath,
		"sha":          row.SHA,
		"sha_label":    row.SHALabel,
		"link":         row.Link,
		"link_tooltip": row.LinkTooltip,
	}
	// pull request fields stay null on other kinds
	if row.Type == string(domain.KindPullRequest) {
		out["pr_number"] = row.PRNumber
		out["pr_id"] = row.PRID
	}
	if row.State != "" {
		out["state"] = row.State
		out["state_label"] = row.StateLabel
		out["state_style"] = row.StateStyle
	}
	return out
}

func facetsToMap(f domain.FacetOptions) map[string]interface{} {
	return map[string]interface{}{
		"types":        f.Values(domain.FacetType),
		"years":        f.Years,
		"states":       f.Values(domain.FacetState),
		"repositories": f.Repositories,
	}
}
