package presentation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MrSnakeDoc/secdash/internal/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.Header.Title != "Security Vulnerability Dashboard" {
		t.Errorf("Header.Title = %q", cfg.Header.Title)
	}
	if cfg.EmptyState.Title != "No vulnerabilities found" {
		t.Errorf("EmptyState.Title = %q", cfg.EmptyState.Title)
	}
	if cfg.Search.ResultsText != "vulnerabilities found" {
		t.Errorf("Search.ResultsText = %q", cfg.Search.ResultsText)
	}
	if cfg.Table.SHAPrefix != "SHA: " {
		t.Errorf("Table.SHAPrefix = %q", cfg.Table.SHAPrefix)
	}
	if len(cfg.Tabs) != 3 {
		t.Errorf("Tabs = %d entries, want 3", len(cfg.Tabs))
	}
}

func TestTypeLabel(t *testing.T) {
	cfg := Default()

	tests := []struct {
		kind domain.Kind
		want string
	}{
		{domain.KindCommit, "Commit"},
		{domain.KindPullRequest, "Pull Request"},
		{domain.KindCode, "Code"},
		{domain.Kind("security_advisory"), "security advisory"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := cfg.TypeLabel(tt.kind); got != tt.want {
				t.Errorf("TypeLabel(%s) = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

func TestTypeLabelNilConfig(t *testing.T) {
	var cfg *Config
	if got := cfg.TypeLabel(domain.KindPullRequest); got != "pull request" {
		t.Errorf("TypeLabel() on nil config = %q, want raw fallback", got)
	}
}

func TestStateStyle(t *testing.T) {
	tests := []struct {
		state domain.LifecycleState
		want  string
	}{
		{domain.StateMerged, StyleMerged},
		{domain.StateOpen, StyleOpen},
		{domain.StateClosed, StyleClosed},
		{"", StyleDefault},
		{"draft", StyleDefault},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			if got := StateStyle(tt.state); got != tt.want {
				t.Errorf("StateStyle(%q) = %q, want %q", tt.state, got, tt.want)
			}
		})
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "ui.yaml")

	content := `header:
  title: Acme Security
emptyState:
  title: Nothing here
  description: Loosen the filters
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Header.Title != "Acme Security" {
		t.Errorf("Header.Title = %q, want override", cfg.Header.Title)
	}
	if cfg.EmptyState.Title != "Nothing here" {
		t.Errorf("EmptyState.Title = %q, want override", cfg.EmptyState.Title)
	}
	if cfg.Search.Placeholder == "" {
		t.Error("keys missing from the file should keep their default")
	}
	if cfg.TypeLabel(domain.KindCode) != "Code" {
		t.Error("type labels should keep their default")
	}
}

func TestLoadFileNotFound(t *testing.T) {
	if _, err := LoadFile("/nonexistent/ui.yaml"); err == nil {
		t.Error("LoadFile() with non-existent file should return error")
	}
}

func TestRenderRecordPullRequest(t *testing.T) {
	cfg := Default()
	rec := domain.PullRequestRecord{
		Base: domain.Base{
			Repository: "acme/api-server",
			Year:       2024,
			Title:      "Patch XSS vulnerability in comment system",
			Author:     "dev-alice",
			FilePath:   "comments/render.js",
			CommitHash: "b2c3d4e5f6g7",
		},
		InternalID: 123,
		Number:     456,
		State:      domain.StateMerged,
	}

	row := cfg.RenderRecord(rec, domain.GitHubLink(rec))

	if row.TypeLabel != "Pull Request" {
		t.Errorf("TypeLabel = %q", row.TypeLabel)
	}
	if row.SHALabel != "SHA: b2c3d4e5f6g7" {
		t.Errorf("SHALabel = %q", row.SHALabel)
	}
	if row.StateStyle != StyleMerged || row.StateLabel != "merged" {
		t.Errorf("state = %q/%q", row.StateLabel, row.StateStyle)
	}
	if row.PRNumber != 456 || row.PRID != 123 {
		t.Errorf("PR = #%d (id %d)", row.PRNumber, row.PRID)
	}
	if row.Link != "https://github.com/acme/api-server/pull/456" {
		t.Errorf("Link = %q", row.Link)
	}
	if row.LinkTooltip != "View on GitHub" {
		t.Errorf("LinkTooltip = %q", row.LinkTooltip)
	}
}

func TestRenderRecordCommitHasNoState(t *testing.T) {
	cfg := Default()
	rec := domain.CommitRecord{Base: domain.Base{Repository: "acme/web-app", CommitHash: "a1b2", Message: "fix"}}

	row := cfg.RenderRecord(rec, domain.GitHubLink(rec))
	if row.State != "" || row.StateStyle != "" {
		t.Errorf("commit rendered with state %q/%q", row.State, row.StateStyle)
	}
	if row.Summary != "fix" {
		t.Errorf("Summary = %q, want message fallback", row.Summary)
	}
}

func TestRenderViewEmptyState(t *testing.T) {
	cfg := Default()
	records := []domain.Record{
		domain.CommitRecord{Base: domain.Base{Repository: "acme/web-app", Year: 2024, CommitHash: "a1"}},
	}

	empty := cfg.RenderView(domain.Recompute(records, domain.QueryState{SearchTerm: "nothing"}))
	if !empty.Empty || empty.Count != 0 || empty.Total != 1 {
		t.Errorf("empty view = %+v", empty)
	}
	if empty.EmptyState == nil || empty.EmptyState.Title != "No vulnerabilities found" {
		t.Errorf("EmptyState = %+v", empty.EmptyState)
	}
	if empty.Results == nil {
		t.Error("Results should be an empty list, not nil")
	}

	full := cfg.RenderView(domain.Recompute(records, domain.QueryState{}))
	if full.Empty || full.EmptyState != nil || full.Count != 1 {
		t.Errorf("full view = %+v", full)
	}
	if full.ResultsText != "vulnerabilities found" {
		t.Errorf("ResultsText = %q", full.ResultsText)
	}
}

func TestRenderViewFiltered(t *testing.T) {
	cfg := Default()
	records := []domain.Record{
		domain.CommitRecord{Base: domain.Base{Repository: "acme/web-app", Year: 2024, CommitHash: "a1"}},
	}

	tests := []struct {
		name string
		q    domain.QueryState
		want bool
	}{
		{name: "no query", q: domain.QueryState{}, want: false},
		{name: "search term", q: domain.QueryState{SearchTerm: "acme"}, want: true},
		{name: "facet only", q: domain.SetFacet(domain.QueryState{}, domain.FacetYear, "2024"), want: true},
		{name: "cleared", q: domain.ClearAll(), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.RenderView(domain.Recompute(records, tt.q)).Filtered; got != tt.want {
				t.Errorf("Filtered = %v, want %v", got, tt.want)
			}
		})
	}
}
