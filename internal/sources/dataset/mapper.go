package dataset

import (
	"fmt"

	"github.com/MrSnakeDoc/secdash/internal/domain"
)

// ToRecord converts a row into its typed record, enforcing the invariants
// between kind, lifecycle state and pull request fields.
func (r Row) ToRecord() (domain.Record, error) {
	kind, err := domain.ParseKind(r.Type)
	if err != nil {
		return nil, err
	}
	if r.Repo == "" {
		return nil, domain.ErrMissingRepository
	}
	if r.SHA == "" {
		return nil, domain.ErrMissingCommitHash
	}

	base := domain.Base{
		Repository: r.Repo,
		Year:       r.Year,
		Title:      r.Title,
		Message:    r.Message,
		Author:     r.User,
		FilePath:   r.Filename,
		CommitHash: r.SHA,
	}

	if kind != domain.KindPullRequest {
		if r.State != nil && *r.State != "" {
			return nil, fmt.Errorf("%w: %s has state %q", domain.ErrStateOnNonPullRequest, kind, *r.State)
		}
		if r.PRID != nil || r.PRNumber != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrPullRequestFieldsOnNonPullRequest, kind)
		}
		if kind == domain.KindCommit {
			return domain.CommitRecord{Base: base}, nil
		}
		return domain.CodeRecord{Base: base}, nil
	}

	if r.PRNumber == nil {
		return nil, domain.ErrMissingPullRequestNumber
	}
	pr := domain.PullRequestRecord{
		Base:   base,
		Number: *r.PRNumber,
	}
	if r.PRID != nil {
		pr.InternalID = *r.PRID
	}
	if r.State != nil && *r.State != "" {
		state, err := domain.ParseLifecycleState(*r.State)
		if err != nil {
			return nil, err
		}
		pr.State = state
	}
	return pr, nil
}

// FromRecord converts a record back into its row form.
func FromRecord(rec domain.Record) Row {
	b := rec.Info()
	row := Row{
		Repo:     b.Repository,
		Type:     string(rec.Kind()),
		Year:     b.Year,
		Title:    b.Title,
		User:     b.Author,
		Filename: b.FilePath,
		SHA:      b.CommitHash,
		Message:  b.Message,
	}
	if pr, ok := rec.(domain.PullRequestRecord); ok {
		id := pr.InternalID
		num := pr.Number
		row.PRID = &id
		row.PRNumber = &num
		if pr.State != "" {
			state := string(pr.State)
			row.State = &state
		}
	}
	return row
}

// MapRows converts rows to records, preserving order.
// The first invalid row aborts the mapping.
func MapRows(rows []Row) ([]domain.Record, error) {
	records := make([]domain.Record, 0, len(rows))
	for i, row := range rows {
		rec, err := row.ToRecord()
		if err != nil {
			return nil, fmt.Errorf("row %d (sha=%q): %w", i, row.SHA, err)
		}
		records = append(records, rec)
	}
	return records, nil
}
