package domain

import (
	"sort"
	"strconv"
)

// FacetOptions holds the distinct values present in a record set, per facet.
type FacetOptions struct {
	Types        []Kind           `json:"types"`
	Years        []int            `json:"years"`
	States       []LifecycleState `json:"states"`
	Repositories []string         `json:"repositories"`
}

// DeriveFacets collects the distinct facet values of records.
// Years are sorted most recent first; the other facets keep first-seen order.
func DeriveFacets(records []Record) FacetOptions {
	opts := FacetOptions{
		Types:        []Kind{},
		Years:        []int{},
		States:       []LifecycleState{},
		Repositories: []string{},
	}

	seenKinds := make(map[Kind]bool)
	seenYears := make(map[int]bool)
	seenStates := make(map[LifecycleState]bool)
	seenRepos := make(map[string]bool)

	for _, r := range records {
		if r == nil {
			continue
		}
		b := r.Info()

		if k := r.Kind(); !seenKinds[k] {
			seenKinds[k] = true
			opts.Types = append(opts.Types, k)
		}
		if !seenYears[b.Year] {
			seenYears[b.Year] = true
			opts.Years = append(opts.Years, b.Year)
		}
		if s, ok := StateOf(r); ok && !seenStates[s] {
			seenStates[s] = true
			opts.States = append(opts.States, s)
		}
		if !seenRepos[b.Repository] {
			seenRepos[b.Repository] = true
			opts.Repositories = append(opts.Repositories, b.Repository)
		}
	}

	sort.Sort(sort.Reverse(sort.IntSlice(opts.Years)))
	return opts
}

// Values returns the options of one facet as the strings a selection would use.
func (o FacetOptions) Values(f Facet) []string {
	var out []string
	switch f {
	case FacetType:
		for _, k := range o.Types {
			out = append(out, string(k))
		}
	case FacetYear:
		for _, y := range o.Years {
			out = append(out, strconv.Itoa(y))
		}
	case FacetState:
		for _, s := range o.States {
			out = append(out, string(s))
		}
	case FacetRepository:
		out = append(out, o.Repositories...)
	}
	return out
}
