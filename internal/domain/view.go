package domain

// FilteredView is everything a dashboard renders for one query state.
type FilteredView struct {
	Query   QueryState
	Records []Record
	Links   []string // Links[i] is the deep link of Records[i]
	Total   int      // size of the store the view was computed from
	Facets  FacetOptions
}

// Count is the number of matching records.
func (v FilteredView) Count() int { return len(v.Records) }

// Empty reports whether nothing matched. This is a normal outcome, not an error.
func (v FilteredView) Empty() bool { return len(v.Records) == 0 }

// Recompute derives the view for q from the full record set.
// Facet options always describe the full set, not the filtered subset.
func Recompute(records []Record, q QueryState) FilteredView {
	return Assemble(records, q, Filter(records, q))
}

// Assemble builds a view from an already computed match list.
func Assemble(records []Record, q QueryState, matched []Record) FilteredView {
	links := make([]string, len(matched))
	for i, r := range matched {
		links[i] = GitHubLink(r)
	}
	return FilteredView{
		Query:   q,
		Records: matched,
		Links:   links,
		Total:   len(records),
		Facets:  DeriveFacets(records),
	}
}
