package domain

import (
	"strconv"
	"strings"
)

// Filter returns the records matching q, in their original order.
//
// A record matches when:
//   - the search term is empty, or the lower-cased, space-joined
//     summary/repository/author/file/hash contains the lower-cased term
//   - every set facet equals the record's field (year compared as a string)
//
// The input slice is never modified.
func Filter(records []Record, q QueryState) []Record {
	positions := Match(records, q)
	out := make([]Record, len(positions))
	for i, p := range positions {
		out[i] = records[p]
	}
	return out
}

// Match is Filter returning positions into records instead of the records.
func Match(records []Record, q QueryState) []int {
	term := strings.ToLower(q.SearchTerm)

	out := make([]int, 0, len(records))
	for i, r := range records {
		if r == nil {
			continue
		}
		if matchesSearch(r, term) && matchesFacets(r, q.Selections) {
			out = append(out, i)
		}
	}
	return out
}

// SearchText is the text a search term is matched against.
func SearchText(r Record) string {
	b := r.Info()
	return strings.Join([]string{
		b.Summary(),
		b.Repository,
		b.Author,
		b.FilePath,
		b.CommitHash,
	}, " ")
}

// matchesSearch expects term to be lower-cased already.
func matchesSearch(r Record, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(SearchText(r)), term)
}

func matchesFacets(r Record, s Selections) bool {
	b := r.Info()

	if s.Type != "" && string(r.Kind()) != s.Type {
		return false
	}
	if s.Year != "" && strconv.Itoa(b.Year) != s.Year {
		return false
	}
	if s.State != "" {
		state, ok := StateOf(r)
		if !ok || string(state) != s.State {
			return false
		}
	}
	if s.Repository != "" && b.Repository != s.Repository {
		return false
	}
	return true
}
