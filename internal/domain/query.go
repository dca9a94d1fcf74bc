package domain

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Facet is a dimension the record set can be constrained on.
type Facet string

const (
	FacetType       Facet = "type"
	FacetYear       Facet = "year"
	FacetState      Facet = "state"
	FacetRepository Facet = "repository"
)

// Facets lists every facet in display order.
var Facets = []Facet{FacetType, FacetYear, FacetState, FacetRepository}

// ErrUnknownFacet is returned by ParseFacet for a name that is not a facet.
var ErrUnknownFacet = errors.New("unknown facet")

// ParseFacet maps a facet name to a Facet. "repo" is accepted as an alias
// of "repository".
func ParseFacet(name string) (Facet, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "type":
		return FacetType, nil
	case "year":
		return FacetYear, nil
	case "state":
		return FacetState, nil
	case "repository", "repo":
		return FacetRepository, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFacet, name)
	}
}

// Selections holds one value per facet. An empty string means unset.
type Selections struct {
	Type       string `json:"type"`
	Year       string `json:"year"`
	State      string `json:"state"`
	Repository string `json:"repository"`
}

// Get returns the selection for a facet.
func (s Selections) Get(f Facet) string {
	switch f {
	case FacetType:
		return s.Type
	case FacetYear:
		return s.Year
	case FacetState:
		return s.State
	case FacetRepository:
		return s.Repository
	default:
		return ""
	}
}

// With returns a copy of s with facet f set to value.
func (s Selections) With(f Facet, value string) Selections {
	switch f {
	case FacetType:
		s.Type = value
	case FacetYear:
		s.Year = value
	case FacetState:
		s.State = value
	case FacetRepository:
		s.Repository = value
	}
	return s
}

// Active reports whether any facet is set.
func (s Selections) Active() bool {
	return s != Selections{}
}

// QueryState is the search term plus facet selections a view is computed from.
// It is a value: transitions return a new QueryState and never modify the
// receiver.
type QueryState struct {
	SearchTerm string     `json:"search_term"`
	Selections Selections `json:"facets"`
}

// SetSearchTerm replaces the search term. The text is kept as typed.
func SetSearchTerm(q QueryState, text string) QueryState {
	q.SearchTerm = text
	return q
}

// SetFacet sets (or, with an empty value, unsets) one facet.
func SetFacet(q QueryState, f Facet, value string) QueryState {
	q.Selections = q.Selections.With(f, value)
	return q
}

// ClearAll returns the default state: empty search, no facets.
func ClearAll() QueryState {
	return QueryState{}
}

// Canonical renders the state as a stable string, suitable as a cache key.
func (q QueryState) Canonical() string {
	v := url.Values{}
	v.Set("q", q.SearchTerm)
	for _, f := range Facets {
		v.Set(string(f), q.Selections.Get(f))
	}
	return v.Encode()
}
