package dashboard

import (
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/secdash/internal/domain"
)

// Op names a query state transition.
type Op string

const (
	OpSetSearch Op = "set_search"
	OpSetFacet  Op = "set_facet"
	OpClear     Op = "clear"
)

// ErrUnknownOp is returned by Apply for an unsupported action.
var ErrUnknownOp = errors.New("unknown action")

// Action is one user interaction on the dashboard.
type Action struct {
	Op    Op     `json:"op"`
	Facet string `json:"facet,omitempty"`
	Value string `json:"value,omitempty"`
}

// Apply returns the state reached from q by a. q is never modified.
func Apply(q domain.QueryState, a Action) (domain.QueryState, error) {
	switch a.Op {
	case OpSetSearch:
		return domain.SetSearchTerm(q, a.Value), nil
	case OpSetFacet:
		f, err := domain.ParseFacet(a.Facet)
		if err != nil {
			return q, err
		}
		return domain.SetFacet(q, f, a.Value), nil
	case OpClear:
		return domain.ClearAll(), nil
	default:
		return q, fmt.Errorf("%w: %q", ErrUnknownOp, a.Op)
	}
}
