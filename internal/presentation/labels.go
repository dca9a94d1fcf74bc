package presentation

import (
	"strings"

	"github.com/MrSnakeDoc/secdash/internal/domain"
)

// Style classes per lifecycle state.
const (
	StyleMerged  = "bg-purple-100 text-purple-800"
	StyleOpen    = "bg-green-100 text-green-800"
	StyleClosed  = "bg-red-100 text-red-800"
	StyleDefault = "bg-gray-100 text-gray-800"
)

// TypeLabel returns the display label of a kind. Unknown kinds render as the
// raw value with the first underscore replaced by a space.
func (c *Config) TypeLabel(kind domain.Kind) string {
	if c != nil {
		if label, ok := c.Table.TypeLabels[string(kind)]; ok && label != "" {
			return label
		}
	}
	return strings.Replace(string(kind), "_", " ", 1)
}

// StateLabel returns the display text of a lifecycle state.
func StateLabel(state domain.LifecycleState) string {
	return string(state)
}

// StateStyle maps a lifecycle state to its badge style.
func StateStyle(state domain.LifecycleState) string {
	switch state {
	case domain.StateMerged:
		return StyleMerged
	case domain.StateOpen:
		return StyleOpen
	case domain.StateClosed:
		return StyleClosed
	default:
		return StyleDefault
	}
}
