// Package statuspolicy is the authoritative rule set for report status
// transitions.
//
// Transition rules:
//   - Submitted → In-Progress: organization users only
//   - In-Progress → Resolved: organization users only
//   - no transition ever moves a report backward or skips a step
//
// Templates hide illegal actions as a courtesy, but this package is the
// enforcement point: every transition request is validated here before any
// call reaches the report service.
package statuspolicy

import (
	"fmt"

	"github.com/projectguardian/rescuehub/internal/domain/models"
)

// statusRank orders statuses along the workflow. Higher never goes to lower.
var statusRank = map[string]int{
	models.StatusSubmitted:  0,
	models.StatusInProgress: 1,
	models.StatusResolved:   2,
}

// TransitionError describes a rejected transition request. It is distinct
// from network and backend errors so callers can tell a workflow violation
// from a failed call.
type TransitionError struct {
	From string
	To   string
	Role string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition %q → %q not permitted for role %q", e.From, e.To, e.Role)
}

// CanTransition validates a requested status edge for the acting role.
// It returns nil only for the two legal forward edges triggered by an
// organization user; everything else is rejected without touching the
// report service.
func CanTransition(actorRole, from, to string) error {
	reject := func() error {
		return &TransitionError{From: from, To: to, Role: actorRole}
	}

	if actorRole != models.RoleOrganization {
		return reject()
	}

	fromRank, ok := statusRank[from]
	if !ok {
		return reject()
	}
	toRank, ok := statusRank[to]
	if !ok {
		return reject()
	}

	// Exactly one step forward; backward and skipping edges are not in the
	// transition table.
	if toRank != fromRank+1 {
		return reject()
	}
	return nil
}

// NextStatus returns the single legal target status from the given one, or
// "" when the report is terminal. Views use this to render only the action
// that the workflow would accept.
func NextStatus(from string) string {
	switch from {
	case models.StatusSubmitted:
		return models.StatusInProgress
	case models.StatusInProgress:
		return models.StatusResolved
	default:
		return ""
	}
}

// IsTerminal reports whether a report in the given status can move no
// further.
func IsTerminal(status string) bool {
	return status == models.StatusResolved
}
