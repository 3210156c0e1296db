package order

import (
	"fmt"
	"strings"

	"cafeteria/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Ready ──> Delivered
//	   │
//	   └──────> Cancelled
//
// Delivered and Cancelled are terminal. Ready never returns to Pending.
// Requesting the status an order already has is accepted as a no-op.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// It is also the "from" side of the event recorded when an order is placed.
	Unknown Status = iota

	// Pending is the initial status of a freshly placed order.
	Pending

	// Ready means the kitchen finished the order and it awaits pickup.
	Ready

	// Delivered is terminal: the customer received the order.
	Delivered

	// Cancelled is terminal: the order was dropped before it was prepared.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Ready:     "Ready",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// getTransitions lists, per status, the statuses reachable in one step.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal and Unknown statuses have no outgoing edges
	return map[Status][]Status{
		Pending: {Ready, Cancelled},
		Ready:   {Delivered},
	}
}

// ParseStatus resolves a status name case-insensitively, as sent by clients.
// Unknown names yield a ValueIsInvalidError.
func ParseStatus(name string) (Status, error) {
	trimmed := strings.TrimSpace(name)
	for status, str := range getStatusStrings() {
		if status != Unknown && strings.EqualFold(str, trimmed) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", name))
}

// Validate checks that the status is one of Pending, Ready, Delivered or Cancelled.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status, "Unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo checks whether next is reachable from s in one step.
// Returning nil for next == s keeps repeated requests idempotent.
//
// Returns:
//   - nil if the transition is allowed or is a no-op
//   - ValueIsInvalidError if next is not a valid status
//   - InvalidTransitionError otherwise
func (s Status) CanTransitionTo(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if s == next {
		return nil
	}
	for _, allowed := range getTransitions()[s] {
		if allowed == next {
			return nil
		}
	}
	return errs.NewInvalidTransitionError(s, next)
}

// TransitionTo returns next when the move is allowed. The boolean is false for a no-op.
func (s Status) TransitionTo(next Status) (Status, bool, error) {
	if err := s.CanTransitionTo(next); err != nil {
		return s, false, err
	}
	return next, s != next, nil
}
