package order

import (
	"errors"
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// ErrIllegalTransition is the sentinel behind every TransitionError.
var ErrIllegalTransition = errors.New("illegal status transition")

// Status is the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Accepted ──> InTransit ──> Delivered
//	   │           │
//	   └───────────┴──> Cancelled
//
// Delivered and Cancelled are terminal. No transition skips a state and
// none leads backwards.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: placed by the customer, not yet accepted.
	Pending

	// Accepted means the restaurant took the order. Human-mode orders become
	// claimable by drivers; drone-mode orders wait for a drone mission.
	Accepted

	// InTransit means a driver or drone mission is bound to the order.
	InTransit

	// Delivered is terminal and implies the order has been settled.
	Delivered

	// Cancelled is terminal. Only Pending and Accepted orders can be cancelled.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Accepted:  "accepted",
		InTransit: "in-transit",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// TransitionError reports an attempt to move along an edge that is not in
// the transition graph.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrIllegalTransition, e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// ParseStatus converts a persisted or user supplied name back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsActive reports whether fulfillment or settlement may still be in flight.
func (s Status) IsActive() bool {
	return s == Pending || s == Accepted || s == InTransit
}

// CanTransitionTo reports whether next is a direct successor of s.
// Delivered and Cancelled are terminal and allow no successor.
//
// Parameters:
//   - next: The status the order would move to
//
// Returns:
//   - bool: true if the move is a single legal step, false otherwise
//
// Example:
//
//	Pending.CanTransitionTo(Accepted)   // true
//	Accepted.CanTransitionTo(Delivered) // false, must go through InTransit
//	Cancelled.CanTransitionTo(Pending)  // false
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case Pending:
		return next == Accepted || next == Cancelled
	case Accepted:
		return next == InTransit || next == Cancelled
	case InTransit:
		return next == Delivered
	default:
		return false
	}
}

// Accept transitions Pending -> Accepted.
func (s Status) Accept() (Status, error) {
	return s.transition(Accepted)
}

// StartDelivery transitions Accepted -> InTransit.
func (s Status) StartDelivery() (Status, error) {
	return s.transition(InTransit)
}

// Deliver transitions InTransit -> Delivered.
func (s Status) Deliver() (Status, error) {
	return s.transition(Delivered)
}

// Cancel transitions Pending or Accepted -> Cancelled. Once fulfillment
// has physically begun the order can no longer be cancelled.
func (s Status) Cancel() (Status, error) {
	return s.transition(Cancelled)
}

// ValidateCanHaveAssignment checks the status against the presence of a
// driver or drone assignment.
func (s Status) ValidateCanHaveAssignment(assigned bool) error {
	if assigned && (s == Pending || s == Unknown) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have an assignment", s),
		)
	}

	if !assigned && (s == InTransit || s == Delivered) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no assignment", s),
		)
	}

	return nil
}

func (s Status) transition(next Status) (Status, error) {
	if !s.CanTransitionTo(next) {
		return Unknown, &TransitionError{From: s, To: next}
	}
	return next, nil
}
