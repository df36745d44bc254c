package order

import (
	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It implements a
// state machine with mode-specific transition sequences.
//
// Delivery orders:
//
//	pending -> preparing -> packing -> ready_for_delivery -> out_for_delivery -> completed
//
// Pickup and dine-in orders:
//
//	pending -> preparing -> ready_for_pickup -> completed
//
// cancelled is reachable from any non-terminal state and is terminal.
// Transitions are monotonic: the only legal targets from a given state
// are the next state in the order's mode sequence and cancelled.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// Pending is the initial status when an order is first created.
	Pending

	// Preparing indicates the kitchen has accepted the order.
	Preparing

	// Packing indicates a delivery order is being packed for dispatch.
	Packing

	// ReadyForDelivery indicates a delivery order is waiting to be
	// claimed into an agent's route.
	ReadyForDelivery

	// OutForDelivery indicates the order has been claimed by an agent
	// and carries a driver binding.
	OutForDelivery

	// ReadyForPickup indicates a pickup or dine-in order is waiting for
	// the customer.
	ReadyForPickup

	// Completed is a terminal state. Entering it stamps the completion
	// timestamp used for "completed today" aggregation.
	Completed

	// Cancelled is a terminal escape hatch reachable from any
	// non-terminal state.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "unknown",
		Pending:          "pending",
		Preparing:        "preparing",
		Packing:          "packing",
		ReadyForDelivery: "ready_for_delivery",
		OutForDelivery:   "out_for_delivery",
		ReadyForPickup:   "ready_for_pickup",
		Completed:        "completed",
		Cancelled:        "cancelled",
	}
}

// StatusFromString parses the wire representation of a status.
// Returns StatusUnknown with an error for anything it does not know.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidError("status")
}

// String returns the wire representation of the status.
// Implements fmt.Stringer and is safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the Status is one of the defined states.
func (s Status) Validate() error {
	if s <= StatusUnknown || s > Cancelled {
		return errs.NewValueIsInvalidError("status")
	}
	return nil
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// Next returns the state that follows s in the given mode's sequence.
// The second return value is false when s has no successor in that mode
// (terminal states, or states that do not belong to the sequence at all,
// such as packing for a pickup order).
func (s Status) Next(mode Mode) (Status, bool) {
	seq := mode.sequence()
	for i, st := range seq {
		if st == s && i+1 < len(seq) {
			return seq[i+1], true
		}
	}
	return StatusUnknown, false
}

// CanTransition checks whether target is a legal transition from s for
// the given mode. Legal targets are the next state in the mode sequence
// and Cancelled from any non-terminal state. A repeated identical target
// is also accepted: the synchronization layer may retry a transition it
// already applied, and a retry must not fail.
//
// Returns an InvalidTransitionError for anything else, including
// attempts to skip a state.
func (s Status) CanTransition(target Status, mode Mode) error {
	if err := target.Validate(); err != nil {
		return err
	}

	if target == s {
		return nil
	}

	if target == Cancelled {
		if s.IsTerminal() {
			return errs.NewInvalidTransitionError(s.String(), target.String())
		}
		return nil
	}

	if next, ok := s.Next(mode); ok && next == target {
		return nil
	}

	return errs.NewInvalidTransitionError(s.String(), target.String())
}
