package cylinder

import (
	"fmt"

	"refill/internal/pkg/errs"
)

// State is the position of a cylinder in the refill workflow.
//
// State transitions:
//
//	Received ──> Ready ──> Delivered
//	    │          │           │
//	    └──────────┴───────────┴──> Problem (from any state, re-entry allowed)
type State int

const (
	// Unknown catches uninitialized State values.
	Unknown State = iota

	// Received is the initial state: the cylinder is in the shop, waiting to be filled.
	Received

	// Ready means the cylinder has been filled.
	Ready

	// Delivered means the cylinder went back to its customer.
	Delivered

	// Problem is terminal by convention. The cylinder carries occurrence notes.
	Problem
)

func getStateStrings() map[State]string {
	return map[State]string{
		Unknown:   "Unknown",
		Received:  "Received",
		Ready:     "Ready",
		Delivered: "Delivered",
		Problem:   "Problem",
	}
}

func getValidStateStrings() map[State]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[State]string{
		Received:  "Received",
		Ready:     "Ready",
		Delivered: "Delivered",
		Problem:   "Problem",
	}
}

// Validate rejects Unknown and out-of-range values, e.g. ones read from storage.
func (s State) Validate() error {
	if _, ok := getValidStateStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("cylinder state", fmt.Errorf("%d is not a valid state", s))
	}
	return nil
}

// String implements fmt.Stringer. Invalid values print as "Unknown".
func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// MarkReady transitions Received to Ready.
func (s State) MarkReady() (State, error) {
	if s != Received {
		return 0, errs.NewStateIsInvalidErrorWithCause(
			"cylinder state",
			s,
			fmt.Errorf("cannot mark cylinder as %s", Ready),
		)
	}
	return Ready, nil
}

// MarkDelivered transitions Ready to Delivered.
func (s State) MarkDelivered() (State, error) {
	if s != Ready {
		return 0, errs.NewStateIsInvalidErrorWithCause(
			"cylinder state",
			s,
			fmt.Errorf("cannot mark cylinder as %s", Delivered),
		)
	}
	return Delivered, nil
}
