package order

import (
	"fmt"

	"refill/internal/pkg/errs"
)

// Status represents the lifecycle state of a refill order.
//
// State transitions:
//
//	Open ──> ReadyForPickup ──> Completed
//
// Open orders accept cylinders. An order becomes ReadyForPickup only through
// the rollup (every cylinder Ready) and Completed only through Complete
// (every cylinder Delivered).
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Open is the initial status. Cylinders can be attached and filled.
	Open

	// ReadyForPickup means every attached cylinder is filled and the customer
	// can collect them.
	ReadyForPickup

	// Completed means every cylinder was delivered. No further transitions.
	Completed
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Open:           "Open",
		ReadyForPickup: "ReadyForPickup",
		Completed:      "Completed",
	}
}

// getValidStatusStrings returns only the statuses an order can be in.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Open:           "Open",
		ReadyForPickup: "ReadyForPickup",
		Completed:      "Completed",
	}
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Open, ReadyForPickup, Completed.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Invalid values print as "Unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ValidateModify checks that cylinders may be attached, which is only allowed
// while the order is Open.
func (s Status) ValidateModify() error {
	if s != Open {
		return errs.NewStateIsInvalidErrorWithCause(
			"order status",
			s,
			fmt.Errorf("cylinders can only be added to an %s order", Open),
		)
	}
	return nil
}

// ValidateNotify checks that the customer may be notified, which is only
// allowed while the order is ReadyForPickup.
func (s Status) ValidateNotify() error {
	if s != ReadyForPickup {
		return errs.NewStateIsInvalidErrorWithCause(
			"order status",
			s,
			fmt.Errorf("only %s orders can be notified", ReadyForPickup),
		)
	}
	return nil
}

// MarkReadyForPickup transitions Open to ReadyForPickup.
//
// Returns:
//   - (ReadyForPickup, nil) on valid transition
//   - (0, error) if the order is not Open
func (s Status) MarkReadyForPickup() (Status, error) {
	if s != Open {
		return 0, errs.NewStateIsInvalidErrorWithCause(
			"order status",
			s,
			fmt.Errorf("%s is not a valid status to become %s", s, ReadyForPickup),
		)
	}
	return ReadyForPickup, nil
}

// Complete transitions ReadyForPickup to Completed.
//
// Returns:
//   - (Completed, nil) on valid transition
//   - (0, error) if the order is not ReadyForPickup
func (s Status) Complete() (Status, error) {
	if s != ReadyForPickup {
		return 0, errs.NewStateIsInvalidErrorWithCause(
			"order status",
			s,
			fmt.Errorf("%s is not a valid status to complete", s),
		)
	}
	return Completed, nil
}
