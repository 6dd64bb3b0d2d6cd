package printjob

import (
	"fmt"

	"refill/internal/pkg/errs"
)

// Status is the lifecycle state of a print job.
//
//	Pending ──> Dispatched ──> Printed
//	                 └───────> Failed
//
// Printed and Failed are terminal. A failed job is never retried; callers
// create a new one.
type Status int

const (
	Unknown Status = iota
	Pending
	Dispatched
	Printed
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Pending:    "Pending",
		Dispatched: "Dispatched",
		Printed:    "Printed",
		Failed:     "Failed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "Pending",
		Dispatched: "Dispatched",
		Printed:    "Printed",
		Failed:     "Failed",
	}
}

// Validate checks that s is one of the defined statuses.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Printed || s == Failed
}

// Dispatch transitions Pending to Dispatched.
func (s Status) Dispatch() (Status, error) {
	return s.transition(Pending, Dispatched)
}

// MarkPrinted transitions Dispatched to Printed.
func (s Status) MarkPrinted() (Status, error) {
	return s.transition(Dispatched, Printed)
}

// MarkFailed transitions Dispatched to Failed.
func (s Status) MarkFailed() (Status, error) {
	return s.transition(Dispatched, Failed)
}

func (s Status) transition(from, to Status) (Status, error) {
	if s != from {
		return 0, errs.NewStateIsInvalidErrorWithCause(
			"print job status",
			s,
			fmt.Errorf("cannot mark print job as %s", to),
		)
	}
	return to, nil
}
