package commands

import (
	"errors"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/guard"
)

var ErrAckPrintJobPrintedCommandIsNotConstructed = errors.New(
	"AckPrintJobPrintedCommand must be created via NewAckPrintJobPrintedCommand constructor",
)

// AckPrintJobPrintedCommand is the print worker confirming a job.
type AckPrintJobPrintedCommand struct { //nolint:recvcheck //using for validation
	printJobID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAckPrintJobPrintedCommand(printJobID kernel.UUID) (AckPrintJobPrintedCommand, error) {
	if err := printJobID.Validate(); err != nil {
		return AckPrintJobPrintedCommand{}, err
	}

	return AckPrintJobPrintedCommand{
		printJobID: printJobID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AckPrintJobPrintedCommand) Validate() error {
	return c.guard.Validate(ErrAckPrintJobPrintedCommandIsNotConstructed)
}

func (c AckPrintJobPrintedCommand) PrintJobID() kernel.UUID {
	return c.printJobID
}
