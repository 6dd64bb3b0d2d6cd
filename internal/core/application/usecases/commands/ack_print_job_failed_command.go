package commands

import (
	"errors"
	"strings"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/errs"
	"refill/internal/pkg/guard"
)

var ErrAckPrintJobFailedCommandIsNotConstructed = errors.New(
	"AckPrintJobFailedCommand must be created via NewAckPrintJobFailedCommand constructor",
)

// AckPrintJobFailedCommand is the print worker reporting a failed job.
type AckPrintJobFailedCommand struct { //nolint:recvcheck //using for validation
	printJobID   kernel.UUID
	errorMessage string

	guard guard.ConstructorGuard
}

func NewAckPrintJobFailedCommand(printJobID kernel.UUID, errorMessage string) (AckPrintJobFailedCommand, error) {
	errorMessage = strings.TrimSpace(errorMessage)

	var messageErr error
	if errorMessage == "" {
		messageErr = errs.NewValueIsRequiredError("error message")
	}

	if err := errors.Join(printJobID.Validate(), messageErr); err != nil {
		return AckPrintJobFailedCommand{}, err
	}

	return AckPrintJobFailedCommand{
		printJobID:   printJobID,
		errorMessage: errorMessage,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c AckPrintJobFailedCommand) Validate() error {
	return c.guard.Validate(ErrAckPrintJobFailedCommandIsNotConstructed)
}

func (c AckPrintJobFailedCommand) PrintJobID() kernel.UUID {
	return c.printJobID
}

func (c AckPrintJobFailedCommand) ErrorMessage() string {
	return c.errorMessage
}
