package commands

import (
	"errors"
	"strings"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/errs"
	"refill/internal/pkg/guard"
)

var ErrReportCylinderProblemCommandIsNotConstructed = errors.New(
	"ReportCylinderProblemCommand must be created via NewReportCylinderProblemCommand constructor",
)

// DefaultProblemType classifies problems reported without a type.
const DefaultProblemType = "Other"

// ReportCylinderProblemCommand flags a cylinder as having a problem, such as
// a leak or a damaged valve.
type ReportCylinderProblemCommand struct { //nolint:recvcheck //using for validation
	cylinderID  kernel.UUID
	problemType string
	notes       string

	guard guard.ConstructorGuard
}

func NewReportCylinderProblemCommand(
	cylinderID kernel.UUID,
	problemType, notes string,
) (ReportCylinderProblemCommand, error) {
	cmd := ReportCylinderProblemCommand{
		problemType: strings.TrimSpace(problemType),
		notes:       strings.TrimSpace(notes),
		guard:       guard.NewConstructorGuard(),
	}

	if cmd.problemType == "" {
		cmd.problemType = DefaultProblemType
	}

	var notesErr error
	if cmd.notes == "" {
		notesErr = errs.NewValueIsRequiredError("notes")
	}

	if err := errors.Join(cylinderID.Validate(), notesErr); err != nil {
		return ReportCylinderProblemCommand{}, err
	}

	cmd.cylinderID = cylinderID
	return cmd, nil
}

func (c ReportCylinderProblemCommand) Validate() error {
	return c.guard.Validate(ErrReportCylinderProblemCommandIsNotConstructed)
}

func (c ReportCylinderProblemCommand) CylinderID() kernel.UUID {
	return c.cylinderID
}

func (c ReportCylinderProblemCommand) ProblemType() string {
	return c.problemType
}

func (c ReportCylinderProblemCommand) Notes() string {
	return c.notes
}

// OccurrenceNotes is what the cylinder and its history record: "[type] notes".
func (c ReportCylinderProblemCommand) OccurrenceNotes() string {
	return "[" + c.problemType + "] " + c.notes
}
