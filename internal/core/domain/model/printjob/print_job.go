package printjob

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/errs"
)

var (
	// ErrPrintJobIsNotConstructed is returned when a PrintJob was not created through
	// NewPrintJob or RestorePrintJob.
	ErrPrintJobIsNotConstructed = errors.New("PrintJob must be created via NewPrintJob constructor")
)

// PrintJob is a request to print a batch of cylinder labels on an external
// worker. Acknowledgments arrive asynchronously and move the job to a
// terminal status.
type PrintJob struct {
	id           kernel.UUID
	storeID      kernel.UUID
	quantity     int
	templateID   string
	status       Status
	errorMessage string

	createdAt    time.Time
	dispatchedAt *time.Time
	completedAt  *time.Time

	version int

	isConstructed bool
}

// NewPrintJob creates a Pending job. Quantity must be positive; templateID may
// be empty.
func NewPrintJob(id, storeID kernel.UUID, quantity int, templateID string) (*PrintJob, CreatedEvent, error) {
	j := &PrintJob{
		templateID:    strings.TrimSpace(templateID),
		status:        Pending,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		j.setID(id),
		j.setStoreID(storeID),
		j.setQuantity(quantity),
	); err != nil {
		return nil, CreatedEvent{}, err
	}

	return j, CreatedEvent{
		PrintJobID: j.id,
		StoreID:    j.storeID,
		Quantity:   j.quantity,
		TemplateID: j.templateID,
		OccurredAt: j.createdAt,
	}, nil
}

// RestorePrintJob rebuilds a job from storage.
func RestorePrintJob(
	id, storeID kernel.UUID,
	quantity int,
	templateID string,
	status Status,
	errorMessage string,
	createdAt time.Time,
	dispatchedAt, completedAt *time.Time,
	version int,
) (*PrintJob, error) {
	j := &PrintJob{
		templateID:    templateID,
		errorMessage:  errorMessage,
		createdAt:     createdAt,
		dispatchedAt:  dispatchedAt,
		completedAt:   completedAt,
		version:       version,
		isConstructed: true,
	}

	if err := errors.Join(
		j.setID(id),
		j.setStoreID(storeID),
		j.setQuantity(quantity),
		j.setStatus(status),
	); err != nil {
		return nil, err
	}

	return j, nil
}

func (j *PrintJob) Validate() error {
	if j == nil || !j.isConstructed {
		return ErrPrintJobIsNotConstructed
	}
	return nil
}

func (j *PrintJob) ID() kernel.UUID {
	return j.id
}

func (j *PrintJob) StoreID() kernel.UUID {
	return j.storeID
}

func (j *PrintJob) Quantity() int {
	return j.quantity
}

func (j *PrintJob) TemplateID() string {
	return j.templateID
}

func (j *PrintJob) Status() Status {
	return j.status
}

func (j *PrintJob) ErrorMessage() string {
	return j.errorMessage
}

func (j *PrintJob) CreatedAt() time.Time {
	return j.createdAt
}

func (j *PrintJob) DispatchedAt() *time.Time {
	return j.dispatchedAt
}

func (j *PrintJob) CompletedAt() *time.Time {
	return j.completedAt
}

func (j *PrintJob) Version() int {
	return j.version
}

// MarkAsDispatched records that the job was handed to a dispatcher.
func (j *PrintJob) MarkAsDispatched() error {
	next, err := j.status.Dispatch()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	j.status = next
	j.dispatchedAt = &now
	return nil
}

// MarkAsPrinted completes a Dispatched job.
func (j *PrintJob) MarkAsPrinted() (PrintedEvent, error) {
	next, err := j.status.MarkPrinted()
	if err != nil {
		return PrintedEvent{}, err
	}

	now := time.Now().UTC()
	j.status = next
	j.completedAt = &now
	return PrintedEvent{PrintJobID: j.id, OccurredAt: now}, nil
}

// MarkAsFailed terminates a Dispatched job with the reported error. A blank
// message is rejected before the status is checked.
func (j *PrintJob) MarkAsFailed(message string) (FailedEvent, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return FailedEvent{}, errs.NewValueIsRequiredError("error message")
	}

	next, err := j.status.MarkFailed()
	if err != nil {
		return FailedEvent{}, err
	}

	now := time.Now().UTC()
	j.status = next
	j.errorMessage = message
	j.completedAt = &now
	return FailedEvent{PrintJobID: j.id, ErrorMessage: message, OccurredAt: now}, nil
}

func (j *PrintJob) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	j.id = id
	return nil
}

func (j *PrintJob) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("store id", err)
	}
	j.storeID = storeID
	return nil
}

func (j *PrintJob) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	j.quantity = quantity
	return nil
}

func (j *PrintJob) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	j.status = status
	return nil
}
