package cylinder

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/errs"
)

var (
	// ErrCylinderIsNotConstructed is returned when a Cylinder was not created through
	// NewCylinder or RestoreCylinder.
	ErrCylinderIsNotConstructed = errors.New("Cylinder must be created via NewCylinder constructor")
)

// Cylinder is a physical, reusable gas container tracked through the refill
// workflow. It is an aggregate root.
//
// Cylinder follows these invariants:
//   - The sequential number is positive and never changes
//   - The state only changes through MarkReady, MarkDelivered and ReportProblem
//   - Occurrence notes are present only in the Problem state
//
// Label uniqueness across cylinders is not checked here; the command that
// assigns a label owns that check.
type Cylinder struct {
	id               kernel.UUID
	sequentialNumber int64
	labelToken       *kernel.LabelToken
	state            State
	occurrenceNotes  string
	createdAt        time.Time

	// version is the optimistic concurrency token read from storage.
	version int

	isConstructed bool
}

// NewCylinder registers a cylinder in the Received state. The sequential number
// must already be allocated from the atomic counter of the unit of work.
//
// Example:
//
//	seq, err := cylinderRepo.NextSequentialNumber(ctx)
//	if err != nil {
//	    return err
//	}
//	c, received, err := cylinder.NewCylinder(kernel.NewUUID(), seq)
func NewCylinder(id kernel.UUID, sequentialNumber int64) (*Cylinder, ReceivedEvent, error) {
	c := &Cylinder{
		state:         Received,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setSequentialNumber(sequentialNumber),
	); err != nil {
		return nil, ReceivedEvent{}, err
	}

	return c, ReceivedEvent{
		CylinderID:       c.id,
		SequentialNumber: c.sequentialNumber,
		OccurredAt:       c.createdAt,
	}, nil
}

// RestoreCylinder rebuilds a cylinder from storage. No events are produced.
func RestoreCylinder(
	id kernel.UUID,
	sequentialNumber int64,
	labelToken *kernel.LabelToken,
	state State,
	occurrenceNotes string,
	createdAt time.Time,
	version int,
) (*Cylinder, error) {
	c := &Cylinder{
		occurrenceNotes: occurrenceNotes,
		createdAt:       createdAt,
		version:         version,
		isConstructed:   true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setSequentialNumber(sequentialNumber),
		c.setState(state),
		c.restoreLabel(labelToken),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate ensures the Cylinder was built by NewCylinder or RestoreCylinder.
func (c *Cylinder) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCylinderIsNotConstructed
	}
	return nil
}

// IsEqual compares cylinders by identifier.
func (c *Cylinder) IsEqual(other *Cylinder) bool {
	return other != nil && c.id.IsEqual(other.id)
}

func (c *Cylinder) ID() kernel.UUID {
	return c.id
}

func (c *Cylinder) SequentialNumber() int64 {
	return c.sequentialNumber
}

// LabelToken returns the assigned token and whether one is assigned.
func (c *Cylinder) LabelToken() (kernel.LabelToken, bool) {
	if c.labelToken == nil {
		return kernel.LabelToken{}, false
	}
	return *c.labelToken, true
}

func (c *Cylinder) State() State {
	return c.state
}

// OccurrenceNotes returns the problem description; empty unless State is Problem.
func (c *Cylinder) OccurrenceNotes() string {
	return c.occurrenceNotes
}

func (c *Cylinder) CreatedAt() time.Time {
	return c.createdAt
}

// Version returns the concurrency token the cylinder was loaded with.
func (c *Cylinder) Version() int {
	return c.version
}

// MarkReady records that the cylinder was filled. Only Received cylinders can
// become Ready; any other state fails with errs.ErrStateIsInvalid carrying it.
func (c *Cylinder) MarkReady() (MarkedReadyEvent, error) {
	next, err := c.state.MarkReady()
	if err != nil {
		return MarkedReadyEvent{}, err
	}

	c.state = next
	return MarkedReadyEvent{CylinderID: c.id, OccurredAt: time.Now().UTC()}, nil
}

// MarkDelivered records that the cylinder was handed back. Only Ready
// cylinders can be delivered, so Received → Delivered is rejected.
func (c *Cylinder) MarkDelivered() (DeliveredEvent, error) {
	next, err := c.state.MarkDelivered()
	if err != nil {
		return DeliveredEvent{}, err
	}

	c.state = next
	return DeliveredEvent{CylinderID: c.id, OccurredAt: time.Now().UTC()}, nil
}

// ReportProblem moves the cylinder to Problem from any state, including
// Problem itself. Blank notes are rejected. No event is returned; callers
// append a ProblemReported history entry.
func (c *Cylinder) ReportProblem(notes string) error {
	if strings.TrimSpace(notes) == "" {
		return errs.NewValueIsRequiredError("occurrence notes")
	}

	c.state = Problem
	c.occurrenceNotes = notes
	return nil
}

// AssignLabel replaces the cylinder's label token. Assigning the token the
// cylinder already carries is a no-op and returns a nil event.
func (c *Cylinder) AssignLabel(token kernel.LabelToken) (*LabelAssignedEvent, error) {
	if err := token.Validate(); err != nil {
		return nil, err
	}

	previous := ""
	if c.labelToken != nil {
		if c.labelToken.IsEqual(token) {
			return nil, nil
		}
		previous = c.labelToken.String()
	}

	c.labelToken = &token
	return &LabelAssignedEvent{
		CylinderID:         c.id,
		LabelToken:         token.String(),
		PreviousLabelToken: previous,
		OccurredAt:         time.Now().UTC(),
	}, nil
}

func (c *Cylinder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Cylinder) setSequentialNumber(n int64) error {
	if n <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"sequential number",
			fmt.Errorf("%d is not greater than 0", n),
		)
	}
	c.sequentialNumber = n
	return nil
}

func (c *Cylinder) setState(state State) error {
	if err := state.Validate(); err != nil {
		return err
	}
	c.state = state
	return nil
}

func (c *Cylinder) restoreLabel(token *kernel.LabelToken) error {
	if token == nil {
		return nil
	}
	if err := token.Validate(); err != nil {
		return err
	}
	t := *token
	c.labelToken = &t
	return nil
}
