package history

import (
	"errors"
	"time"

	"refill/internal/core/domain/model/kernel"
)

var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

// Entry is one append-only line of a cylinder's audit trail. Entries are never
// changed; they are removed only together with their cylinder.
type Entry struct {
	id         kernel.UUID
	cylinderID kernel.UUID
	eventType  EventType
	details    string
	orderID    *kernel.UUID
	timestamp  time.Time

	isConstructed bool
}

// NewEntry stamps a new entry with the current time. orderID is optional.
func NewEntry(cylinderID kernel.UUID, eventType EventType, details string, orderID *kernel.UUID) (*Entry, error) {
	return RestoreEntry(kernel.NewUUID(), cylinderID, eventType, details, orderID, time.Now().UTC())
}

// RestoreEntry rebuilds an entry from storage.
func RestoreEntry(
	id, cylinderID kernel.UUID,
	eventType EventType,
	details string,
	orderID *kernel.UUID,
	timestamp time.Time,
) (*Entry, error) {
	if err := errors.Join(id.Validate(), cylinderID.Validate(), eventType.Validate()); err != nil {
		return nil, err
	}

	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return nil, err
		}
		o := *orderID
		orderID = &o
	}

	return &Entry{
		id:            id,
		cylinderID:    cylinderID,
		eventType:     eventType,
		details:       details,
		orderID:       orderID,
		timestamp:     timestamp,
		isConstructed: true,
	}, nil
}

func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

func (e *Entry) ID() kernel.UUID {
	return e.id
}

func (e *Entry) CylinderID() kernel.UUID {
	return e.cylinderID
}

func (e *Entry) EventType() EventType {
	return e.eventType
}

func (e *Entry) Details() string {
	return e.details
}

// OrderID returns the order the event happened in, if any.
func (e *Entry) OrderID() *kernel.UUID {
	return e.orderID
}

func (e *Entry) Timestamp() time.Time {
	return e.timestamp
}
