// Package historyrepo stores the append-only cylinder history.
package historyrepo

import (
	"time"

	"refill/internal/core/domain/model/history"
	"refill/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EntryDTO is a row of cylinder_history. Seq is assigned by the database and
// breaks ties between entries sharing a timestamp.
type EntryDTO struct {
	Seq        int64     `gorm:"autoIncrement;->"`
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CylinderID uuid.UUID `gorm:"type:uuid;index"`
	EventType  string
	Details    string
	OrderID    *uuid.UUID `gorm:"type:uuid"`
	OccurredAt time.Time
}

func (EntryDTO) TableName() string {
	return "cylinder_history"
}

func fromDomain(e *history.Entry) EntryDTO {
	var orderID *uuid.UUID
	if id := e.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	return EntryDTO{
		ID:         e.ID().Bytes(),
		CylinderID: e.CylinderID().Bytes(),
		EventType:  e.EventType().String(),
		Details:    e.Details(),
		OrderID:    orderID,
		OccurredAt: e.Timestamp(),
	}
}

func toDomain(dto EntryDTO) (*history.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	cylinderID, err := kernel.UUIDFromBytes(dto.CylinderID[:])
	if err != nil {
		return nil, err
	}

	eventType, err := history.ParseEventType(dto.EventType)
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		oID, err := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if err != nil {
			return nil, err
		}
		orderID = &oID
	}

	return history.RestoreEntry(id, cylinderID, eventType, dto.Details, orderID, dto.OccurredAt)
}
