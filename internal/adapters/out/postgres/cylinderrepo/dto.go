// Package cylinderrepo persists cylinders and allocates their sequential
// numbers with GORM.
package cylinderrepo

import (
	"time"

	"refill/internal/core/domain/model/cylinder"
	"refill/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CylinderDTO is a row of the cylinders table. LabelToken is NULL for
// unlabelled cylinders, so the unique constraint ignores them.
type CylinderDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	SequentialNumber int64     `gorm:"uniqueIndex:cylinders_sequential_number_key"`
	LabelToken       *string   `gorm:"uniqueIndex:cylinders_label_token_key"`
	State            int       `gorm:"type:smallint"`
	OccurrenceNotes  string
	CreatedAt        time.Time
	Version          int
}

func (CylinderDTO) TableName() string {
	return "cylinders"
}

func fromDomain(c *cylinder.Cylinder) CylinderDTO {
	var label *string
	if token, ok := c.LabelToken(); ok {
		s := token.String()
		label = &s
	}

	return CylinderDTO{
		ID:               c.ID().Bytes(),
		SequentialNumber: c.SequentialNumber(),
		LabelToken:       label,
		State:            int(c.State()),
		OccurrenceNotes:  c.OccurrenceNotes(),
		CreatedAt:        c.CreatedAt(),
		Version:          c.Version(),
	}
}

func toDomain(dto CylinderDTO) (*cylinder.Cylinder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var label *kernel.LabelToken
	if dto.LabelToken != nil {
		token, err := kernel.NewLabelToken(*dto.LabelToken)
		if err != nil {
			return nil, err
		}
		label = &token
	}

	return cylinder.RestoreCylinder(
		id,
		dto.SequentialNumber,
		label,
		cylinder.State(dto.State),
		dto.OccurrenceNotes,
		dto.CreatedAt,
		dto.Version,
	)
}
