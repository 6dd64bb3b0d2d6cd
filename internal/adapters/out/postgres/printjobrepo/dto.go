// Package printjobrepo persists label print jobs with GORM.
package printjobrepo

import (
	"time"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/printjob"

	"github.com/google/uuid"
)

type PrintJobDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	StoreID      uuid.UUID `gorm:"type:uuid"`
	Quantity     int
	TemplateID   string
	Status       int `gorm:"type:smallint"`
	ErrorMessage string
	CreatedAt    time.Time
	DispatchedAt *time.Time
	CompletedAt  *time.Time
	Version      int
}

func (PrintJobDTO) TableName() string {
	return "print_jobs"
}

func fromDomain(j *printjob.PrintJob) PrintJobDTO {
	return PrintJobDTO{
		ID:           j.ID().Bytes(),
		StoreID:      j.StoreID().Bytes(),
		Quantity:     j.Quantity(),
		TemplateID:   j.TemplateID(),
		Status:       int(j.Status()),
		ErrorMessage: j.ErrorMessage(),
		CreatedAt:    j.CreatedAt(),
		DispatchedAt: j.DispatchedAt(),
		CompletedAt:  j.CompletedAt(),
		Version:      j.Version(),
	}
}

func toDomain(dto PrintJobDTO) (*printjob.PrintJob, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}

	return printjob.RestorePrintJob(
		id,
		storeID,
		dto.Quantity,
		dto.TemplateID,
		printjob.Status(dto.Status),
		dto.ErrorMessage,
		dto.CreatedAt,
		dto.DispatchedAt,
		dto.CompletedAt,
		dto.Version,
	)
}
