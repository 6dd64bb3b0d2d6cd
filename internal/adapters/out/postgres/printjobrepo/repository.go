package printjobrepo

import (
	"context"

	"refill/internal/adapters/out/postgres/pgerr"
	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/printjob"

	"gorm.io/gorm"
)

// GormPrintJobRepository implements ports.PrintJobRepository using GORM.
type GormPrintJobRepository struct {
	db *gorm.DB
}

func NewGormPrintJobRepository(db *gorm.DB) *GormPrintJobRepository {
	return &GormPrintJobRepository{db: db}
}

func (r *GormPrintJobRepository) Add(ctx context.Context, aggregate *printjob.PrintJob) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return pgerr.Translate(r.db.WithContext(ctx).Create(&dto).Error)
}

func (r *GormPrintJobRepository) Update(ctx context.Context, aggregate *printjob.PrintJob) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return pgerr.UpdateVersioned(ctx, r.db, &PrintJobDTO{}, "print job", dto.ID, dto.Version, map[string]any{
		"status":        dto.Status,
		"error_message": dto.ErrorMessage,
		"dispatched_at": dto.DispatchedAt,
		"completed_at":  dto.CompletedAt,
	})
}

func (r *GormPrintJobRepository) Get(ctx context.Context, id kernel.UUID) (*printjob.PrintJob, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PrintJobDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgerr.NotFound(err, "print job", id.String())
	}

	return toDomain(dto)
}
