package historyrepo

import (
	"context"

	"refill/internal/core/domain/model/history"
	"refill/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

type GormHistoryRepository struct {
	db *gorm.DB
}

func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

// Append inserts the entries in one statement, keeping their order in seq.
func (r *GormHistoryRepository) Append(ctx context.Context, entries ...*history.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	dtos := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(e))
	}

	return r.db.WithContext(ctx).Omit("Seq").Create(&dtos).Error
}

func (r *GormHistoryRepository) ListByCylinder(ctx context.Context, cylinderID kernel.UUID) ([]*history.Entry, error) {
	var dtos []EntryDTO
	err := r.db.WithContext(ctx).
		Where("cylinder_id = ?", cylinderID.Bytes()).
		Order("occurred_at DESC, seq DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*history.Entry, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, nil
}

func (r *GormHistoryRepository) DeleteByCylinder(ctx context.Context, cylinderID kernel.UUID) error {
	return r.db.WithContext(ctx).Delete(&EntryDTO{}, "cylinder_id = ?", cylinderID.Bytes()).Error
}
