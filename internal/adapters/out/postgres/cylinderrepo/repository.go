package cylinderrepo

import (
	"context"
	"fmt"

	"refill/internal/adapters/out/postgres/pgerr"
	"refill/internal/core/domain/model/cylinder"
	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// sequenceCounter names the counters row backing sequential numbers.
const sequenceCounter = "cylinder_sequential_number"

// GormCylinderRepository implements ports.CylinderRepository using GORM.
type GormCylinderRepository struct {
	db *gorm.DB
}

func NewGormCylinderRepository(db *gorm.DB) *GormCylinderRepository {
	return &GormCylinderRepository{db: db}
}

// NextSequentialNumber increments the counter row in place. Concurrent
// transactions queue on the row lock, so no two of them get the same number.
func (r *GormCylinderRepository) NextSequentialNumber(ctx context.Context) (int64, error) {
	var next int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO counters (name, value)
		VALUES (?, 1)
		ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
		RETURNING value
	`, sequenceCounter).Scan(&next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}

func (r *GormCylinderRepository) Add(ctx context.Context, aggregate *cylinder.Cylinder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err)
	}
	return nil
}

func (r *GormCylinderRepository) Update(ctx context.Context, aggregate *cylinder.Cylinder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return pgerr.UpdateVersioned(ctx, r.db, &CylinderDTO{}, "cylinder", dto.ID, dto.Version, map[string]any{
		"label_token":      dto.LabelToken,
		"state":            dto.State,
		"occurrence_notes": dto.OccurrenceNotes,
	})
}

func (r *GormCylinderRepository) Get(ctx context.Context, id kernel.UUID) (*cylinder.Cylinder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CylinderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgerr.NotFound(err, "cylinder", id.String())
	}

	return toDomain(dto)
}

func (r *GormCylinderRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*cylinder.Cylinder, error) {
	if len(ids) == 0 {
		return []*cylinder.Cylinder{}, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	var dtos []CylinderDTO
	if err := r.db.WithContext(ctx).Where("id IN ?", raw).Order("sequential_number").Find(&dtos).Error; err != nil {
		return nil, err
	}

	cylinders := make([]*cylinder.Cylinder, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		cylinders = append(cylinders, c)
	}

	return cylinders, nil
}

func (r *GormCylinderRepository) FindBySequentialNumber(ctx context.Context, n int64) (*cylinder.Cylinder, error) {
	var dto CylinderDTO
	if err := r.db.WithContext(ctx).First(&dto, "sequential_number = ?", n).Error; err != nil {
		return nil, pgerr.NotFound(err, "cylinder", fmt.Sprintf("#%d", n))
	}

	return toDomain(dto)
}

func (r *GormCylinderRepository) FindByLabelToken(ctx context.Context, token kernel.LabelToken) (*cylinder.Cylinder, error) {
	if err := token.Validate(); err != nil {
		return nil, err
	}

	var dto CylinderDTO
	if err := r.db.WithContext(ctx).First(&dto, "label_token = ?", token.String()).Error; err != nil {
		return nil, pgerr.NotFound(err, "cylinder", token.String())
	}

	return toDomain(dto)
}

func (r *GormCylinderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	result := r.db.WithContext(ctx).Delete(&CylinderDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("cylinder", id.String())
	}
	return nil
}
