package orderrepo

import (
	"context"

	"refill/internal/adapters/out/postgres/pgerr"
	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order and its memberships.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, memberships := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err)
	}

	return r.insertMemberships(ctx, memberships)
}

// Update writes the order row conditionally on its version, then replaces
// the membership rows.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, memberships := fromDomain(aggregate)
	err := pgerr.UpdateVersioned(ctx, r.db, &OrderDTO{}, "order", dto.ID, dto.Version, map[string]any{
		"status":       dto.Status,
		"completed_at": dto.CompletedAt,
		"notified_at":  dto.NotifiedAt,
	})
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Delete(&OrderCylinderDTO{}, "order_id = ?", dto.ID).Error; err != nil {
		return err
	}

	return r.insertMemberships(ctx, memberships)
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgerr.NotFound(err, "order", id.String())
	}

	return r.load(ctx, dto)
}

func (r *GormOrderRepository) FindOpenByCustomer(ctx context.Context, customerID kernel.UUID) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND status = ?", customerID.Bytes(), int(order.Open)).
		Order("created_at DESC").
		First(&dto).Error
	if err != nil {
		return nil, pgerr.NotFound(err, "open order of customer", customerID.String())
	}

	return r.load(ctx, dto)
}

func (r *GormOrderRepository) FindOpenByCylinder(ctx context.Context, cylinderID kernel.UUID) (*order.Order, error) {
	var dto OrderDTO
	err := r.byCylinder(ctx, cylinderID).
		Where("orders.status = ?", int(order.Open)).
		First(&dto).Error
	if err != nil {
		return nil, pgerr.NotFound(err, "open order of cylinder", cylinderID.String())
	}

	return r.load(ctx, dto)
}

func (r *GormOrderRepository) FindLatestByCylinder(ctx context.Context, cylinderID kernel.UUID) (*order.Order, error) {
	var dto OrderDTO
	if err := r.byCylinder(ctx, cylinderID).First(&dto).Error; err != nil {
		return nil, pgerr.NotFound(err, "order of cylinder", cylinderID.String())
	}

	return r.load(ctx, dto)
}

func (r *GormOrderRepository) CountByCustomer(ctx context.Context, customerID kernel.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("customer_id = ?", customerID.Bytes()).
		Count(&n).Error
	return n, err
}

func (r *GormOrderRepository) RemoveCylinder(ctx context.Context, cylinderID kernel.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&OrderCylinderDTO{}, "cylinder_id = ?", cylinderID.Bytes()).Error
}

func (r *GormOrderRepository) byCylinder(ctx context.Context, cylinderID kernel.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Select("orders.*").
		Joins("JOIN order_cylinders oc ON oc.order_id = orders.id").
		Where("oc.cylinder_id = ?", cylinderID.Bytes()).
		Order("orders.created_at DESC")
}

func (r *GormOrderRepository) load(ctx context.Context, dto OrderDTO) (*order.Order, error) {
	var memberships []OrderCylinderDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", dto.ID).
		Order("position").
		Find(&memberships).Error
	if err != nil {
		return nil, err
	}

	return toDomain(dto, memberships)
}

func (r *GormOrderRepository) insertMemberships(ctx context.Context, memberships []OrderCylinderDTO) error {
	if len(memberships) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&memberships).Error
}
