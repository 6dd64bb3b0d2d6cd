package customerrepo

import (
	"context"

	"refill/internal/adapters/out/postgres/pgerr"
	"refill/internal/core/domain/model/customer"
	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCustomerRepository implements ports.CustomerRepository using GORM.
type GormCustomerRepository struct {
	db *gorm.DB
}

func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// Add inserts a customer. The unique phone constraint surfaces as
// errs.ErrObjectAlreadyExists.
func (r *GormCustomerRepository) Add(ctx context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err)
	}
	return nil
}

func (r *GormCustomerRepository) Update(ctx context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return pgerr.UpdateVersioned(ctx, r.db, &CustomerDTO{}, "customer", dto.ID, dto.Version, map[string]any{
		"name":  dto.Name,
		"phone": dto.Phone,
	})
}

func (r *GormCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CustomerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgerr.NotFound(err, "customer", id.String())
	}

	return toDomain(dto)
}

func (r *GormCustomerRepository) FindByPhone(ctx context.Context, phone kernel.PhoneNumber) (*customer.Customer, error) {
	if err := phone.Validate(); err != nil {
		return nil, err
	}

	var dto CustomerDTO
	if err := r.db.WithContext(ctx).First(&dto, "phone = ?", phone.String()).Error; err != nil {
		return nil, pgerr.NotFound(err, "customer", phone.String())
	}

	return toDomain(dto)
}

func (r *GormCustomerRepository) Delete(ctx context.Context, id kernel.UUID) error {
	result := r.db.WithContext(ctx).Delete(&CustomerDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("customer", id.String())
	}
	return nil
}
