// Package customerrepo persists customers with GORM.
package customerrepo

import (
	"time"

	"refill/internal/core/domain/model/customer"
	"refill/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CustomerDTO is a row of the customers table. Phone holds the normalized
// digits and is unique.
type CustomerDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	Phone     string `gorm:"uniqueIndex:customers_phone_key"`
	CreatedAt time.Time
	Version   int
}

func (CustomerDTO) TableName() string {
	return "customers"
}

func fromDomain(c *customer.Customer) CustomerDTO {
	return CustomerDTO{
		ID:        c.ID().Bytes(),
		Name:      c.Name(),
		Phone:     c.Phone().String(),
		CreatedAt: c.CreatedAt(),
		Version:   c.Version(),
	}
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	phone, err := kernel.NewPhoneNumber(dto.Phone)
	if err != nil {
		return nil, err
	}

	return customer.RestoreCustomer(id, dto.Name, phone, dto.CreatedAt, dto.Version)
}
