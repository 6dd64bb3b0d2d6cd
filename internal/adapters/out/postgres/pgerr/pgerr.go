// Package pgerr turns PostgreSQL failures and row counts into errs values
// shared by the repositories.
package pgerr

import (
	"context"
	"errors"

	"refill/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// constraintParams names the value guarded by each unique constraint.
var constraintParams = map[string]string{
	"customers_phone_key":             "phone",
	"cylinders_label_token_key":       "label token",
	"cylinders_sequential_number_key": "sequential number",
}

// Translate maps unique violations to errs.ObjectAlreadyExistsError and
// returns every other error unchanged.
func Translate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}

	param, ok := constraintParams[pgErr.ConstraintName]
	if !ok {
		param = pgErr.ConstraintName
	}
	return errs.NewObjectAlreadyExistsErrorWithCause(param, pgErr.Detail, err)
}

// UpdateVersioned writes values to the row of model identified by id only if
// the row still carries version, and bumps the version. A missing row fails
// with errs.ErrObjectNotFound, a newer row with errs.ErrVersionIsInvalid.
func UpdateVersioned(
	ctx context.Context,
	db *gorm.DB,
	model any,
	param string,
	id uuid.UUID,
	version int,
	values map[string]any,
) error {
	values["version"] = version + 1

	result := db.WithContext(ctx).Model(model).
		Where("id = ? AND version = ?", id, version).
		Updates(values)
	if result.Error != nil {
		return Translate(result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var n int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return errs.NewObjectNotFoundError(param, id.String())
	}
	return errs.NewVersionIsInvalidError(param)
}

// NotFound converts gorm.ErrRecordNotFound into errs.ObjectNotFoundError.
func NotFound(err error, param string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(param, id)
	}
	return err
}
