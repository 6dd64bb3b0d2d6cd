package memory

import (
	"context"
	"fmt"

	"refill/internal/core/domain/model/cylinder"
	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/errs"
)

// CylinderRepository implements ports.CylinderRepository over a unit of work.
type CylinderRepository struct {
	uow *UnitOfWork
}

func (r *CylinderRepository) NextSequentialNumber(_ context.Context) (int64, error) {
	s, err := r.uow.current()
	if err != nil {
		return 0, err
	}

	s.sequence++
	return s.sequence, nil
}

func (r *CylinderRepository) Add(_ context.Context, aggregate *cylinder.Cylinder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	s, err := r.uow.current()
	if err != nil {
		return err
	}

	if _, ok := s.cylinders[aggregate.ID()]; ok {
		return errs.NewObjectAlreadyExistsError("cylinder", aggregate.ID().String())
	}

	if err := checkUniqueCylinderFields(s, aggregate); err != nil {
		return err
	}

	s.cylinders[aggregate.ID()] = cylinderFromDomain(aggregate, aggregate.Version())
	return nil
}

func (r *CylinderRepository) Update(_ context.Context, aggregate *cylinder.Cylinder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	s, err := r.uow.current()
	if err != nil {
		return err
	}

	stored, ok := s.cylinders[aggregate.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("cylinder", aggregate.ID().String())
	}
	if stored.version != aggregate.Version() {
		return errs.NewVersionIsInvalidError("cylinder")
	}

	if err := checkUniqueCylinderFields(s, aggregate); err != nil {
		return err
	}

	s.cylinders[aggregate.ID()] = cylinderFromDomain(aggregate, stored.version+1)
	return nil
}

func (r *CylinderRepository) Get(_ context.Context, id kernel.UUID) (*cylinder.Cylinder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	s, err := r.uow.current()
	if err != nil {
		return nil, err
	}

	rec, ok := s.cylinders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("cylinder", id.String())
	}

	return rec.toDomain()
}

func (r *CylinderRepository) GetMany(_ context.Context, ids []kernel.UUID) ([]*cylinder.Cylinder, error) {
	s, err := r.uow.current()
	if err != nil {
		return nil, err
	}

	cylinders := make([]*cylinder.Cylinder, 0, len(ids))
	for _, id := range ids {
		rec, ok := s.cylinders[id]
		if !ok {
			continue
		}

		c, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		cylinders = append(cylinders, c)
	}

	return cylinders, nil
}

func (r *CylinderRepository) FindBySequentialNumber(_ context.Context, n int64) (*cylinder.Cylinder, error) {
	s, err := r.uow.current()
	if err != nil {
		return nil, err
	}

	for _, rec := range s.cylinders {
		if rec.sequentialNumber == n {
			return rec.toDomain()
		}
	}

	return nil, errs.NewObjectNotFoundError("cylinder", fmt.Sprintf("#%d", n))
}

func (r *CylinderRepository) FindByLabelToken(_ context.Context, token kernel.LabelToken) (*cylinder.Cylinder, error) {
	if err := token.Validate(); err != nil {
		return nil, err
	}

	s, err := r.uow.current()
	if err != nil {
		return nil, err
	}

	for _, rec := range s.cylinders {
		if rec.labelToken == token.String() {
			return rec.toDomain()
		}
	}

	return nil, errs.NewObjectNotFoundError("cylinder", token.String())
}

func (r *CylinderRepository) Delete(_ context.Context, id kernel.UUID) error {
	s, err := r.uow.current()
	if err != nil {
		return err
	}

	if _, ok := s.cylinders[id]; !ok {
		return errs.NewObjectNotFoundError("cylinder", id.String())
	}

	delete(s.cylinders, id)
	return nil
}

// checkUniqueCylinderFields mirrors the unique indexes of the relational schema.
func checkUniqueCylinderFields(s *state, c *cylinder.Cylinder) error {
	token, labelled := c.LabelToken()

	for id, rec := range s.cylinders {
		if id == c.ID() {
			continue
		}
		if rec.sequentialNumber == c.SequentialNumber() {
			return errs.NewObjectAlreadyExistsError("sequential number", rec.sequentialNumber)
		}
		if labelled && rec.labelToken == token.String() {
			return errs.NewObjectAlreadyExistsError("label token", rec.labelToken)
		}
	}

	return nil
}

func cylinderFromDomain(c *cylinder.Cylinder, version int) cylinderRecord {
	label := ""
	if token, ok := c.LabelToken(); ok {
		label = token.String()
	}

	return cylinderRecord{
		id:               c.ID(),
		sequentialNumber: c.SequentialNumber(),
		labelToken:       label,
		state:            c.State(),
		occurrenceNotes:  c.OccurrenceNotes(),
		createdAt:        c.CreatedAt(),
		version:          version,
	}
}

func (r cylinderRecord) toDomain() (*cylinder.Cylinder, error) {
	var label *kernel.LabelToken
	if r.labelToken != "" {
		token, err := kernel.NewLabelToken(r.labelToken)
		if err != nil {
			return nil, err
		}
		label = &token
	}

	return cylinder.RestoreCylinder(
		r.id,
		r.sequentialNumber,
		label,
		r.state,
		r.occurrenceNotes,
		r.createdAt,
		r.version,
	)
}
