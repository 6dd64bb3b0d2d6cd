package memory

import (
	"context"

	"refill/internal/core/domain/model/history"
	"refill/internal/core/domain/model/kernel"
)

// HistoryRepository implements ports.HistoryRepository over a unit of work.
type HistoryRepository struct {
	uow *UnitOfWork
}

func (r *HistoryRepository) Append(_ context.Context, entries ...*history.Entry) error {
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
	}

	s, err := r.uow.current()
	if err != nil {
		return err
	}

	for _, e := range entries {
		s.history = append(s.history, historyRecord{
			id:         e.ID(),
			cylinderID: e.CylinderID(),
			eventType:  e.EventType(),
			details:    e.Details(),
			orderID:    e.OrderID(),
			timestamp:  e.Timestamp(),
		})
	}

	return nil
}

// ListByCylinder walks the ledger backwards, so entries sharing a timestamp
// keep newest-first order too.
func (r *HistoryRepository) ListByCylinder(_ context.Context, cylinderID kernel.UUID) ([]*history.Entry, error) {
	s, err := r.uow.current()
	if err != nil {
		return nil, err
	}

	entries := make([]*history.Entry, 0)
	for i := len(s.history) - 1; i >= 0; i-- {
		rec := s.history[i]
		if rec.cylinderID != cylinderID {
			continue
		}

		e, err := history.RestoreEntry(rec.id, rec.cylinderID, rec.eventType, rec.details, rec.orderID, rec.timestamp)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, nil
}

func (r *HistoryRepository) DeleteByCylinder(_ context.Context, cylinderID kernel.UUID) error {
	s, err := r.uow.current()
	if err != nil {
		return err
	}

	kept := make([]historyRecord, 0, len(s.history))
	for _, rec := range s.history {
		if rec.cylinderID != cylinderID {
			kept = append(kept, rec)
		}
	}
	s.history = kept

	return nil
}
