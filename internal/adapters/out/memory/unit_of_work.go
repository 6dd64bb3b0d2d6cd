package memory

import (
	"context"
	"errors"

	"refill/internal/core/ports"
)

// ErrNoActiveTransaction is returned when a unit of work is used outside of
// Begin and Commit or Rollback.
var ErrNoActiveTransaction = errors.New("memory: no active transaction")

// UnitOfWorkFactory creates units of work over one Store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork is a serialized transaction over a Store.
type UnitOfWork struct {
	store *Store
	tx    *state
}

// Begin waits for the store to be free or for ctx to end. Calling it twice
// is a no-op.
func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	select {
	case uow.store.slot <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	uow.tx = uow.store.state.clone()
	return nil
}

func (uow *UnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return ErrNoActiveTransaction
	}

	uow.store.state = uow.tx
	uow.release()
	return nil
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return ErrNoActiveTransaction
	}

	uow.release()
	return nil
}

func (uow *UnitOfWork) release() {
	uow.tx = nil
	<-uow.store.slot
}

func (uow *UnitOfWork) CustomerRepository() ports.CustomerRepository {
	return &CustomerRepository{uow: uow}
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{uow: uow}
}

func (uow *UnitOfWork) CylinderRepository() ports.CylinderRepository {
	return &CylinderRepository{uow: uow}
}

func (uow *UnitOfWork) HistoryRepository() ports.HistoryRepository {
	return &HistoryRepository{uow: uow}
}

func (uow *UnitOfWork) PrintJobRepository() ports.PrintJobRepository {
	return &PrintJobRepository{uow: uow}
}

// current returns the transaction state or ErrNoActiveTransaction.
func (uow *UnitOfWork) current() (*state, error) {
	if uow.tx == nil {
		return nil, ErrNoActiveTransaction
	}
	return uow.tx, nil
}
