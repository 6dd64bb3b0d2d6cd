// Package commands contains the refill use cases that change state.
// Every handler follows the same shape: validate the command, open a unit of
// work, load aggregates, apply domain operations, persist, commit and then
// publish the returned domain events.
package commands

import (
	"context"

	"refill/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	CylinderRepoFactory interface {
		CylinderRepository() ports.CylinderRepository
	}

	HistoryRepoFactory interface {
		HistoryRepository() ports.HistoryRepository
	}

	PrintJobRepoFactory interface {
		PrintJobRepository() ports.PrintJobRepository
	}

	// CustomerUoW serves customer maintenance. Orders are visible so deletion
	// can check for order history.
	CustomerUoW interface {
		TxManager
		CustomerRepoFactory
		OrderRepoFactory
	}

	CustomerUoWFactory interface {
		Create() CustomerUoW
	}

	// OrderUoW serves commands touching only the order aggregate.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// PrintJobUoW serves the print job lifecycle.
	PrintJobUoW interface {
		TxManager
		PrintJobRepoFactory
	}

	PrintJobUoWFactory interface {
		Create() PrintJobUoW
	}

	// UoW spans customers, orders, cylinders and the history ledger. Used by
	// the fulfillment commands that move cylinders and roll orders up.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   cylinderRepo := uow.CylinderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		CustomerRepoFactory
		OrderRepoFactory
		CylinderRepoFactory
		HistoryRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
