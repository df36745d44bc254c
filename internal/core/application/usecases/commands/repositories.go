// Package commands contains business operations that modify system
// state. Implements the Command pattern for write operations in the
// CQRS architecture. All commands follow a consistent pattern:
// validation, transaction management, persistence, change notification.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// ChangePublisher pushes "something changed, re-fetch" notifications to
// the synchronization layer after successful mutations. Publishing is
// best effort: a failed publish is logged by the implementation, never
// surfaced to the command's caller, because the polling safety net will
// deliver the change anyway.
type ChangePublisher interface {
	PublishChange(ctx context.Context, resource, key string) error
}

// Unit of Work interfaces provide transaction management for command
// handlers. These abstractions ensure data consistency across aggregate
// boundaries.
type (
	// TxManager handles store transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// DriverRepoFactory provides access to the driver repository within
	// a transaction.
	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// DriverUoW manages transactions for session-only operations.
	DriverUoW interface {
		TxManager
		DriverRepoFactory
	}

	// DriverUoWFactory creates new driver unit of work instances.
	DriverUoWFactory interface {
		Create() DriverUoW
	}

	// UoW manages transactions across order and session aggregates.
	// Used by route operations, which read the session and mutate
	// orders.
	UoW interface {
		TxManager
		OrderRepoFactory
		DriverRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate
	// operations.
	UoWFactory interface {
		Create() UoW
	}
)
