// Package ports defines the contracts between the dispatch core and the
// record store. These interfaces establish the boundary the adapters
// implement, enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are keyed by their externally visible code.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its customer-facing code.
	Get(ctx context.Context, code string) (*order.Order, error)

	// GetAll retrieves the full order listing.
	GetAll(ctx context.Context) ([]*order.Order, error)

	// GetReadyForDelivery retrieves delivery orders in ReadyForDelivery
	// whose sector is in sectorIDs. An empty sectorIDs returns every
	// ready delivery order, including those with no sector.
	GetReadyForDelivery(ctx context.Context, sectorIDs []string) ([]*order.Order, error)

	// GetRoute retrieves all OutForDelivery orders bound to the given
	// driver identity (normalized phone comparison).
	GetRoute(ctx context.Context, phone kernel.Phone) ([]*order.Order, error)

	// GetCompletedByDriver retrieves the completed orders bound to the
	// given driver identity, newest first.
	GetCompletedByDriver(ctx context.Context, phone kernel.Phone) ([]*order.Order, error)

	// Claim conditionally moves an order from ReadyForDelivery to
	// OutForDelivery and binds the driver identity. The write must be
	// guarded by a status precondition evaluated atomically at the
	// store (compare-and-swap, not read-then-write): if the order is no
	// longer ReadyForDelivery at the moment of the write, Claim returns
	// false with no error. This is the only mutual-exclusion guarantee
	// the core demands of its store; without it two agents can both
	// believe they claimed the same order.
	Claim(ctx context.Context, code string, binding order.DriverBinding, now time.Time) (bool, error)
}
