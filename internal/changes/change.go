// Package changes keeps clients current without making correctness
// depend on any single channel. Mutations publish a change event; a
// fallback poll covers a dead event channel and a slow safety-net poll
// covers everything else. Events carry no payload, only "this resource
// changed": the fetch that follows is always the source of truth.
package changes

import (
	"time"

	"github.com/google/uuid"
)

// Change is a notification that a resource changed and readers holding
// a copy should re-fetch. Key narrows the change to one record when the
// publisher knows it; an empty Key means the whole resource listing.
type Change struct {
	EventID  uuid.UUID `json:"event_id"`
	Resource string    `json:"resource"`
	Key      string    `json:"key,omitempty"`
	At       time.Time `json:"at"`
}

// Resource names used across publishers and subscribers.
const (
	ResourceOrders  = "orders"
	ResourceDrivers = "drivers"
)
