package queries

import (
	"errors"
	"time"

	"dispatch/internal/pkg/guard"
)

var ErrGetActiveDriversQueryIsNotConstructed = errors.New(
	"GetActiveDriversQuery must be created via NewGetActiveDriversQuery constructor",
)

// GetActiveDriversQuery retrieves the agents holding a live slot right
// now. This is also how a forcibly logged-out client discovers its
// session is gone: its own entry disappears from the listing.
type GetActiveDriversQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveDriversQuery creates an active driver listing query.
func NewGetActiveDriversQuery() GetActiveDriversQuery {
	return GetActiveDriversQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveDriversQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveDriversQueryIsNotConstructed)
}

// DriverResponse is the read model for one live agent session.
type DriverResponse struct {
	Name      string
	Phone     string
	Color     string
	LastLogin time.Time
}
