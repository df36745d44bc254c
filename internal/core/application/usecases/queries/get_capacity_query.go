package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrGetCapacityQueryIsNotConstructed = errors.New(
	"GetCapacityQuery must be created via NewGetCapacityQuery constructor",
)

// GetCapacityQuery retrieves the color capacity set for the current
// shift.
type GetCapacityQuery struct {
	guard guard.ConstructorGuard
}

// NewGetCapacityQuery creates a capacity query.
func NewGetCapacityQuery() GetCapacityQuery {
	return GetCapacityQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetCapacityQuery) Validate() error {
	return q.guard.Validate(ErrGetCapacityQueryIsNotConstructed)
}
