package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetRouteQueryIsNotConstructed = errors.New(
	"GetRouteQuery must be created via NewGetRouteQuery constructor",
)

// GetRouteQuery retrieves an agent's active route: the orders they are
// currently out delivering.
type GetRouteQuery struct {
	phone kernel.Phone

	guard guard.ConstructorGuard
}

// NewGetRouteQuery creates a route query for the agent.
func NewGetRouteQuery(rawPhone string) (GetRouteQuery, error) {
	phone, err := kernel.NewPhone(rawPhone)
	if err != nil {
		return GetRouteQuery{}, err
	}

	return GetRouteQuery{
		phone: phone,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRouteQuery) Validate() error {
	return q.guard.Validate(ErrGetRouteQueryIsNotConstructed)
}

// Phone returns the agent's identity.
func (q GetRouteQuery) Phone() kernel.Phone {
	return q.phone
}
