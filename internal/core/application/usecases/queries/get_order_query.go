package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
	ErrOrderCodeIsRequired = errors.New("order code is required")
)

// GetOrderQuery retrieves one order by its customer-facing code. This
// is the customer tracking read: callers learn the order's current
// status and, for delivery orders out on a route, the driver's name and
// color.
type GetOrderQuery struct {
	orderCode string

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a tracking query for the order code.
func NewGetOrderQuery(orderCode string) (GetOrderQuery, error) {
	if orderCode == "" {
		return GetOrderQuery{}, ErrOrderCodeIsRequired
	}

	return GetOrderQuery{
		orderCode: orderCode,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderCode returns the tracked order code.
func (q GetOrderQuery) OrderCode() string {
	return q.orderCode
}
