package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery retrieves the order listing for the kitchen board.
// An optional status filter narrows the listing to one column of the
// board; the zero filter returns everything.
//
// Example:
//
//	query, err := queries.NewGetOrdersQuery(order.ReadyForDelivery)
//	if err != nil {
//	    return err
//	}
//
//	orders, err := handler.Handle(ctx, query)
type GetOrdersQuery struct {
	status order.Status

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates an order listing query. Pass
// order.StatusUnknown to list every order regardless of status.
func NewGetOrdersQuery(status order.Status) (GetOrdersQuery, error) {
	if status != order.StatusUnknown {
		if err := status.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
	}

	return GetOrdersQuery{
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// Status returns the status filter; StatusUnknown means no filter.
func (q GetOrdersQuery) Status() order.Status {
	return q.status
}

// OrderResponse is the read model shared by the listing, tracking and
// route queries.
type OrderResponse struct {
	Code          string
	CustomerName  string
	CustomerPhone string
	Mode          string
	Address       string
	SectorID      string
	Items         []OrderItemResponse
	Total         float64
	PaymentMethod string
	ChangeFor     float64
	Status        string
	DriverName    string
	DriverPhone   string
	DriverColor   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CompletedAt   *time.Time
}

// OrderItemResponse is a single order line in a read model.
type OrderItemResponse struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}
