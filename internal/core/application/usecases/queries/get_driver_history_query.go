package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetDriverHistoryQueryIsNotConstructed = errors.New(
	"GetDriverHistoryQuery must be created via NewGetDriverHistoryQuery constructor",
)

// GetDriverHistoryQuery retrieves an agent's completed deliveries and
// their aggregate counts. "Today" follows the business day, so a route
// finished at 01:30 still counts toward the shift it belongs to.
type GetDriverHistoryQuery struct {
	phone kernel.Phone

	guard guard.ConstructorGuard
}

// NewGetDriverHistoryQuery creates a history query for the agent.
func NewGetDriverHistoryQuery(rawPhone string) (GetDriverHistoryQuery, error) {
	phone, err := kernel.NewPhone(rawPhone)
	if err != nil {
		return GetDriverHistoryQuery{}, err
	}

	return GetDriverHistoryQuery{
		phone: phone,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDriverHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverHistoryQueryIsNotConstructed)
}

// Phone returns the agent's identity.
func (q GetDriverHistoryQuery) Phone() kernel.Phone {
	return q.phone
}

// DriverHistoryResponse is the read model for an agent's delivery
// record.
type DriverHistoryResponse struct {
	CompletedToday int
	CompletedMonth int
	CompletedTotal int
	Orders         []OrderResponse
}
