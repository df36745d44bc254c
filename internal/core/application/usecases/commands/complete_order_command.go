package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCompleteOrderCommandIsNotConstructed = errors.New(
	"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
)

// CompleteOrderCommand represents an agent marking a single order of
// their route as delivered.
type CompleteOrderCommand struct { //nolint:recvcheck //using for validation
	phone     kernel.Phone
	orderCode string

	guard guard.ConstructorGuard
}

// NewCompleteOrderCommand creates a single-order completion.
func NewCompleteOrderCommand(rawPhone, orderCode string) (CompleteOrderCommand, error) {
	phone, err := kernel.NewPhone(rawPhone)
	if err != nil {
		return CompleteOrderCommand{}, err
	}

	if orderCode == "" {
		return CompleteOrderCommand{}, ErrOrderCodeIsRequired
	}

	return CompleteOrderCommand{
		phone:     phone,
		orderCode: orderCode,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

// Phone returns the agent's identity.
func (c CompleteOrderCommand) Phone() kernel.Phone {
	return c.phone
}

// OrderCode returns the order to complete.
func (c CompleteOrderCommand) OrderCode() string {
	return c.orderCode
}
