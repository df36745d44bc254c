package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var (
	ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
		"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
	)
	ErrOrderCodeIsRequired = errors.New("order code is required")
)

// UpdateOrderStatusCommand advances one order along its mode sequence
// (kitchen/admin actions) or cancels it. Route claiming and completion
// have their own commands; this one covers every other transition.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderCode string
	target    order.Status

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a command to move an order to the
// given target status.
func NewUpdateOrderStatusCommand(orderCode string, target order.Status) (UpdateOrderStatusCommand, error) {
	command := UpdateOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderCode(orderCode),
		command.setTarget(target),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderCode returns the code of the order to transition.
func (c UpdateOrderStatusCommand) OrderCode() string {
	return c.orderCode
}

// Target returns the requested status.
func (c UpdateOrderStatusCommand) Target() order.Status {
	return c.target
}

func (c *UpdateOrderStatusCommand) setOrderCode(code string) error {
	if code == "" {
		return ErrOrderCodeIsRequired
	}
	c.orderCode = code
	return nil
}

func (c *UpdateOrderStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}
