package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCompleteRouteCommandIsNotConstructed = errors.New(
	"CompleteRouteCommand must be created via NewCompleteRouteCommand constructor",
)

// CompleteRouteCommand represents an agent marking their whole active
// route as delivered.
type CompleteRouteCommand struct { //nolint:recvcheck //using for validation
	phone kernel.Phone

	guard guard.ConstructorGuard
}

// NewCompleteRouteCommand creates a route completion for the agent.
func NewCompleteRouteCommand(rawPhone string) (CompleteRouteCommand, error) {
	phone, err := kernel.NewPhone(rawPhone)
	if err != nil {
		return CompleteRouteCommand{}, err
	}

	return CompleteRouteCommand{
		phone: phone,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteRouteCommand) Validate() error {
	return c.guard.Validate(ErrCompleteRouteCommandIsNotConstructed)
}

// Phone returns the agent's identity.
func (c CompleteRouteCommand) Phone() kernel.Phone {
	return c.phone
}
