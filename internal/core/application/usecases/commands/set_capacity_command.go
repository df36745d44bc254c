package commands

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrSetCapacityCommandIsNotConstructed = errors.New(
	"SetCapacityCommand must be created via NewSetCapacityCommand constructor",
)

// SetCapacityCommand replaces the day's color capacity: the ordered set
// of colors that delivery agents may claim.
type SetCapacityCommand struct { //nolint:recvcheck //using for validation
	colors []string

	guard guard.ConstructorGuard
}

// NewSetCapacityCommand creates a capacity replacement. An empty color
// set is valid and means no agent seats.
func NewSetCapacityCommand(colors []string) (SetCapacityCommand, error) {
	seen := make(map[string]struct{}, len(colors))
	for _, color := range colors {
		if color == "" {
			return SetCapacityCommand{}, errs.NewValueIsRequiredError("color")
		}
		if _, dup := seen[color]; dup {
			return SetCapacityCommand{}, errs.NewValueIsInvalidError("colors")
		}
		seen[color] = struct{}{}
	}

	return SetCapacityCommand{
		colors: colors,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetCapacityCommand) Validate() error {
	return c.guard.Validate(ErrSetCapacityCommandIsNotConstructed)
}

// Colors returns the new capacity.
func (c SetCapacityCommand) Colors() []string {
	return c.colors
}
