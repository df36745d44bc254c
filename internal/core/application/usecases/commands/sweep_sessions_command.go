package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrSweepSessionsCommandIsNotConstructed = errors.New(
	"SweepSessionsCommand must be created via NewSweepSessionsCommand constructor",
)

// SweepSessionsCommand releases slot sessions that went stale without
// an explicit logout.
type SweepSessionsCommand struct { //nolint:recvcheck //using for validation
	guard guard.ConstructorGuard
}

// NewSweepSessionsCommand creates a session sweep.
func NewSweepSessionsCommand() (SweepSessionsCommand, error) {
	return SweepSessionsCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SweepSessionsCommand) Validate() error {
	return c.guard.Validate(ErrSweepSessionsCommandIsNotConstructed)
}
