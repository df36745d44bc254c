package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrReleaseSlotCommandIsNotConstructed = errors.New(
	"ReleaseSlotCommand must be created via NewReleaseSlotCommand or NewForceReleaseSlotCommand constructor",
)

// ReleaseSlotCommand frees an agent's color slot. The forced variant is
// the administrator action: same release effect, but the agent's client
// learns about it through the session query and the change event and
// must re-authenticate.
type ReleaseSlotCommand struct { //nolint:recvcheck //using for validation
	phone  kernel.Phone
	forced bool

	guard guard.ConstructorGuard
}

// NewReleaseSlotCommand creates an agent-initiated logout.
func NewReleaseSlotCommand(rawPhone string) (ReleaseSlotCommand, error) {
	return newReleaseSlotCommand(rawPhone, false)
}

// NewForceReleaseSlotCommand creates an administrator-forced logout.
func NewForceReleaseSlotCommand(rawPhone string) (ReleaseSlotCommand, error) {
	return newReleaseSlotCommand(rawPhone, true)
}

func newReleaseSlotCommand(rawPhone string, forced bool) (ReleaseSlotCommand, error) {
	phone, err := kernel.NewPhone(rawPhone)
	if err != nil {
		return ReleaseSlotCommand{}, err
	}

	return ReleaseSlotCommand{
		phone:  phone,
		forced: forced,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through a constructor.
func (c ReleaseSlotCommand) Validate() error {
	return c.guard.Validate(ErrReleaseSlotCommandIsNotConstructed)
}

// Phone returns the identity whose slot is released.
func (c ReleaseSlotCommand) Phone() kernel.Phone {
	return c.phone
}

// Forced reports whether this is the administrator action.
func (c ReleaseSlotCommand) Forced() bool {
	return c.forced
}
