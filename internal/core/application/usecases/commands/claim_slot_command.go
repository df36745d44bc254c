package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrClaimSlotCommandIsNotConstructed = errors.New(
		"ClaimSlotCommand must be created via NewClaimSlotCommand constructor",
	)
	ErrDriverNameIsRequired = errors.New("driver name is required")
	ErrColorIsRequired      = errors.New("color is required")
)

// ClaimSlotCommand represents an agent logging in and claiming a color
// slot for the current business day. The raw phone is normalized at
// construction so every later comparison runs on digits.
type ClaimSlotCommand struct { //nolint:recvcheck //using for validation
	name  string
	phone kernel.Phone
	color string

	guard guard.ConstructorGuard
}

// NewClaimSlotCommand creates a slot claim from the login form fields.
func NewClaimSlotCommand(name, rawPhone, color string) (ClaimSlotCommand, error) {
	command := ClaimSlotCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setName(name),
		command.setPhone(rawPhone),
		command.setColor(color),
	); err != nil {
		return ClaimSlotCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ClaimSlotCommand) Validate() error {
	return c.guard.Validate(ErrClaimSlotCommandIsNotConstructed)
}

// Name returns the agent's display name.
func (c ClaimSlotCommand) Name() string {
	return c.name
}

// Phone returns the normalized identity.
func (c ClaimSlotCommand) Phone() kernel.Phone {
	return c.phone
}

// Color returns the requested color slot.
func (c ClaimSlotCommand) Color() string {
	return c.color
}

func (c *ClaimSlotCommand) setName(name string) error {
	if name == "" {
		return ErrDriverNameIsRequired
	}
	c.name = name
	return nil
}

func (c *ClaimSlotCommand) setPhone(rawPhone string) error {
	phone, err := kernel.NewPhone(rawPhone)
	if err != nil {
		return err
	}
	c.phone = phone
	return nil
}

func (c *ClaimSlotCommand) setColor(color string) error {
	if color == "" {
		return ErrColorIsRequired
	}
	c.color = color
	return nil
}
