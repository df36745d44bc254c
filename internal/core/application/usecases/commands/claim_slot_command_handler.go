package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// ClaimSlotCommandHandler processes agent logins. It reads the day's
// color capacity, lets the SlotAllocator arbitrate against the current
// session set and persists the winning session.
type ClaimSlotCommandHandler struct {
	uowFactory   DriverUoWFactory
	capacityRepo ports.CapacityRepository
	publisher    ChangePublisher
}

// NewClaimSlotCommandHandler creates a handler for slot claims.
func NewClaimSlotCommandHandler(
	uowFactory DriverUoWFactory,
	capacityRepo ports.CapacityRepository,
	publisher ChangePublisher,
) ClaimSlotCommandHandler {
	return ClaimSlotCommandHandler{
		uowFactory:   uowFactory,
		capacityRepo: capacityRepo,
		publisher:    publisher,
	}
}

// Handle claims the slot. Fails with SlotUnavailableError when a
// different live identity holds the color; the agent should pick
// another color. A repeated claim of the same (phone, color) pair by
// the same identity refreshes the session instead.
func (h ClaimSlotCommandHandler) Handle(ctx context.Context, command ClaimSlotCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	capacity, err := h.capacityRepo.Get(ctx)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driversRepo := uow.DriverRepository()

	sessions, err := driversRepo.GetAll(ctx)
	if err != nil {
		return err
	}

	session, err := services.NewSlotAllocator().Claim(
		sessions, capacity, command.Name(), command.Phone(), command.Color(), time.Now().UTC())
	if err != nil {
		return err
	}

	if err = driversRepo.Save(ctx, session); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.publisher.PublishChange(ctx, "drivers", command.Phone().String())

	return nil
}
