package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// SetCapacityCommandHandler replaces the active color capacity.
//
// Shrinking the capacity does not evict agents already holding a
// removed color; their sessions simply expire on their own. New claims
// are checked against the current capacity only.
type SetCapacityCommandHandler struct {
	capacityRepo ports.CapacityRepository
	publisher    ChangePublisher
}

// NewSetCapacityCommandHandler creates a handler for capacity updates.
func NewSetCapacityCommandHandler(capacityRepo ports.CapacityRepository, publisher ChangePublisher) SetCapacityCommandHandler {
	return SetCapacityCommandHandler{
		capacityRepo: capacityRepo,
		publisher:    publisher,
	}
}

// Handle stores the new capacity.
func (h SetCapacityCommandHandler) Handle(ctx context.Context, command SetCapacityCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	if err := h.capacityRepo.Set(ctx, command.Colors()); err != nil {
		return err
	}

	_ = h.publisher.PublishChange(ctx, "drivers", "")

	return nil
}
