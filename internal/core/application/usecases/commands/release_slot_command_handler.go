package commands

import (
	"context"
)

// ReleaseSlotCommandHandler frees a color slot. The color becomes
// immediately claimable by the next ClaimSlotCommand.
type ReleaseSlotCommandHandler struct {
	uowFactory DriverUoWFactory
	publisher  ChangePublisher
}

// NewReleaseSlotCommandHandler creates a handler for logouts.
func NewReleaseSlotCommandHandler(
	uowFactory DriverUoWFactory,
	publisher ChangePublisher,
) ReleaseSlotCommandHandler {
	return ReleaseSlotCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle releases the session. The published driver change is what lets
// a forcibly logged-out client observe its invalidation promptly; the
// session query is the polling path for the same signal.
func (h ReleaseSlotCommandHandler) Handle(ctx context.Context, command ReleaseSlotCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driversRepo := uow.DriverRepository()

	session, err := driversRepo.Get(ctx, command.Phone())
	if err != nil {
		return err
	}

	session.Release()

	if err = driversRepo.Save(ctx, session); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.publisher.PublishChange(ctx, "drivers", command.Phone().String())

	return nil
}
