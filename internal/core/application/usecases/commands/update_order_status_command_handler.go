package commands

import (
	"context"
	"time"
)

// UpdateOrderStatusCommandHandler loads the order, applies the state
// machine transition and persists the result. The transition contract
// is the only way a status ever changes: a stale status value is never
// written back directly.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ChangePublisher
}

// NewUpdateOrderStatusCommandHandler creates a handler for status
// transitions.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ChangePublisher,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the transition. An InvalidTransitionError from the
// state machine leaves the order unchanged and is surfaced to the
// caller, who must re-read before retrying.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, command UpdateOrderStatusCommand) error {
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

	ordersRepo := uow.OrderRepository()

	o, err := ordersRepo.Get(ctx, command.OrderCode())
	if err != nil {
		return err
	}

	if err = o.TransitionTo(command.Target(), time.Now().UTC()); err != nil {
		return err
	}

	if err = ordersRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.publisher.PublishChange(ctx, "orders", command.OrderCode())

	return nil
}
