package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// CompleteOrderCommandHandler marks one order of the agent's route as
// delivered. The transition is idempotent: completing an order that is
// already completed succeeds without touching its timestamps, so a
// retried confirmation is always safe.
type CompleteOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ChangePublisher
}

// NewCompleteOrderCommandHandler creates a handler for single-order
// completions.
func NewCompleteOrderCommandHandler(uowFactory UoWFactory, publisher ChangePublisher) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle completes the order if it belongs to the agent's route. An
// order bound to a different agent, or to no agent at all, is reported
// as not found rather than revealing who holds it.
func (h CompleteOrderCommandHandler) Handle(ctx context.Context, command CompleteOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	session, err := uow.DriverRepository().Get(ctx, command.Phone())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return errs.NewNotAuthenticatedError(command.Phone().String())
		}
		return err
	}
	if !session.IsLive(now) {
		return errs.NewNotAuthenticatedError(command.Phone().String())
	}

	ordersRepo := uow.OrderRepository()

	aggregate, err := ordersRepo.Get(ctx, command.OrderCode())
	if err != nil {
		return err
	}

	if !aggregate.BelongsTo(command.Phone()) {
		return errs.NewObjectNotFoundError("order", command.OrderCode())
	}

	if err = aggregate.TransitionTo(order.Completed, now); err != nil {
		return err
	}

	if err = ordersRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.publisher.PublishChange(ctx, "orders", command.OrderCode())

	return nil
}
