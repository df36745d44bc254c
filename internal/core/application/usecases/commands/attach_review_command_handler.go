package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/order"
)

// AttachReviewCommandHandler stores a customer review on a completed
// order.
type AttachReviewCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ChangePublisher
}

// NewAttachReviewCommandHandler creates a handler for review
// attachments.
func NewAttachReviewCommandHandler(uowFactory OrderUoWFactory, publisher ChangePublisher) AttachReviewCommandHandler {
	return AttachReviewCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle attaches the review. Orders that have not reached completion
// reject the attachment.
func (h AttachReviewCommandHandler) Handle(ctx context.Context, command AttachReviewCommand) error {
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

	repo := uow.OrderRepository()

	aggregate, err := repo.Get(ctx, command.OrderCode())
	if err != nil {
		return err
	}

	review := order.Review{
		Rating:  command.Rating(),
		Comment: command.Comment(),
		At:      now,
	}
	if err = aggregate.AttachReview(review, now); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.publisher.PublishChange(ctx, "orders", command.OrderCode())

	return nil
}
