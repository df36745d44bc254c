package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// CompleteRouteCommandHandler marks every order of the agent's active
// route as completed.
//
// Route members are completed independently, each in its own unit of
// work. A rejected or unreachable member never rolls back the members
// that already succeeded; the handler reports a per-member outcome and
// the caller retries only the failed subset. The route listing is
// status-scoped, so already-completed members vanish from it and a
// retry cannot double-complete them.
type CompleteRouteCommandHandler struct {
	uowFactory UoWFactory
	publisher  ChangePublisher
}

// NewCompleteRouteCommandHandler creates a handler for route completions.
func NewCompleteRouteCommandHandler(uowFactory UoWFactory, publisher ChangePublisher) CompleteRouteCommandHandler {
	return CompleteRouteCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle completes every order currently out for delivery with the
// agent. The returned BatchResult is meaningful even when err is nil
// and some members failed; err is reserved for failures that prevented
// the batch from starting at all.
func (h CompleteRouteCommandHandler) Handle(ctx context.Context, command CompleteRouteCommand) (BatchResult, error) {
	if err := command.Validate(); err != nil {
		return BatchResult{}, err
	}

	now := time.Now().UTC()

	route, err := h.loadRoute(ctx, command.Phone(), now)
	if err != nil {
		return BatchResult{}, err
	}

	var result BatchResult
	for _, member := range route {
		result.Results = append(result.Results, h.completeMember(ctx, member.Code(), now))
	}

	if result.Succeeded() > 0 {
		_ = h.publisher.PublishChange(ctx, "orders", "")
	}

	return result, nil
}

func (h CompleteRouteCommandHandler) loadRoute(
	ctx context.Context,
	phone kernel.Phone,
	now time.Time,
) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	session, err := uow.DriverRepository().Get(ctx, phone)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, errs.NewNotAuthenticatedError(phone.String())
		}
		return nil, err
	}
	if !session.IsLive(now) {
		return nil, errs.NewNotAuthenticatedError(phone.String())
	}

	return uow.OrderRepository().GetRoute(ctx, phone)
}

// completeMember applies the completion transition inside a dedicated
// unit of work, so that one member's fate is isolated from the rest of
// the batch.
func (h CompleteRouteCommandHandler) completeMember(ctx context.Context, code string, now time.Time) CompletionResult {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return completionFailure(code, err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	aggregate, err := repo.Get(ctx, code)
	if err != nil {
		return completionFailure(code, err)
	}

	if err = aggregate.TransitionTo(order.Completed, now); err != nil {
		return completionFailure(code, err)
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return completionFailure(code, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return completionFailure(code, err)
	}

	return CompletionResult{OrderCode: code, Outcome: OutcomeCompleted}
}

// completionFailure separates definitive rejections by the store from
// failures where the write may never have been attempted. The latter
// are wrapped as TransportFailureError so callers can select the
// retryable subset with errors.Is.
func completionFailure(code string, err error) CompletionResult {
	if errors.Is(err, errs.ErrInvalidTransition) || errors.Is(err, errs.ErrObjectNotFound) {
		return CompletionResult{OrderCode: code, Outcome: OutcomeBusinessFailure, Err: err}
	}

	return CompletionResult{
		OrderCode: code,
		Outcome:   OutcomeTransportFailure,
		Err:       errs.NewTransportFailureError("complete "+code, err),
	}
}
