package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// ErrNothingToClaim is returned when a route claim wins no orders: the
// selected sectors were empty, or every candidate was claimed by a
// competing agent first. The caller must re-list before retrying.
var ErrNothingToClaim = errors.New("no orders available to claim")

// ClaimRouteResult reports which candidate orders the agent actually
// won. Lost entries were claimed by a competitor between listing and
// claiming; that is an expected race outcome, not an error.
type ClaimRouteResult struct {
	Claimed []string
	Lost    []string
}

// ClaimRouteCommandHandler is the concurrency-critical dispatch path:
// several agents may claim overlapping sectors at nearly the same time,
// and each ready order must end up with exactly one of them.
//
// Exclusivity rests on the repository's conditional Claim write: the
// status precondition is evaluated atomically at the store, so of two
// racing claims for one order exactly one sees RowsAffected = 1. The
// handler never resolves the race itself; it only reports the outcome.
type ClaimRouteCommandHandler struct {
	uowFactory UoWFactory
	publisher  ChangePublisher
}

// NewClaimRouteCommandHandler creates a handler for route claims.
func NewClaimRouteCommandHandler(uowFactory UoWFactory, publisher ChangePublisher) ClaimRouteCommandHandler {
	return ClaimRouteCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle claims the ready orders of the selected sectors for the agent.
//
// The agent must hold a live slot session; otherwise the claim fails
// with NotAuthenticatedError. Orders lost to a competitor are silently
// skipped. When nothing is won the handler returns ErrNothingToClaim so
// the caller re-lists instead of assuming success.
func (h ClaimRouteCommandHandler) Handle(ctx context.Context, command ClaimRouteCommand) (ClaimRouteResult, error) {
	if err := command.Validate(); err != nil {
		return ClaimRouteResult{}, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ClaimRouteResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	session, err := uow.DriverRepository().Get(ctx, command.Phone())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ClaimRouteResult{}, errs.NewNotAuthenticatedError(command.Phone().String())
		}
		return ClaimRouteResult{}, err
	}
	if !session.IsLive(now) {
		return ClaimRouteResult{}, errs.NewNotAuthenticatedError(command.Phone().String())
	}

	ordersRepo := uow.OrderRepository()

	candidates, err := ordersRepo.GetReadyForDelivery(ctx, command.SectorIDs())
	if err != nil {
		return ClaimRouteResult{}, err
	}

	binding := order.DriverBinding{
		Name:  session.Name(),
		Phone: session.Phone(),
		Color: session.Color(),
	}

	var result ClaimRouteResult
	for _, candidate := range candidates {
		claimed, claimErr := ordersRepo.Claim(ctx, candidate.Code(), binding, now)
		if claimErr != nil {
			return ClaimRouteResult{}, claimErr
		}

		if claimed {
			result.Claimed = append(result.Claimed, candidate.Code())
		} else {
			result.Lost = append(result.Lost, candidate.Code())
		}
	}

	if len(result.Claimed) == 0 {
		return result, ErrNothingToClaim
	}

	if err = uow.Commit(ctx); err != nil {
		return ClaimRouteResult{}, err
	}

	_ = h.publisher.PublishChange(ctx, "orders", "")

	return result, nil
}
