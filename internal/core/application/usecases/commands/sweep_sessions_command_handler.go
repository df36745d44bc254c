package commands

import (
	"context"
	"time"
)

// SweepSessionsCommandHandler marks stale sessions as offline so their
// colors free up without an explicit logout. Liveness checks already
// ignore stale sessions, so the sweep only makes the state explicit for
// readers of the raw session list.
type SweepSessionsCommandHandler struct {
	uowFactory DriverUoWFactory
	publisher  ChangePublisher
}

// NewSweepSessionsCommandHandler creates a handler for session sweeps.
func NewSweepSessionsCommandHandler(uowFactory DriverUoWFactory, publisher ChangePublisher) SweepSessionsCommandHandler {
	return SweepSessionsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle releases every session that is still flagged online but no
// longer live. Returns the number of sessions swept.
func (h SweepSessionsCommandHandler) Handle(ctx context.Context, command SweepSessionsCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DriverRepository()

	sessions, err := repo.GetAll(ctx)
	if err != nil {
		return 0, err
	}

	swept := 0
	for _, session := range sessions {
		if !session.Online() || session.IsLive(now) {
			continue
		}

		session.Release()
		if err = repo.Save(ctx, session); err != nil {
			return 0, err
		}
		swept++
	}

	if swept == 0 {
		return 0, nil
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	_ = h.publisher.PublishChange(ctx, "drivers", "")

	return swept, nil
}
