package ports

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for agent slot
// sessions. There is exactly one record per phone identity; Save
// replaces the previous session when an agent switches colors.
type DriverRepository interface {
	// Save upserts a session keyed by its normalized phone.
	Save(ctx context.Context, session *driver.Session) error

	// Get retrieves the session for an identity. Returns an
	// ObjectNotFoundError when the agent has never logged in.
	Get(ctx context.Context, phone kernel.Phone) (*driver.Session, error)

	// GetAll retrieves every stored session, live or not. Liveness is
	// the caller's judgement via Session.IsLive.
	GetAll(ctx context.Context) ([]*driver.Session, error)
}
