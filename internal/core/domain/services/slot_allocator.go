package services

import (
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// SlotAllocator decides the outcome of a slot claim: a fresh session, a
// refresh of the agent's own session, or a conflict. It is a pure
// decision over the current session set; persistence is the caller's
// concern.
//
// Exclusivity is checked against live holders only. A session that went
// stale or belongs to a previous business day does not block its color,
// which is what frees seats abandoned by crashed clients.
type SlotAllocator struct{}

// NewSlotAllocator creates a SlotAllocator.
func NewSlotAllocator() SlotAllocator {
	return SlotAllocator{}
}

// Claim applies the slot rules for an agent logging in with a color.
//
// The color must be a member of the capacity set. If a different
// identity holds the color with a live session, the claim fails with a
// SlotUnavailableError. If the agent already has a session (any color),
// it is moved to the requested color and refreshed; the same
// (phone, color) pair re-claims successfully. Otherwise a new session
// is created.
//
// The returned session is the one to persist.
func (a SlotAllocator) Claim(
	sessions []*driver.Session,
	capacity []string,
	name string,
	phone kernel.Phone,
	color string,
	now time.Time,
) (*driver.Session, error) {
	if err := phone.Validate(); err != nil {
		return nil, err
	}

	if !containsColor(capacity, color) {
		return nil, errs.NewValueIsInvalidError("color is not in today's capacity set")
	}

	var own *driver.Session
	for _, s := range sessions {
		if err := s.Validate(); err != nil {
			return nil, err
		}

		if s.Phone().IsEqual(phone) {
			own = s
			continue
		}

		if s.Color() == color && s.IsLive(now) {
			return nil, errs.NewSlotUnavailableError(color)
		}
	}

	if own != nil && own.Color() == color {
		if err := own.Refresh(name, now); err != nil {
			return nil, err
		}
		return own, nil
	}

	// No session yet, or the agent switches colors. One record per
	// identity: persisting the new session replaces the old claim.
	return driver.NewSession(name, phone, color, now)
}

func containsColor(capacity []string, color string) bool {
	for _, c := range capacity {
		if c == color {
			return true
		}
	}
	return false
}
