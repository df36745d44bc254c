package driver

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// SessionStaleAfter is the freshness threshold for a session. A session
// whose last login is older than this is treated as offline everywhere,
// even if its stored flag still says online. This guards against crashed
// clients that never logged out.
const SessionStaleAfter = 9 * time.Hour

// ErrSessionIsNotConstructed is returned when a Session instance was not
// created through NewSession or RestoreSession.
var ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession or RestoreSession")

// Session is a delivery agent's claim on a color slot for the current
// business day. The agent's identity is their normalized phone number;
// the color is the scarce per-day seat they hold.
//
// A session is live only when all of the following hold: the stored flag
// is online, the last login is within SessionStaleAfter, and the last
// login falls on the current business day. The staleness threshold and
// the business-day boundary are independent checks.
type Session struct {
	name          string
	phone         kernel.Phone
	color         string
	lastLogin     time.Time
	online        bool
	isConstructed bool
}

// NewSession creates a fresh online session for an agent logging in with
// a claimed color.
func NewSession(name string, phone kernel.Phone, color string, now time.Time) (*Session, error) {
	s := &Session{
		lastLogin:     now,
		online:        true,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setName(name),
		s.setPhone(phone),
		s.setColor(color),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreSession reconstructs a session from persistence.
func RestoreSession(name string, phone kernel.Phone, color string, lastLogin time.Time, online bool) (*Session, error) {
	s, err := NewSession(name, phone, color, lastLogin)
	if err != nil {
		return nil, err
	}

	s.online = online
	return s, nil
}

// Validate ensures the Session was created through a constructor.
func (s *Session) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSessionIsNotConstructed
	}
	return nil
}

// Name returns the agent's display name.
func (s *Session) Name() string { return s.name }

// Phone returns the agent's normalized identity.
func (s *Session) Phone() kernel.Phone { return s.phone }

// Color returns the color slot the session holds.
func (s *Session) Color() string { return s.color }

// LastLogin returns the time of the most recent login.
func (s *Session) LastLogin() time.Time { return s.lastLogin }

// Online returns the stored status flag. Prefer IsLive for any
// availability decision; the flag alone lies after a client crash.
func (s *Session) Online() bool { return s.online }

// IsLive reports whether the session counts as an active slot holder at
// the given time.
func (s *Session) IsLive(now time.Time) bool {
	if !s.online {
		return false
	}
	if now.Sub(s.lastLogin) > SessionStaleAfter {
		return false
	}
	return kernel.SameBusinessDay(s.lastLogin, now)
}

// Refresh treats a repeated login by the same identity and color as a
// login, not a conflict: the session comes back online with a fresh
// last-login stamp. The display name follows the latest login.
func (s *Session) Refresh(name string, now time.Time) error {
	if err := s.setName(name); err != nil {
		return err
	}

	s.lastLogin = now
	s.online = true
	return nil
}

// Release frees the slot. Used for both agent-initiated logout and
// administrator-forced logout; the color becomes immediately claimable.
func (s *Session) Release() {
	s.online = false
}

func (s *Session) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("driver name")
	}
	s.name = name
	return nil
}

func (s *Session) setPhone(phone kernel.Phone) error {
	if err := phone.Validate(); err != nil {
		return err
	}
	s.phone = phone
	return nil
}

func (s *Session) setColor(color string) error {
	if color == "" {
		return errs.NewValueIsRequiredError("color")
	}
	s.color = color
	return nil
}
