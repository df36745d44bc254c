package changes

import (
	"context"
	"sync"
)

// Fetch loads the current state of one resource from the backend.
type Fetch func(ctx context.Context) error

// Poller serializes re-fetches per resource. At most one fetch per
// resource is in flight at any time: a trigger arriving while a fetch
// runs is dropped, because the running fetch already returns state at
// least as fresh as the trigger implies. Triggers are edge signals, not
// a work queue.
type Poller struct {
	mu       sync.Mutex
	inFlight map[string]bool
}

// NewPoller creates a Poller.
func NewPoller() *Poller {
	return &Poller{inFlight: make(map[string]bool)}
}

// TryPoll runs fetch for the resource unless one is already running.
// Returns false with a nil error when the trigger was dropped.
func (p *Poller) TryPoll(ctx context.Context, resource string, fetch Fetch) (bool, error) {
	p.mu.Lock()
	if p.inFlight[resource] {
		p.mu.Unlock()
		return false, nil
	}
	p.inFlight[resource] = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		delete(p.inFlight, resource)
		p.mu.Unlock()
	}()

	return true, fetch(ctx)
}
