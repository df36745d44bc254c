package changes

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	// FallbackInterval is how often resources are re-fetched while the
	// event channel is down. Freshness degrades to this bound, nothing
	// else changes.
	FallbackInterval = 5 * time.Second

	// SafetyNetInterval is the slow unconditional re-fetch that catches
	// events lost while the channel looked healthy.
	SafetyNetInterval = 30 * time.Second

	// dedupLimit bounds the remembered event ids.
	dedupLimit = 1024
)

// Watcher drives the re-fetch loop for a set of resources. Change
// events trigger an immediate re-fetch of the named resource; when the
// event channel is down every resource falls back to interval polling;
// a slow safety-net poll runs regardless. Duplicate event deliveries
// are dropped by event id, which is safe because events carry no data.
type Watcher struct {
	poller  *Poller
	fetches map[string]Fetch
	events  <-chan Change
	logger  *slog.Logger

	fallback  time.Duration
	safetyNet time.Duration

	seen      map[uuid.UUID]struct{}
	seenOrder []uuid.UUID
}

// NewWatcher creates a watcher over the given resource fetches. events
// may be nil when no event channel is available; the watcher then runs
// on the fallback interval alone.
func NewWatcher(fetches map[string]Fetch, events <-chan Change, logger *slog.Logger) *Watcher {
	return &Watcher{
		poller:    NewPoller(),
		fetches:   fetches,
		events:    events,
		logger:    logger.With("component", "change_watcher"),
		fallback:  FallbackInterval,
		safetyNet: SafetyNetInterval,
		seen:      make(map[uuid.UUID]struct{}),
	}
}

// Run blocks until ctx is cancelled, dispatching re-fetches for change
// events and interval ticks.
func (w *Watcher) Run(ctx context.Context) {
	fallbackTicker := time.NewTicker(w.fallback)
	defer fallbackTicker.Stop()

	safetyTicker := time.NewTicker(w.safetyNet)
	defer safetyTicker.Stop()

	eventsDown := w.events == nil
	if eventsDown {
		w.logger.InfoContext(ctx, "No event channel, running on fallback polling")
	}

	for {
		select {
		case <-ctx.Done():
			return

		case change, ok := <-w.events:
			if !ok {
				// A closed channel stays closed; stop selecting on it
				// and let the fallback ticker carry the load.
				w.events = nil
				eventsDown = true
				w.logger.WarnContext(ctx, "Event channel closed, falling back to polling")
				continue
			}

			if w.isDuplicate(change.EventID) {
				continue
			}

			w.refetch(ctx, change.Resource)

		case <-fallbackTicker.C:
			if eventsDown {
				w.refetchAll(ctx)
			}

		case <-safetyTicker.C:
			w.refetchAll(ctx)
		}
	}
}

func (w *Watcher) refetchAll(ctx context.Context) {
	for resource := range w.fetches {
		w.refetch(ctx, resource)
	}
}

func (w *Watcher) refetch(ctx context.Context, resource string) {
	fetch, known := w.fetches[resource]
	if !known {
		w.logger.WarnContext(ctx, "Change for unknown resource", "resource", resource)
		return
	}

	ran, err := w.poller.TryPoll(ctx, resource, fetch)
	if err != nil {
		w.logger.ErrorContext(ctx, "Re-fetch failed", "resource", resource, "error", err)
		return
	}
	if !ran {
		// A fetch for this resource is already in flight; its result
		// covers this trigger.
		return
	}
}

// isDuplicate records the event id and reports whether it was already
// seen. The memory is bounded; oldest ids are forgotten first.
func (w *Watcher) isDuplicate(id uuid.UUID) bool {
	if _, dup := w.seen[id]; dup {
		return true
	}

	w.seen[id] = struct{}{}
	w.seenOrder = append(w.seenOrder, id)
	if len(w.seenOrder) > dedupLimit {
		oldest := w.seenOrder[0]
		w.seenOrder = w.seenOrder[1:]
		delete(w.seen, oldest)
	}

	return false
}
