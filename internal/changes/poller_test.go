package changes_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"dispatch/internal/changes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoller_TryPoll_RunsFetch(t *testing.T) {
	ctx := t.Context()
	poller := changes.NewPoller()

	calls := 0
	ran, err := poller.TryPoll(ctx, "orders", func(context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, 1, calls)
}

func TestPoller_TryPoll_PropagatesFetchError(t *testing.T) {
	ctx := t.Context()
	poller := changes.NewPoller()

	ran, err := poller.TryPoll(ctx, "orders", func(context.Context) error {
		return errors.New("backend gone")
	})

	assert.True(t, ran)
	require.EqualError(t, err, "backend gone")
}

func TestPoller_TryPoll_DropsTriggerWhileInFlight(t *testing.T) {
	ctx := t.Context()
	poller := changes.NewPoller()

	started := make(chan struct{})
	release := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ran, err := poller.TryPoll(ctx, "orders", func(context.Context) error {
			close(started)
			<-release
			return nil
		})
		assert.True(t, ran)
		assert.NoError(t, err)
	}()

	<-started

	// The first fetch is still running; this trigger must be dropped.
	ran, err := poller.TryPoll(ctx, "orders", func(context.Context) error {
		t.Error("second fetch must not run")
		return nil
	})
	require.NoError(t, err)
	assert.False(t, ran)

	// A different resource is independent.
	ran, err = poller.TryPoll(ctx, "drivers", func(context.Context) error { return nil })
	require.NoError(t, err)
	assert.True(t, ran)

	close(release)
	wg.Wait()

	// The first fetch finished; the resource accepts triggers again.
	ran, err = poller.TryPoll(ctx, "orders", func(context.Context) error { return nil })
	require.NoError(t, err)
	assert.True(t, ran)
}
