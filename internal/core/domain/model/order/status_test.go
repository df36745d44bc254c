package order_test

import (
	"testing"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusString(t *testing.T) {
	tests := []struct {
		status   order.Status
		expected string
	}{
		{order.Pending, "pending"},
		{order.Preparing, "preparing"},
		{order.Packing, "packing"},
		{order.ReadyForDelivery, "ready_for_delivery"},
		{order.OutForDelivery, "out_for_delivery"},
		{order.ReadyForPickup, "ready_for_pickup"},
		{order.Completed, "completed"},
		{order.Cancelled, "cancelled"},
		{order.StatusUnknown, "unknown"},
		{order.Status(42), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.status.String())
	}
}

func TestStatusFromString(t *testing.T) {
	t.Run("round trips every valid status", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Pending, order.Preparing, order.Packing, order.ReadyForDelivery,
			order.OutForDelivery, order.ReadyForPickup, order.Completed, order.Cancelled,
		} {
			parsed, err := order.StatusFromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("rejects unknown strings", func(t *testing.T) {
		_, err := order.StatusFromString("shipped")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = order.StatusFromString("unknown")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatusNext(t *testing.T) {
	t.Run("delivery sequence", func(t *testing.T) {
		seq := []order.Status{
			order.Pending, order.Preparing, order.Packing,
			order.ReadyForDelivery, order.OutForDelivery, order.Completed,
		}
		for i := 0; i < len(seq)-1; i++ {
			next, ok := seq[i].Next(order.Delivery)
			require.True(t, ok)
			assert.Equal(t, seq[i+1], next)
		}
	})

	t.Run("pickup sequence skips packing and delivery states", func(t *testing.T) {
		next, ok := order.Preparing.Next(order.Pickup)
		require.True(t, ok)
		assert.Equal(t, order.ReadyForPickup, next)
	})

	t.Run("terminal states have no successor", func(t *testing.T) {
		_, ok := order.Completed.Next(order.Delivery)
		assert.False(t, ok)

		_, ok = order.Cancelled.Next(order.Pickup)
		assert.False(t, ok)
	})

	t.Run("foreign states have no successor in the mode", func(t *testing.T) {
		_, ok := order.Packing.Next(order.Pickup)
		assert.False(t, ok)

		_, ok = order.ReadyForPickup.Next(order.Delivery)
		assert.False(t, ok)
	})
}

func TestStatusCanTransition(t *testing.T) {
	t.Run("allows the next state in sequence", func(t *testing.T) {
		require.NoError(t, order.Pending.CanTransition(order.Preparing, order.Delivery))
		require.NoError(t, order.Packing.CanTransition(order.ReadyForDelivery, order.Delivery))
		require.NoError(t, order.Preparing.CanTransition(order.ReadyForPickup, order.DineIn))
	})

	t.Run("never allows skipping a state", func(t *testing.T) {
		err := order.Pending.CanTransition(order.OutForDelivery, order.Delivery)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)

		err = order.Pending.CanTransition(order.Completed, order.Delivery)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)

		err = order.Preparing.CanTransition(order.ReadyForDelivery, order.Delivery)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("never allows moving backwards", func(t *testing.T) {
		err := order.Packing.CanTransition(order.Preparing, order.Delivery)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("allows cancel from any non-terminal state", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Pending, order.Preparing, order.Packing,
			order.ReadyForDelivery, order.OutForDelivery, order.ReadyForPickup,
		} {
			require.NoError(t, s.CanTransition(order.Cancelled, order.Delivery))
		}
	})

	t.Run("rejects cancel from terminal states", func(t *testing.T) {
		err := order.Completed.CanTransition(order.Cancelled, order.Delivery)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("repeated identical target is accepted", func(t *testing.T) {
		require.NoError(t, order.Completed.CanTransition(order.Completed, order.Delivery))
		require.NoError(t, order.Preparing.CanTransition(order.Preparing, order.Pickup))
	})

	t.Run("rejects cross-mode targets", func(t *testing.T) {
		err := order.Preparing.CanTransition(order.Packing, order.Pickup)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)

		err = order.Preparing.CanTransition(order.ReadyForPickup, order.Delivery)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}
