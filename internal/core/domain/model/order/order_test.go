package order_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testItems = []order.LineItem{
	{Name: "Margherita", Quantity: 2, UnitPrice: 9.5},
	{Name: "Cola", Quantity: 1, UnitPrice: 2.0},
}

func newDeliveryOrder(t *testing.T, now time.Time) *order.Order {
	t.Helper()
	o, err := order.NewOrder("A-1001", "Aisha", "+7 701 111 2233",
		order.Delivery, "12 Abay Ave", "sector-north", testItems, "cash", 50, now)
	require.NoError(t, err)
	return o
}

func newPickupOrder(t *testing.T, now time.Time) *order.Order {
	t.Helper()
	o, err := order.NewOrder("A-1002", "Bekzat", "+7 700 555 0102",
		order.Pickup, "", "", testItems, "card", 0, now)
	require.NoError(t, err)
	return o
}

func testBinding(t *testing.T) order.DriverBinding {
	t.Helper()
	phone, err := kernel.NewPhone("+7 (701) 999-88-77")
	require.NoError(t, err)
	return order.DriverBinding{Name: "Marat", Phone: phone, Color: "red"}
}

func TestNewOrder(t *testing.T) {
	now := time.Date(2025, time.March, 14, 19, 0, 0, 0, time.UTC)

	t.Run("creates a pending delivery order", func(t *testing.T) {
		o := newDeliveryOrder(t, now)

		require.NoError(t, o.Validate())
		assert.Equal(t, "A-1001", o.Code())
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, "sector-north", o.SectorID())
		assert.Nil(t, o.Driver())
		assert.Equal(t, now, o.CreatedAt())
		assert.InDelta(t, 21.0, o.Total(), 0.001)
	})

	t.Run("fails without an order code", func(t *testing.T) {
		_, err := order.NewOrder("", "Aisha", "", order.Pickup, "", "", testItems, "cash", 0, now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "order code")
	})

	t.Run("delivery order requires an address", func(t *testing.T) {
		_, err := order.NewOrder("A-1", "Aisha", "", order.Delivery, "", "sector-north", testItems, "cash", 0, now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "delivery address")
	})

	t.Run("pickup order cannot carry a sector", func(t *testing.T) {
		_, err := order.NewOrder("A-1", "Aisha", "", order.Pickup, "", "sector-north", testItems, "cash", 0, now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("fails without line items", func(t *testing.T) {
		_, err := order.NewOrder("A-1", "Aisha", "", order.Pickup, "", "", nil, "cash", 0, now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "line items")
	})

	t.Run("fails on a non-positive quantity", func(t *testing.T) {
		bad := []order.LineItem{{Name: "Margherita", Quantity: 0, UnitPrice: 9.5}}

		_, err := order.NewOrder("A-1", "Aisha", "", order.Pickup, "", "", bad, "cash", 0, now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var o order.Order

		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrderTransitionTo(t *testing.T) {
	created := time.Date(2025, time.March, 14, 19, 0, 0, 0, time.UTC)

	t.Run("walks the full delivery sequence", func(t *testing.T) {
		o := newDeliveryOrder(t, created)
		now := created

		for _, target := range []order.Status{
			order.Preparing, order.Packing, order.ReadyForDelivery,
		} {
			now = now.Add(5 * time.Minute)
			require.NoError(t, o.TransitionTo(target, now))
			assert.Equal(t, target, o.Status())
			assert.Equal(t, now, o.UpdatedAt())
		}
	})

	t.Run("walks the pickup sequence to completion", func(t *testing.T) {
		o := newPickupOrder(t, created)

		require.NoError(t, o.TransitionTo(order.Preparing, created.Add(time.Minute)))
		require.NoError(t, o.TransitionTo(order.ReadyForPickup, created.Add(2*time.Minute)))

		completedAt := created.Add(10 * time.Minute)
		require.NoError(t, o.TransitionTo(order.Completed, completedAt))

		require.NotNil(t, o.CompletedAt())
		assert.Equal(t, completedAt, *o.CompletedAt())
	})

	t.Run("rejects skipping a state and leaves the order unchanged", func(t *testing.T) {
		o := newDeliveryOrder(t, created)
		before := o.UpdatedAt()

		err := o.TransitionTo(order.OutForDelivery, created.Add(time.Minute))

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, before, o.UpdatedAt())
	})

	t.Run("re-applying completed is a no-op that keeps the timestamp", func(t *testing.T) {
		o := newPickupOrder(t, created)
		require.NoError(t, o.TransitionTo(order.Preparing, created))
		require.NoError(t, o.TransitionTo(order.ReadyForPickup, created))

		completedAt := created.Add(10 * time.Minute)
		require.NoError(t, o.TransitionTo(order.Completed, completedAt))

		require.NoError(t, o.TransitionTo(order.Completed, completedAt.Add(time.Hour)))

		assert.Equal(t, order.Completed, o.Status())
		assert.Equal(t, completedAt, *o.CompletedAt())
		assert.Equal(t, completedAt, o.UpdatedAt())
	})

	t.Run("cancel drops the driver binding", func(t *testing.T) {
		o := newDeliveryOrder(t, created)
		require.NoError(t, o.TransitionTo(order.Preparing, created))
		require.NoError(t, o.TransitionTo(order.Packing, created))
		require.NoError(t, o.TransitionTo(order.ReadyForDelivery, created))
		require.NoError(t, o.AssignDriver(testBinding(t), created))

		require.NoError(t, o.TransitionTo(order.Cancelled, created.Add(time.Minute)))

		assert.Equal(t, order.Cancelled, o.Status())
		assert.Nil(t, o.Driver())
	})
}

func TestOrderAssignDriver(t *testing.T) {
	created := time.Date(2025, time.March, 14, 19, 0, 0, 0, time.UTC)

	t.Run("binds the driver and moves to out_for_delivery", func(t *testing.T) {
		o := newDeliveryOrder(t, created)
		require.NoError(t, o.TransitionTo(order.Preparing, created))
		require.NoError(t, o.TransitionTo(order.Packing, created))
		require.NoError(t, o.TransitionTo(order.ReadyForDelivery, created))

		binding := testBinding(t)
		require.NoError(t, o.AssignDriver(binding, created.Add(time.Minute)))

		assert.Equal(t, order.OutForDelivery, o.Status())
		require.NotNil(t, o.Driver())
		assert.Equal(t, "Marat", o.Driver().Name)
		assert.True(t, o.BelongsTo(binding.Phone))
	})

	t.Run("rejects claiming an order that is not ready", func(t *testing.T) {
		o := newDeliveryOrder(t, created)

		err := o.AssignDriver(testBinding(t), created)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Nil(t, o.Driver())
	})

	t.Run("rejects claiming a pickup order", func(t *testing.T) {
		o := newPickupOrder(t, created)
		require.NoError(t, o.TransitionTo(order.Preparing, created))
		require.NoError(t, o.TransitionTo(order.ReadyForPickup, created))

		err := o.AssignDriver(testBinding(t), created)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("belongs_to uses normalized phone comparison", func(t *testing.T) {
		o := newDeliveryOrder(t, created)
		require.NoError(t, o.TransitionTo(order.Preparing, created))
		require.NoError(t, o.TransitionTo(order.Packing, created))
		require.NoError(t, o.TransitionTo(order.ReadyForDelivery, created))
		require.NoError(t, o.AssignDriver(testBinding(t), created))

		formatted, err := kernel.NewPhone("7701 999 8877")
		require.NoError(t, err)
		assert.True(t, o.BelongsTo(formatted))

		other, err := kernel.NewPhone("77010000000")
		require.NoError(t, err)
		assert.False(t, o.BelongsTo(other))
	})
}

func TestOrderAttachReview(t *testing.T) {
	created := time.Date(2025, time.March, 14, 19, 0, 0, 0, time.UTC)

	t.Run("attaches to a completed order", func(t *testing.T) {
		o := newPickupOrder(t, created)
		require.NoError(t, o.TransitionTo(order.Preparing, created))
		require.NoError(t, o.TransitionTo(order.ReadyForPickup, created))
		require.NoError(t, o.TransitionTo(order.Completed, created))

		review := order.Review{Rating: 5, Comment: "hot and fast", At: created.Add(time.Hour)}
		require.NoError(t, o.AttachReview(review, created.Add(time.Hour)))

		require.NotNil(t, o.Review())
		assert.Equal(t, 5, o.Review().Rating)
	})

	t.Run("rejects review before completion", func(t *testing.T) {
		o := newPickupOrder(t, created)

		err := o.AttachReview(order.Review{Rating: 4}, created)

		require.ErrorIs(t, err, order.ErrReviewRequiresCompletion)
	})
}

func TestRestoreOrder(t *testing.T) {
	created := time.Date(2025, time.March, 14, 19, 0, 0, 0, time.UTC)
	updated := created.Add(30 * time.Minute)

	t.Run("restores an out_for_delivery order with its binding", func(t *testing.T) {
		binding := testBinding(t)

		o, err := order.RestoreOrder("A-1001", "Aisha", "+7 701 111 2233",
			order.Delivery, "12 Abay Ave", "sector-north", testItems, "cash", 50,
			order.OutForDelivery, &binding, nil, created, updated, nil)

		require.NoError(t, err)
		assert.Equal(t, order.OutForDelivery, o.Status())
		assert.Equal(t, updated, o.UpdatedAt())
		assert.True(t, o.BelongsTo(binding.Phone))
	})

	t.Run("rejects a binding on a ready order", func(t *testing.T) {
		binding := testBinding(t)

		_, err := order.RestoreOrder("A-1001", "Aisha", "",
			order.Delivery, "12 Abay Ave", "", testItems, "cash", 0,
			order.ReadyForDelivery, &binding, nil, created, updated, nil)

		require.ErrorIs(t, err, order.ErrDriverBindingNotAllowed)
	})

	t.Run("rejects a review on an uncompleted order", func(t *testing.T) {
		review := &order.Review{Rating: 5}

		_, err := order.RestoreOrder("A-1002", "Bekzat", "",
			order.Pickup, "", "", testItems, "card", 0,
			order.Preparing, nil, review, created, updated, nil)

		require.ErrorIs(t, err, order.ErrReviewRequiresCompletion)
	})
}
