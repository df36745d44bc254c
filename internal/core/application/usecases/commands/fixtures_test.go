package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

const testRawPhone = "+7 (705) 123-45-67"

func testPhone(t *testing.T) kernel.Phone {
	t.Helper()
	phone, err := kernel.NewPhone(testRawPhone)
	require.NoError(t, err)
	return phone
}

func liveSession(t *testing.T, now time.Time) *driver.Session {
	t.Helper()
	session, err := driver.NewSession("Rustam", testPhone(t), "red", now)
	require.NoError(t, err)
	return session
}

func liveSessionFor(t *testing.T, name string, phone kernel.Phone, color string, now time.Time) *driver.Session {
	t.Helper()
	session, err := driver.NewSession(name, phone, color, now)
	require.NoError(t, err)
	return session
}

func staleSession(t *testing.T, now time.Time) *driver.Session {
	t.Helper()
	session, err := driver.RestoreSession(
		"Rustam", testPhone(t), "red", now.Add(-driver.SessionStaleAfter-time.Minute), true)
	require.NoError(t, err)
	return session
}

func readyDeliveryOrder(t *testing.T, code, sectorID string, now time.Time) *order.Order {
	t.Helper()
	aggregate, err := order.NewOrder(
		code, "Aigerim", "+7 (701) 000-11-22", order.Delivery, "Abay 10, apt 4", sectorID,
		[]order.LineItem{{Name: "Margherita", Quantity: 1, UnitPrice: 3200}},
		"cash", 0, now)
	require.NoError(t, err)

	for _, status := range []order.Status{order.Preparing, order.Packing, order.ReadyForDelivery} {
		require.NoError(t, aggregate.TransitionTo(status, now))
	}

	return aggregate
}

func outForDeliveryOrder(t *testing.T, code string, now time.Time) *order.Order {
	t.Helper()
	aggregate := readyDeliveryOrder(t, code, "north", now)

	binding := order.DriverBinding{Name: "Rustam", Phone: testPhone(t), Color: "red"}
	require.NoError(t, aggregate.AssignDriver(binding, now))

	return aggregate
}
