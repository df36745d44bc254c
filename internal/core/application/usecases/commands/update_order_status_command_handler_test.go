package commands_test

import (
	"errors"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateOrderStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	now := time.Now().UTC()

	cmd, err := commands.NewUpdateOrderStatusCommand("A-1001", order.Preparing)
	require.NoError(t, err)

	aggregate, err := order.NewOrder(
		"A-1001", "Aigerim", "+7 (701) 000-11-22", order.Pickup, "", "",
		[]order.LineItem{{Name: "Pepperoni", Quantity: 2, UnitPrice: 3500}},
		"card", 0, now)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, "A-1001").Return(aggregate, nil).Once(),
		orderRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockChangePublisher)
	publisher.On("PublishChange", ctx, "orders", "A-1001").Return(nil).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Preparing, aggregate.Status())
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_RepeatTransitionIsNoOp(t *testing.T) {
	ctx := t.Context()
	now := time.Now().UTC()

	cmd, err := commands.NewUpdateOrderStatusCommand("A-1001", order.ReadyForDelivery)
	require.NoError(t, err)

	aggregate := readyDeliveryOrder(t, "A-1001", "north", now)
	updatedBefore := aggregate.UpdatedAt()

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, "A-1001").Return(aggregate, nil).Once(),
		orderRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockChangePublisher)
	publisher.On("PublishChange", ctx, "orders", "A-1001").Return(nil).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.ReadyForDelivery, aggregate.Status())
	assert.Equal(t, updatedBefore, aggregate.UpdatedAt())
}

func TestUpdateOrderStatusCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	now := time.Now().UTC()

	// Skipping preparing entirely is rejected.
	cmd, err := commands.NewUpdateOrderStatusCommand("A-1001", order.Completed)
	require.NoError(t, err)

	aggregate, err := order.NewOrder(
		"A-1001", "Aigerim", "+7 (701) 000-11-22", order.Pickup, "", "",
		[]order.LineItem{{Name: "Pepperoni", Quantity: 1, UnitPrice: 3500}},
		"card", 0, now)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, "A-1001").Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory, new(MockChangePublisher))
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, order.Pending, aggregate.Status())
	orderRepo.AssertNotCalled(t, "Update", ctx, aggregate)
}

func TestUpdateOrderStatusCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewUpdateOrderStatusCommand("A-9999", order.Preparing)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, "A-9999").
			Return(nil, errs.NewObjectNotFoundError("order", "A-9999")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory, new(MockChangePublisher))
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestUpdateOrderStatusCommandHandler_Handle_PublishFailureIsSwallowed(t *testing.T) {
	ctx := t.Context()
	now := time.Now().UTC()

	cmd, err := commands.NewUpdateOrderStatusCommand("A-1001", order.Preparing)
	require.NoError(t, err)

	aggregate, err := order.NewOrder(
		"A-1001", "Aigerim", "+7 (701) 000-11-22", order.DineIn, "", "",
		[]order.LineItem{{Name: "Quattro", Quantity: 1, UnitPrice: 4100}},
		"cash", 0, now)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, "A-1001").Return(aggregate, nil).Once(),
		orderRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockChangePublisher)
	publisher.On("PublishChange", ctx, "orders", "A-1001").
		Return(errors.New("broker unreachable")).Once()

	handler := commands.NewUpdateOrderStatusCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	// The poll fallback picks the change up; the mutation already
	// committed.
	require.NoError(t, err)
	publisher.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()

	factory := new(MockOrderUoWFactory)
	handler := commands.NewUpdateOrderStatusCommandHandler(factory, new(MockChangePublisher))

	err := handler.Handle(ctx, commands.UpdateOrderStatusCommand{})

	require.ErrorIs(t, err, commands.ErrUpdateOrderStatusCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
