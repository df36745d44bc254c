package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSweepSessionsCommandHandler_Handle_SweepsStaleOnly(t *testing.T) {
	ctx := t.Context()
	now := time.Now().UTC()

	cmd, err := commands.NewSweepSessionsCommand()
	require.NoError(t, err)

	live := liveSession(t, now)
	stale := staleSession(t, now)

	offlinePhone, err := kernel.NewPhone("77001112233")
	require.NoError(t, err)
	offline, err := driver.RestoreSession("Dana", offlinePhone, "blue", now.Add(-time.Hour), false)
	require.NoError(t, err)

	driverRepo := new(MockDriverRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("GetAll", ctx).Return([]*driver.Session{live, stale, offline}, nil).Once(),
		driverRepo.On("Save", ctx, stale).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDriverUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockChangePublisher)
	publisher.On("PublishChange", ctx, "drivers", "").Return(nil).Once()

	handler := commands.NewSweepSessionsCommandHandler(factory, publisher)
	swept, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, swept)
	assert.False(t, stale.Online())
	assert.True(t, live.Online())
	driverRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestSweepSessionsCommandHandler_Handle_NothingToSweep(t *testing.T) {
	ctx := t.Context()
	now := time.Now().UTC()

	cmd, err := commands.NewSweepSessionsCommand()
	require.NoError(t, err)

	driverRepo := new(MockDriverRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("GetAll", ctx).Return([]*driver.Session{liveSession(t, now)}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDriverUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockChangePublisher)

	handler := commands.NewSweepSessionsCommandHandler(factory, publisher)
	swept, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Zero(t, swept)
	uow.AssertNotCalled(t, "Commit", ctx)
	publisher.AssertNotCalled(t, "PublishChange", ctx, "drivers", "")
}
