package challenges_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openaudio/discovery-indexer/internal/challenges"
	"github.com/openaudio/discovery-indexer/internal/mocks"
)

var busTestTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestBusImmediateDispatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	st := mocks.NewMockStore(ctrl)
	manager := mocks.NewMockManager(ctrl)
	manager.EXPECT().Process(gomock.Any(), gomock.Any(), gomock.Len(1)).Return(nil)

	bus := challenges.NewBus(st)
	bus.RegisterListener(challenges.EventTypeTrackUpload, manager)

	// Outside a scope, dispatch delivers straight away.
	err := bus.Dispatch(ctx, challenges.EventTypeTrackUpload, 100, busTestTime, 3000001, nil)
	require.NoError(t, err)
}

func TestBusDropsAnonymousEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	st := mocks.NewMockStore(ctrl)
	manager := mocks.NewMockManager(ctrl)

	bus := challenges.NewBus(st)
	bus.RegisterListener(challenges.EventTypeTrackListen, manager)

	require.NoError(t, bus.Dispatch(ctx, challenges.EventTypeTrackListen, 100, busTestTime, 0, nil))
	require.NoError(t, bus.Dispatch(ctx, challenges.EventTypeTrackListen, 100, busTestTime, -5, nil))

	processed, err := bus.ProcessEvents(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, 0, processed)
}

func TestBusScopedQueueDrainsAfterSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	st := mocks.NewMockStore(ctrl)
	manager := mocks.NewMockManager(ctrl)
	bus := challenges.NewBus(st)
	bus.RegisterListener(challenges.EventTypeTrackListen, manager)

	err := bus.WithScopedQueue(ctx, func(ctx context.Context) error {
		// Buffered, not delivered yet: the manager has no expectations at
		// this point, so an early delivery would fail the test.
		require.NoError(t, bus.Dispatch(ctx, challenges.EventTypeTrackListen, 100, busTestTime, 3000001, nil))
		require.NoError(t, bus.Dispatch(ctx, challenges.EventTypeTrackListen, 100, busTestTime, 3000002, nil))
		return nil
	})
	require.NoError(t, err)

	manager.EXPECT().
		Process(gomock.Any(), gomock.Any(), gomock.Len(2)).
		Return(nil)

	processed, err := bus.ProcessEvents(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, 2, processed)

	// The queue is drained; a second call finds nothing.
	processed, err = bus.ProcessEvents(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, 0, processed)
}

func TestBusScopedQueueDiscardsOnError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	st := mocks.NewMockStore(ctrl)
	manager := mocks.NewMockManager(ctrl)
	bus := challenges.NewBus(st)
	bus.RegisterListener(challenges.EventTypeTrackListen, manager)

	scopeErr := errors.New("block aborted")
	err := bus.WithScopedQueue(ctx, func(ctx context.Context) error {
		require.NoError(t, bus.Dispatch(ctx, challenges.EventTypeTrackListen, 100, busTestTime, 3000001, nil))
		return scopeErr
	})
	require.ErrorIs(t, err, scopeErr)

	// The buffered event was discarded with the failed scope.
	processed, err := bus.ProcessEvents(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, 0, processed)
}

func TestBusNestedScopeRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	bus := challenges.NewBus(mocks.NewMockStore(ctrl))

	err := bus.WithScopedQueue(ctx, func(ctx context.Context) error {
		return bus.WithScopedQueue(ctx, func(ctx context.Context) error { return nil })
	})
	require.Error(t, err)
}

func TestBusGroupsEventsByType(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	st := mocks.NewMockStore(ctrl)
	listens := mocks.NewMockManager(ctrl)
	uploads := mocks.NewMockManager(ctrl)

	bus := challenges.NewBus(st)
	bus.RegisterListener(challenges.EventTypeTrackListen, listens)
	bus.RegisterListener(challenges.EventTypeTrackUpload, uploads)

	err := bus.WithScopedQueue(ctx, func(ctx context.Context) error {
		require.NoError(t, bus.Dispatch(ctx, challenges.EventTypeTrackListen, 100, busTestTime, 3000001, nil))
		require.NoError(t, bus.Dispatch(ctx, challenges.EventTypeTrackUpload, 100, busTestTime, 3000001, nil))
		require.NoError(t, bus.Dispatch(ctx, challenges.EventTypeTrackListen, 100, busTestTime, 3000002, nil))
		return nil
	})
	require.NoError(t, err)

	listens.EXPECT().Process(gomock.Any(), gomock.Any(), gomock.Len(2)).Return(nil)
	uploads.EXPECT().Process(gomock.Any(), gomock.Any(), gomock.Len(1)).Return(nil)

	processed, err := bus.ProcessEvents(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, 3, processed)
}

func TestBusManagerFailureStopsDelivery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	st := mocks.NewMockStore(ctrl)
	manager := mocks.NewMockManager(ctrl)
	bus := challenges.NewBus(st)
	bus.RegisterListener(challenges.EventTypeTrackListen, manager)

	err := bus.WithScopedQueue(ctx, func(ctx context.Context) error {
		return bus.Dispatch(ctx, challenges.EventTypeTrackListen, 100, busTestTime, 3000001, nil)
	})
	require.NoError(t, err)

	manager.EXPECT().Process(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))
	manager.EXPECT().ChallengeID().Return("listen-streak")

	_, err = bus.ProcessEvents(ctx, st)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen-streak")
}

func TestBusEventsWithoutListenersAreCounted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	st := mocks.NewMockStore(ctrl)
	bus := challenges.NewBus(st)

	err := bus.WithScopedQueue(ctx, func(ctx context.Context) error {
		return bus.Dispatch(ctx, challenges.EventTypeMobileInstall, 100, busTestTime, 3000001, nil)
	})
	require.NoError(t, err)

	processed, err := bus.ProcessEvents(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, 1, processed)
}
