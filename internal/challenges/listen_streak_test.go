package challenges

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/openaudio/discovery-indexer/internal/logger"
	"github.com/openaudio/discovery-indexer/internal/store"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

func newChallengeTestStore(t *testing.T) store.Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, store.AutoMigrate(db))

	return store.NewPGStore(db)
}

// playAt builds a track_listen event at noon UTC on the given day offset from
// the base date.
func playAt(userID int32, dayOffset int, blockNumber int64) Event {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return Event{
		Type:           EventTypeTrackListen,
		BlockNumber:    blockNumber,
		BlockTimestamp: base.AddDate(0, 0, dayOffset),
		UserID:         userID,
	}
}

func TestListenStreakFirstPlay(t *testing.T) {
	ctx := context.Background()
	st := newChallengeTestStore(t)
	m := NewListenStreakManager()

	require.NoError(t, m.Process(ctx, st, []Event{playAt(3000001, 0, 100)}))

	rows, err := m.UserChallengeState(ctx, st, 3000001)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int32(1), rows[0].CurrentStepCount)
	assert.False(t, rows[0].IsComplete)
	require.NotNil(t, rows[0].LastPlayDate)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), rows[0].LastPlayDate.UTC())
	assert.Equal(t, "2dc6c1_20240501", rows[0].Specifier)
}

func TestListenStreakConsecutiveDays(t *testing.T) {
	ctx := context.Background()
	st := newChallengeTestStore(t)
	m := NewListenStreakManager()

	for day := 0; day < 3; day++ {
		require.NoError(t, m.Process(ctx, st, []Event{playAt(3000001, day, int64(100+day))}))
	}

	rows, err := m.UserChallengeState(ctx, st, 3000001)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int32(3), rows[0].CurrentStepCount)
	assert.False(t, rows[0].IsComplete)
}

func TestListenStreakSameDayNoOp(t *testing.T) {
	ctx := context.Background()
	st := newChallengeTestStore(t)
	m := NewListenStreakManager()

	require.NoError(t, m.Process(ctx, st, []Event{playAt(3000001, 0, 100)}))

	// A second play later the same day changes nothing.
	later := playAt(3000001, 0, 101)
	later.BlockTimestamp = later.BlockTimestamp.Add(5 * time.Hour)
	require.NoError(t, m.Process(ctx, st, []Event{later}))

	rows, err := m.UserChallengeState(ctx, st, 3000001)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int32(1), rows[0].CurrentStepCount)
}

func TestListenStreakCompletion(t *testing.T) {
	ctx := context.Background()
	st := newChallengeTestStore(t)
	m := NewListenStreakManager()

	for day := 0; day < 7; day++ {
		require.NoError(t, m.Process(ctx, st, []Event{playAt(3000001, day, int64(100+day))}))
	}

	rows, err := m.UserChallengeState(ctx, st, 3000001)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int32(7), rows[0].CurrentStepCount)
	assert.True(t, rows[0].IsComplete)
	require.NotNil(t, rows[0].CompletedBlockNumber)
	assert.Equal(t, int64(106), *rows[0].CompletedBlockNumber)
	require.NotNil(t, rows[0].CompletedAt)
}

func TestListenStreakNewCycleAfterCompletion(t *testing.T) {
	ctx := context.Background()
	st := newChallengeTestStore(t)
	m := NewListenStreakManager()

	for day := 0; day < 7; day++ {
		require.NoError(t, m.Process(ctx, st, []Event{playAt(3000001, day, int64(100+day))}))
	}

	t.Run("same day as the last counted play is a no-op", func(t *testing.T) {
		replay := playAt(3000001, 6, 107)
		replay.BlockTimestamp = replay.BlockTimestamp.Add(3 * time.Hour)
		require.NoError(t, m.Process(ctx, st, []Event{replay}))

		rows, err := m.UserChallengeState(ctx, st, 3000001)
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("a later day opens a fresh cycle at step one", func(t *testing.T) {
		require.NoError(t, m.Process(ctx, st, []Event{playAt(3000001, 9, 110)}))

		rows, err := m.UserChallengeState(ctx, st, 3000001)
		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.True(t, rows[0].IsComplete)
		assert.Equal(t, int32(7), rows[0].CurrentStepCount)

		assert.False(t, rows[1].IsComplete)
		assert.Equal(t, int32(1), rows[1].CurrentStepCount)
		assert.Equal(t, "2dc6c1_20240510", rows[1].Specifier)
	})
}

func TestListenStreakGapFreezesCycle(t *testing.T) {
	ctx := context.Background()
	st := newChallengeTestStore(t)
	m := NewListenStreakManager()

	for day := 0; day < 3; day++ {
		require.NoError(t, m.Process(ctx, st, []Event{playAt(3000001, day, int64(100+day))}))
	}

	// Two missed days break the streak.
	require.NoError(t, m.Process(ctx, st, []Event{playAt(3000001, 5, 110)}))

	rows, err := m.UserChallengeState(ctx, st, 3000001)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// The broken cycle keeps its progress but never completes.
	assert.Equal(t, int32(3), rows[0].CurrentStepCount)
	assert.False(t, rows[0].IsComplete)

	assert.Equal(t, int32(1), rows[1].CurrentStepCount)
}

func TestListenStreakBatchKeepsLatestPlay(t *testing.T) {
	ctx := context.Background()
	st := newChallengeTestStore(t)
	m := NewListenStreakManager()

	require.NoError(t, m.Process(ctx, st, []Event{playAt(3000001, 0, 100)}))

	// Plays for days 1 and 2 arrive in one batch: only the latest counts, so
	// the two-day jump breaks the streak instead of advancing it twice.
	require.NoError(t, m.Process(ctx, st, []Event{
		playAt(3000001, 1, 101),
		playAt(3000001, 2, 102),
	}))

	rows, err := m.UserChallengeState(ctx, st, 3000001)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int32(1), rows[0].CurrentStepCount)
	assert.Equal(t, int32(1), rows[1].CurrentStepCount)
	assert.Equal(t, "2dc6c1_20240503", rows[1].Specifier)
}

func TestListenStreakIndependentUsers(t *testing.T) {
	ctx := context.Background()
	st := newChallengeTestStore(t)
	m := NewListenStreakManager()

	require.NoError(t, m.Process(ctx, st, []Event{
		playAt(3000001, 0, 100),
		playAt(3000002, 0, 100),
	}))
	require.NoError(t, m.Process(ctx, st, []Event{playAt(3000001, 1, 101)}))

	rows, err := m.UserChallengeState(ctx, st, 3000001)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int32(2), rows[0].CurrentStepCount)

	rows, err = m.UserChallengeState(ctx, st, 3000002)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int32(1), rows[0].CurrentStepCount)
}
