package challenges

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/openaudio/discovery-indexer/internal/logger"
	"github.com/openaudio/discovery-indexer/internal/store"
	"github.com/openaudio/discovery-indexer/internal/store/schema"
)

const (
	// ListenStreakChallengeID identifies the endless listen-streak challenge.
	ListenStreakChallengeID = "listen-streak"

	// listenStreakSteps is the step count at which a cycle completes.
	listenStreakSteps = 7

	// listenStreakAmount is the reward in whole tokens per completed cycle.
	listenStreakAmount = 1
)

// ListenStreakManager tracks consecutive-day listening. The challenge is
// endless: completing a seven-day cycle freezes that cycle's row and later
// plays open a fresh one, so a user accumulates one row per cycle.
type ListenStreakManager struct{}

func NewListenStreakManager() *ListenStreakManager {
	return &ListenStreakManager{}
}

func (m *ListenStreakManager) ChallengeID() string {
	return ListenStreakChallengeID
}

// Process applies a batch of track_listen events. A batch may carry several
// plays for one user; only one state transition can be derived per user per
// batch, so the maximum timestamp is chosen as the representative. With
// out-of-order plays in one batch this can skip or reset a streak that
// per-play delivery would have advanced; that behavior is long-standing and
// kept as is.
func (m *ListenStreakManager) Process(ctx context.Context, st store.Store, events []Event) error {
	latestPlay := make(map[int32]Event)
	for _, event := range events {
		if prev, ok := latestPlay[event.UserID]; !ok || event.BlockTimestamp.After(prev.BlockTimestamp) {
			latestPlay[event.UserID] = event
		}
	}

	for userID, event := range latestPlay {
		if err := m.applyPlay(ctx, st, userID, event); err != nil {
			return fmt.Errorf("failed to apply play for user %d: %w", userID, err)
		}
	}
	return nil
}

func (m *ListenStreakManager) applyPlay(ctx context.Context, st store.Store, userID int32, event Event) error {
	playDay := dayOf(event.BlockTimestamp)

	latest, err := st.LatestUserChallenge(ctx, ListenStreakChallengeID, userID)
	if err != nil {
		return err
	}

	// No cycle yet, or the latest cycle is finished: open a new one, unless
	// the play falls on or before the finished cycle's last counted day.
	if latest == nil || latest.IsComplete {
		if latest != nil && latest.LastPlayDate != nil && !playDay.After(*latest.LastPlayDate) {
			return nil
		}
		return m.openCycle(ctx, st, userID, playDay)
	}

	if latest.LastPlayDate == nil {
		// A row without a play date cannot anchor a streak; restart it.
		latest.CurrentStepCount = 1
		latest.LastPlayDate = &playDay
		return st.SaveUserChallenge(ctx, latest)
	}

	lastDay := dayOf(*latest.LastPlayDate)
	switch gap := daysBetween(lastDay, playDay); {
	case gap <= 0:
		// Same-day (or older) plays never advance the streak.
		return nil
	case gap == 1:
		latest.CurrentStepCount++
		latest.LastPlayDate = &playDay
		if latest.CurrentStepCount >= listenStreakSteps {
			latest.IsComplete = true
			latest.CompletedBlockNumber = &event.BlockNumber
			completedAt := event.BlockTimestamp
			latest.CompletedAt = &completedAt
			logger.InfoCtx(ctx, "listen streak completed",
				zap.Int32("user_id", userID),
				zap.String("specifier", latest.Specifier))
		}
		return st.SaveUserChallenge(ctx, latest)
	default:
		// Gap: the old cycle is frozen as is and a new one opens.
		return m.openCycle(ctx, st, userID, playDay)
	}
}

func (m *ListenStreakManager) openCycle(ctx context.Context, st store.Store, userID int32, playDay time.Time) error {
	row := &schema.UserChallenge{
		ChallengeID:      ListenStreakChallengeID,
		UserID:           userID,
		Specifier:        listenStreakSpecifier(userID, playDay),
		CurrentStepCount: 1,
		Amount:           listenStreakAmount,
		LastPlayDate:     &playDay,
	}
	return st.SaveUserChallenge(ctx, row)
}

// UserChallengeState returns the user's cycles, oldest first.
func (m *ListenStreakManager) UserChallengeState(ctx context.Context, st store.Store, userID int32) ([]schema.UserChallenge, error) {
	return st.UserChallenges(ctx, ListenStreakChallengeID, userID)
}

// listenStreakSpecifier keys a cycle by its owner and opening day.
func listenStreakSpecifier(userID int32, day time.Time) string {
	return fmt.Sprintf("%x_%s", userID, day.Format("20060102"))
}

// dayOf truncates a timestamp to its UTC calendar day.
func dayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the whole calendar days from a to b.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}
