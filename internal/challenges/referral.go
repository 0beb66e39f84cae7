package challenges

import (
	"context"
	"fmt"

	"github.com/openaudio/discovery-indexer/internal/store"
	"github.com/openaudio/discovery-indexer/internal/store/schema"
)

const (
	// ReferralChallengeID rewards users for referring signups.
	ReferralChallengeID = "referrals"

	referralAmount = 1
)

// ReferralManager is a single-step challenge: each referred signup completes
// one row for the referrer immediately. The specifier carries both sides so a
// redelivered event upserts the same row instead of paying twice.
type ReferralManager struct{}

func NewReferralManager() *ReferralManager {
	return &ReferralManager{}
}

func (m *ReferralManager) ChallengeID() string {
	return ReferralChallengeID
}

// Process applies a batch of referral_signup events. The subject user is the
// referrer; Extra carries the referred user's ID.
func (m *ReferralManager) Process(ctx context.Context, st store.Store, events []Event) error {
	for _, event := range events {
		referredID, ok := referredUserID(event)
		if !ok {
			continue
		}

		completedAt := event.BlockTimestamp
		row := &schema.UserChallenge{
			ChallengeID:          ReferralChallengeID,
			UserID:               event.UserID,
			Specifier:            fmt.Sprintf("%x=>%x", event.UserID, referredID),
			CurrentStepCount:     1,
			IsComplete:           true,
			Amount:               referralAmount,
			CompletedBlockNumber: &event.BlockNumber,
			CompletedAt:          &completedAt,
		}
		if err := st.SaveUserChallenge(ctx, row); err != nil {
			return fmt.Errorf("failed to save referral for user %d: %w", event.UserID, err)
		}
	}
	return nil
}

// UserChallengeState returns the referrer's completed referrals, oldest first.
func (m *ReferralManager) UserChallengeState(ctx context.Context, st store.Store, userID int32) ([]schema.UserChallenge, error) {
	return st.UserChallenges(ctx, ReferralChallengeID, userID)
}

func referredUserID(event Event) (int32, bool) {
	if event.Extra == nil {
		return 0, false
	}
	switch v := event.Extra["referred_user_id"].(type) {
	case int32:
		return v, v > 0
	case int:
		return int32(v), v > 0
	case int64:
		return int32(v), v > 0
	case float64:
		return int32(v), v > 0
	default:
		return 0, false
	}
}
