package challenges

import (
	"context"

	"github.com/openaudio/discovery-indexer/internal/store"
	"github.com/openaudio/discovery-indexer/internal/store/schema"
)

// Manager turns a batch of dispatched events into challenge progress upserts.
// A manager receives every buffered event of a type it is registered for, so
// it must tolerate and de-duplicate multiple events for one subject within a
// single batch.
type Manager interface {
	// ChallengeID returns the stable identifier stamped on progress rows.
	ChallengeID() string
	// Process applies a batch of same-type events against the store.
	Process(ctx context.Context, st store.Store, events []Event) error
	// UserChallengeState returns the user's progress rows, oldest first.
	UserChallengeState(ctx context.Context, st store.Store, userID int32) ([]schema.UserChallenge, error)
}
