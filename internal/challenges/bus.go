package challenges

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/openaudio/discovery-indexer/internal/logger"
	"github.com/openaudio/discovery-indexer/internal/store"
)

// EventType identifies a kind of challenge-relevant occurrence raised by the
// entity handlers.
type EventType string

const (
	EventTypeTrackListen     EventType = "track_listen"
	EventTypeTrackUpload     EventType = "track_upload"
	EventTypeProfileUpdate   EventType = "profile_update"
	EventTypeReferralSignup  EventType = "referral_signup"
	EventTypeReferredSignup  EventType = "referred_signup"
	EventTypeMobileInstall   EventType = "mobile_install"
	EventTypeConnectVerified EventType = "connect_verified"
)

// Event is one dispatched occurrence. UserID is the subject the challenge
// progress belongs to, not necessarily the event's on-chain signer.
type Event struct {
	Type           EventType
	BlockNumber    int64
	BlockTimestamp time.Time
	UserID         int32
	Extra          map[string]any
}

// Bus routes dispatched events to the challenge managers registered for their
// type. Inside a scoped queue, dispatches are buffered in memory and only
// handed to managers by an explicit ProcessEvents call after the triggering
// block commits; if the scope fails, the buffer is discarded and the events
// are never observed. Outside a scope, Dispatch processes immediately.
type Bus struct {
	st store.Store

	mu        sync.Mutex
	listeners map[EventType][]Manager
	scoped    bool
	queue     []Event
}

// NewBus creates a bus draining into the given store.
func NewBus(st store.Store) *Bus {
	return &Bus{
		st:        st,
		listeners: make(map[EventType][]Manager),
	}
}

// RegisterListener subscribes a manager to one event type. A manager may be
// registered for several types.
func (b *Bus) RegisterListener(eventType EventType, m Manager) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[eventType] = append(b.listeners[eventType], m)
}

// Dispatch raises one event. Events with no subject user (userID <= 0, e.g.
// anonymous listens) are silently dropped.
func (b *Bus) Dispatch(ctx context.Context, eventType EventType, blockNumber int64, blockTimestamp time.Time, userID int32, extra map[string]any) error {
	if userID <= 0 {
		logger.DebugCtx(ctx, "dropping anonymous challenge event", zap.String("event_type", string(eventType)))
		return nil
	}

	event := Event{
		Type:           eventType,
		BlockNumber:    blockNumber,
		BlockTimestamp: blockTimestamp,
		UserID:         userID,
		Extra:          extra,
	}

	b.mu.Lock()
	if b.scoped {
		b.queue = append(b.queue, event)
		b.mu.Unlock()
		return nil
	}
	b.mu.Unlock()

	_, err := b.deliver(ctx, b.st, []Event{event})
	return err
}

// WithScopedQueue buffers all dispatches made during fn. On success the
// buffer is held for the next ProcessEvents call; on error it is discarded.
func (b *Bus) WithScopedQueue(ctx context.Context, fn func(ctx context.Context) error) error {
	b.mu.Lock()
	if b.scoped {
		b.mu.Unlock()
		return fmt.Errorf("scoped queue already open")
	}
	b.scoped = true
	b.queue = nil
	b.mu.Unlock()

	err := fn(ctx)

	b.mu.Lock()
	b.scoped = false
	if err != nil {
		b.queue = nil
	}
	b.mu.Unlock()

	return err
}

// ProcessEvents drains the buffered queue, grouping events by type and
// invoking every manager registered for each type with the full sub-batch.
// It returns the number of events handed to managers.
func (b *Bus) ProcessEvents(ctx context.Context, st store.Store) (int, error) {
	b.mu.Lock()
	queue := b.queue
	b.queue = nil
	b.mu.Unlock()

	if len(queue) == 0 {
		return 0, nil
	}
	return b.deliver(ctx, st, queue)
}

func (b *Bus) deliver(ctx context.Context, st store.Store, events []Event) (int, error) {
	grouped := make(map[EventType][]Event)
	order := make([]EventType, 0, len(events))
	for _, event := range events {
		if _, seen := grouped[event.Type]; !seen {
			order = append(order, event.Type)
		}
		grouped[event.Type] = append(grouped[event.Type], event)
	}

	processed := 0
	for _, eventType := range order {
		batch := grouped[eventType]

		b.mu.Lock()
		managers := b.listeners[eventType]
		b.mu.Unlock()

		for _, m := range managers {
			if err := m.Process(ctx, st, batch); err != nil {
				return processed, fmt.Errorf("challenge %s failed to process %s batch: %w", m.ChallengeID(), eventType, err)
			}
		}
		processed += len(batch)
	}

	logger.DebugCtx(ctx, "processed challenge events", zap.Int("count", processed))
	return processed, nil
}
