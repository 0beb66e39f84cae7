package indexer

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/openaudio/discovery-indexer/internal/challenges"
	"github.com/openaudio/discovery-indexer/internal/domain"
	"github.com/openaudio/discovery-indexer/internal/logger"
	"github.com/openaudio/discovery-indexer/internal/metrics"
	"github.com/openaudio/discovery-indexer/internal/store"
)

// SkippedEvent records a per-event soft failure within a block.
type SkippedEvent struct {
	Index      int
	TxHash     string
	EntityType domain.EntityType
	Action     domain.Action
	EntityID   int32
	Reason     error
}

// Processor indexes blocks one at a time. A block either fully commits,
// folding all its events into at most one stored row per touched entity, or
// fully aborts so it can be retried from a fresh snapshot. Challenge events
// raised while applying events are buffered and only drained after commit.
type Processor struct {
	st             store.Store
	bus            *challenges.Bus
	registry       *Registry
	verifierWallet string
}

// NewProcessor creates a block processor with the default handler registry.
func NewProcessor(st store.Store, bus *challenges.Bus, verifierWallet string) *Processor {
	return &Processor{
		st:             st,
		bus:            bus,
		registry:       NewRegistry(),
		verifierWallet: verifierWallet,
	}
}

// ProcessBlock applies the block's events in receipt order and commits the
// folded revisions in one transaction. Validation, authorization and
// malformed-payload failures skip the offending event and are returned in
// skipped; any other error aborts the block with nothing written.
func (p *Processor) ProcessBlock(ctx context.Context, block *domain.Block) (applied int, skipped []SkippedEvent, err error) {
	snapshot, err := p.loadSnapshot(ctx, block)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to load snapshot for block %d: %w", block.Number, err)
	}
	pending := newPendingDelta()

	err = p.bus.WithScopedQueue(ctx, func(ctx context.Context) error {
		for i := range block.Events {
			event := &block.Events[i]
			if applyErr := p.applyEvent(ctx, block, snapshot, pending, event); applyErr != nil {
				if !domain.IsRecoverable(applyErr) {
					return applyErr
				}
				skipped = append(skipped, SkippedEvent{
					Index:      i,
					TxHash:     event.TxHash,
					EntityType: event.EntityType,
					Action:     event.Action,
					EntityID:   event.EntityID,
					Reason:     applyErr,
				})
				metrics.EventsSkipped.WithLabelValues(skipReason(applyErr)).Inc()
				logger.WarnCtx(ctx, "skipping event",
					zap.Int64("block", block.Number),
					zap.String("tx_hash", event.TxHash),
					zap.String("entity_type", string(event.EntityType)),
					zap.String("action", string(event.Action)),
					zap.Int32("entity_id", event.EntityID),
					zap.Error(applyErr))
				continue
			}
			applied++
			metrics.EventsApplied.Inc()
		}

		return p.st.CommitBlock(ctx, block, pending.Revisions())
	})
	if err != nil {
		metrics.BlocksAborted.Inc()
		return 0, nil, fmt.Errorf("failed to index block %d: %w", block.Number, err)
	}
	metrics.BlocksCommitted.Inc()

	processed, err := p.bus.ProcessEvents(ctx, p.st)
	metrics.ChallengeEventsProcessed.Add(float64(processed))
	if err != nil {
		// The block itself is durable at this point; only challenge progress
		// is behind.
		return applied, skipped, fmt.Errorf("block %d committed but challenge processing failed: %w", block.Number, err)
	}

	logger.InfoCtx(ctx, "indexed block",
		zap.Int64("block", block.Number),
		zap.Int("applied", applied),
		zap.Int("skipped", len(skipped)),
		zap.Int("challenge_events", processed))
	return applied, skipped, nil
}

func (p *Processor) applyEvent(ctx context.Context, block *domain.Block, snapshot *Snapshot, pending *PendingDelta, event *domain.DecodedEvent) error {
	handler, ok := p.registry.Lookup(event.EntityType, event.Action)
	if !ok {
		return &domain.MalformedPayloadError{
			Reason: fmt.Sprintf("no handler for %s %s", event.Action, event.EntityType),
		}
	}

	fields, err := parseMetadata(event.Metadata)
	if err != nil {
		return err
	}

	return handler(ctx, &Params{
		Event:          event,
		Block:          block,
		Store:          p.st,
		Bus:            p.bus,
		Existing:       snapshot,
		Pending:        pending,
		Fields:         fields,
		VerifierWallet: p.verifierWallet,
	})
}

// loadSnapshot fetches the current rows for every entity a block's events can
// touch: the targeted entities plus every acting user.
func (p *Processor) loadSnapshot(ctx context.Context, block *domain.Block) (*Snapshot, error) {
	userIDs := make(map[int32]struct{})
	trackIDs := make(map[int32]struct{})
	playlistIDs := make(map[int32]struct{})

	for i := range block.Events {
		event := &block.Events[i]
		if event.UserID > 0 {
			userIDs[event.UserID] = struct{}{}
		}
		switch event.EntityType {
		case domain.EntityTypeUser:
			userIDs[event.EntityID] = struct{}{}
		case domain.EntityTypeTrack:
			trackIDs[event.EntityID] = struct{}{}
		case domain.EntityTypePlaylist:
			playlistIDs[event.EntityID] = struct{}{}
		}
	}

	snapshot := newSnapshot()
	var err error
	if snapshot.Users, err = p.st.CurrentUsers(ctx, keys(userIDs)); err != nil {
		return nil, err
	}
	if snapshot.Tracks, err = p.st.CurrentTracks(ctx, keys(trackIDs)); err != nil {
		return nil, err
	}
	if snapshot.Playlists, err = p.st.CurrentPlaylists(ctx, keys(playlistIDs)); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func keys(set map[int32]struct{}) []int32 {
	ids := make([]int32, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}

func skipReason(err error) string {
	var (
		validation *domain.ValidationError
		authz      *domain.AuthorizationError
	)
	switch {
	case errors.As(err, &validation):
		return "validation"
	case errors.As(err, &authz):
		return "authorization"
	default:
		return "malformed"
	}
}
