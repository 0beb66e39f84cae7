package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/openaudio/discovery-indexer/internal/domain"
	"github.com/openaudio/discovery-indexer/internal/indexer"
	"github.com/openaudio/discovery-indexer/internal/logger"
	"github.com/openaudio/discovery-indexer/internal/store"
)

// ErrWriterLockHeld means another instance currently owns the pipeline; the
// run is skipped, not queued.
var ErrWriterLockHeld = errors.New("writer lock held by another instance")

// BlockProcessor indexes one block. Satisfied by *indexer.Processor.
type BlockProcessor interface {
	ProcessBlock(ctx context.Context, block *domain.Block) (int, []indexer.SkippedEvent, error)
}

// Runner guards the single-writer pipeline around the block processor: at
// most one instance indexes at a time (advisory lock, acquire-or-skip),
// already-committed blocks are dropped on redelivery, and aborted blocks are
// retried with backoff since every attempt restarts from a fresh snapshot.
type Runner struct {
	st        store.Store
	processor BlockProcessor
	lockKey   int64
}

// NewRunner creates a runner holding the advisory lock key from config.
func NewRunner(st store.Store, processor BlockProcessor, lockKey int64) *Runner {
	return &Runner{st: st, processor: processor, lockKey: lockKey}
}

// RunBlock indexes one block end to end. Returns ErrWriterLockHeld when the
// pipeline is owned elsewhere; a nil error means the block is durable (or was
// already).
func (r *Runner) RunBlock(ctx context.Context, block *domain.Block) error {
	cursor, err := r.st.GetBlockCursor(ctx)
	if err != nil {
		return fmt.Errorf("failed to read block cursor: %w", err)
	}
	if block.Number <= cursor {
		logger.DebugCtx(ctx, "block already committed, dropping redelivery",
			zap.Int64("block", block.Number),
			zap.Int64("cursor", cursor))
		return nil
	}

	acquired, err := r.st.TryAdvisoryLock(ctx, r.lockKey)
	if err != nil {
		return fmt.Errorf("failed to acquire writer lock: %w", err)
	}
	if !acquired {
		return ErrWriterLockHeld
	}
	defer func() {
		if err := r.st.ReleaseAdvisoryLock(ctx, r.lockKey); err != nil {
			logger.ErrorCtx(ctx, err)
		}
	}()

	// Aborts leave the store untouched, so each retry reprocesses the block
	// from a fresh snapshot.
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond
	policy.MaxElapsedTime = 30 * time.Second

	return backoff.Retry(func() error {
		_, _, err := r.processor.ProcessBlock(ctx, block)
		return err
	}, backoff.WithContext(policy, ctx))
}
