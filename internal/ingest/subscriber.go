package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/openaudio/discovery-indexer/internal/domain"
	"github.com/openaudio/discovery-indexer/internal/logger"
)

// Config holds the configuration for the block subscriber
type Config struct {
	URL            string
	StreamName     string
	Subject        string
	ConsumerName   string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	AckWaitTimeout time.Duration
	MaxDeliver     int
}

// Subscriber consumes decoded blocks from JetStream and feeds them to the
// runner one at a time, in stream order.
type Subscriber struct {
	nc     NatsConn
	js     JetStream
	runner *Runner
	config Config
}

// NewSubscriber connects to NATS and prepares a block subscriber.
func NewSubscriber(cfg Config, natsJS NatsJetStream, runner *Runner) (*Subscriber, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	return &Subscriber{
		nc:     nc,
		js:     js,
		runner: runner,
		config: cfg,
	}, nil
}

// Run consumes blocks until the context is cancelled. Blocks are processed
// strictly sequentially; the pipeline has no intra-run parallelism.
func (s *Subscriber) Run(ctx context.Context) error {
	logger.Info("Starting block subscriber",
		zap.String("stream", s.config.StreamName),
		zap.String("consumer", s.config.ConsumerName))

	consumerConfig := jetstream.ConsumerConfig{
		Durable:       s.config.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       s.config.AckWaitTimeout,
		MaxDeliver:    s.config.MaxDeliver,
		FilterSubject: s.config.Subject,
	}

	consumer, err := s.js.CreateOrUpdateConsumer(ctx, s.config.StreamName, consumerConfig)
	if err != nil {
		return fmt.Errorf("failed to create/update consumer: %w", err)
	}

	consumerInfo, err := consumer.Info(ctx)
	if err != nil {
		return fmt.Errorf("failed to get consumer info: %w", err)
	}
	logger.Info("Consumer created/retrieved", zap.String("consumer", consumerInfo.Name))

	msgChan := make(chan Message, 100)
	sub, err := consumer.Consume(func(msg Message) {
		msgChan <- msg
	})
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	defer sub.Stop()

	logger.Info("Started consuming blocks")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Shutting down block subscriber")
			return ctx.Err()
		case msg := <-msgChan:
			s.handleMessage(ctx, msg)
		}
	}
}

// handleMessage processes a single NATS message carrying one decoded block.
func (s *Subscriber) handleMessage(ctx context.Context, msg Message) {
	metadata, _ := msg.Metadata()
	runID := uuid.NewString()

	var block domain.Block
	if err := json.Unmarshal(msg.Data(), &block); err != nil {
		logger.Error(err, zap.String("message", "Failed to unmarshal block"), zap.String("run_id", runID))
		// Terminate message for unparseable data
		if err := msg.Term(); err != nil {
			logger.Error(err, zap.String("message", "Failed to terminate message"))
		}
		return
	}

	fields := []zap.Field{
		zap.String("run_id", runID),
		zap.Int64("block", block.Number),
		zap.Int("events", len(block.Events)),
	}
	if metadata != nil {
		fields = append(fields, zap.Uint64("delivery_count", metadata.NumDelivered))
	}
	logger.InfoCtx(ctx, "Received block", fields...)

	if err := s.runner.RunBlock(ctx, &block); err != nil {
		if errors.Is(err, ErrWriterLockHeld) {
			logger.WarnCtx(ctx, "Writer lock held, skipping run", zap.String("run_id", runID))
		} else {
			logger.ErrorCtx(ctx, err, zap.String("run_id", runID))
		}
		// NAK to retry once the lock frees up or the fault clears
		if err := msg.Nak(); err != nil {
			logger.Error(err, zap.String("message", "Failed to NAK message"))
		}
		return
	}

	if err := msg.Ack(); err != nil {
		logger.Error(err, zap.String("message", "Failed to ACK message"))
	}
}

// Close closes the NATS connection.
func (s *Subscriber) Close() {
	if s.nc != nil {
		s.nc.Close()
	}
}
