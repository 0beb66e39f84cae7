package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/openaudio/discovery-indexer/internal/challenges"
	"github.com/openaudio/discovery-indexer/internal/config"
	"github.com/openaudio/discovery-indexer/internal/indexer"
	"github.com/openaudio/discovery-indexer/internal/ingest"
	"github.com/openaudio/discovery-indexer/internal/logger"
	"github.com/openaudio/discovery-indexer/internal/metrics"
	"github.com/openaudio/discovery-indexer/internal/store"
)

var (
	configPath = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "", "Path to .env directory")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadIndexerConfig(*configPath, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	logger.Info("Starting Discovery Indexer")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(db,
		cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns,
		cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.Fatal("Failed to configure connection pool", zap.Error(err))
	}
	if err := store.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}
	logger.Info("Connected to database")

	dataStore := store.NewPGStore(db)

	// Wire the challenge bus and its managers
	bus := challenges.NewBus(dataStore)
	listenStreak := challenges.NewListenStreakManager()
	bus.RegisterListener(challenges.EventTypeTrackListen, listenStreak)
	referrals := challenges.NewReferralManager()
	bus.RegisterListener(challenges.EventTypeReferralSignup, referrals)

	processor := indexer.NewProcessor(dataStore, bus, cfg.Pipeline.VerifierWallet)
	runner := ingest.NewRunner(dataStore, processor, cfg.Pipeline.AdvisoryLockKey)

	subscriber, err := ingest.NewSubscriber(
		ingest.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			Subject:        cfg.NATS.Subject,
			ConsumerName:   cfg.NATS.ConsumerName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
			AckWaitTimeout: cfg.NATS.AckWait,
			MaxDeliver:     cfg.NATS.MaxDeliver,
		},
		ingest.NewNatsJetStream(),
		runner,
	)
	if err != nil {
		logger.Fatal("Failed to create block subscriber", zap.Error(err))
	}
	defer subscriber.Close()
	logger.Info("Block subscriber created",
		zap.String("stream", cfg.NATS.StreamName),
		zap.String("consumer", cfg.NATS.ConsumerName))

	// Serve prometheus metrics
	if cfg.Pipeline.MetricsPort > 0 {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler())
			addr := fmt.Sprintf(":%d", cfg.Pipeline.MetricsPort)
			if err := http.ListenAndServe(addr, mux); err != nil {
				logger.Error(err, zap.String("component", "metrics"))
			}
		}()
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := subscriber.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-sigCh:
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.Error(err, zap.String("component", "subscriber"))
		cancel()
	}

	// Give some time for graceful shutdown
	time.Sleep(time.Second)
	logger.Flush(2 * time.Second)

	logger.Info("Discovery Indexer stopped")
}
