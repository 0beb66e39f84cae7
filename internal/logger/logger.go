package logger

import (
	"context"
	"time"

	"github.com/TheZeroSlave/zapsentry"
	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	global       *zap.Logger
	sentryClient *sentry.Client
)

// Config controls the process-wide logger. SentryDSN is optional; when empty
// no sentry core is attached. SentryClient overrides DSN-based client
// construction, which tests use to inject a transport.
type Config struct {
	Debug        bool
	SentryDSN    string
	SentryClient *sentry.Client
	Tags         map[string]string
}

// Initialize builds the global logger. Must be called before any other
// function in this package; the helpers panic on a nil logger otherwise.
func Initialize(cfg Config) error {
	base, err := buildZap(cfg.Debug)
	if err != nil {
		return err
	}

	if cfg.SentryDSN == "" && cfg.SentryClient == nil {
		global = base
		return nil
	}

	sentryClient = cfg.SentryClient
	if sentryClient == nil {
		sentryClient, err = sentry.NewClient(sentry.ClientOptions{
			Dsn:   cfg.SentryDSN,
			Debug: cfg.Debug,
		})
		if err != nil {
			return err
		}
	}

	tags := map[string]string{"service": "discovery-indexer"}
	for k, v := range cfg.Tags {
		tags[k] = v
	}

	core, err := zapsentry.NewCore(zapsentry.Configuration{
		Level:             zapcore.ErrorLevel,
		EnableBreadcrumbs: true,
		BreadcrumbLevel:   zapcore.InfoLevel,
		Tags:              tags,
	}, zapsentry.NewSentryClientFromClient(sentryClient))
	if err != nil {
		return err
	}

	global = zapsentry.AttachCoreToLogger(core, base)
	return nil
}

func buildZap(debug bool) (*zap.Logger, error) {
	if debug {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		return cfg.Build()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	return cfg.Build()
}

// Flush drains buffered sentry events, bounded by timeout. Safe to call when
// sentry was never configured.
func Flush(timeout time.Duration) {
	if sentryClient != nil {
		sentryClient.Flush(timeout)
	}
}

// Default returns the global logger.
func Default() *zap.Logger {
	return global
}

// FromContext returns the global logger bound to the sentry scope carried by
// ctx, so errors logged through it land in the right sentry transaction.
func FromContext(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return global
	}
	return global.With(zapsentry.Context(ctx))
}

func Debug(msg string, fields ...zap.Field) {
	global.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	global.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	global.Warn(msg, fields...)
}

// Error logs err at error level. A nil err still records the fields under a
// generic message.
func Error(err error, fields ...zap.Field) {
	if err == nil {
		global.Error("error occurred", fields...)
		return
	}
	global.Error(err.Error(), fields...)
}

// Fatal logs and exits the process.
func Fatal(msg string, fields ...zap.Field) {
	global.Fatal(msg, fields...)
}

func DebugCtx(ctx context.Context, msg string, fields ...zap.Field) {
	FromContext(ctx).Debug(msg, fields...)
}

func InfoCtx(ctx context.Context, msg string, fields ...zap.Field) {
	FromContext(ctx).Info(msg, fields...)
}

func WarnCtx(ctx context.Context, msg string, fields ...zap.Field) {
	FromContext(ctx).Warn(msg, fields...)
}

func ErrorCtx(ctx context.Context, err error, fields ...zap.Field) {
	if err == nil {
		FromContext(ctx).Error("error occurred", fields...)
		return
	}
	FromContext(ctx).Error(err.Error(), fields...)
}
