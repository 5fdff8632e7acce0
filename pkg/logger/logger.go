package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// ErrUnknownFormat is returned for a log format other than json or text.
var ErrUnknownFormat = errors.New("logger: unknown format")

// Config describes the process logger.
type Config struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`

	// Sentry receives records at SentryLevel and above when DSN is set.
	// Errors become issues, lower levels are stored as logs.
	SentryDSN         string `env:"SENTRY_DSN"`
	SentryEnvironment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	SentryLevel       string `env:"SENTRY_LEVEL" envDefault:"warn"`

	// Output defaults to os.Stdout.
	Output io.Writer `env:"-"`
}

// New builds a logger from cfg. Unknown levels fall back to info.
// Context extractors apply to every destination.
//
//	log, err := logger.New(cfg, middlewares.RequestIDExtractor())
func New(cfg Config, extractors ...ContextExtractor) (*slog.Logger, error) {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level, slog.LevelInfo)}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "", "json":
		handler = slog.NewJSONHandler(out, opts)
	case "text":
		handler = slog.NewTextHandler(out, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, cfg.Format)
	}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.SentryEnvironment,
			EnableLogs:  true,
		}); err != nil {
			// Keep logging locally.
			slog.New(handler).Error("failed to initialize sentry", slog.String("error", err.Error()))
		} else {
			handler = newMultiHandler(handler, sentryHandler(ParseLevel(cfg.SentryLevel, slog.LevelWarn)))
		}
	}

	return slog.New(newContextHandler(handler, extractors...)), nil
}

// MustNew is New that panics on error.
func MustNew(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	l, err := New(cfg, extractors...)
	if err != nil {
		panic(err)
	}
	return l
}

// NewNope returns a logger that discards everything.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel parses debug, info, warn or error (case-insensitive, with
// optional offsets like "warn+2"). Empty or invalid input yields def.
func ParseLevel(s string, def slog.Level) slog.Level {
	if s == "" {
		return def
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return def
	}
	return l
}

func sentryHandler(min slog.Level) slog.Handler {
	var logLevels []slog.Level
	for _, l := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if l >= min {
			logLevels = append(logLevels, l)
		}
	}
	return sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevels,
	}.NewSentryHandler(context.Background())
}
