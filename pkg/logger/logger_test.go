package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fnhttp/pkg/logger"
)

type ctxKey struct{}

func requestID(ctx context.Context) (slog.Attr, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	if !ok {
		return slog.Attr{}, false
	}
	return slog.String("request_id", id), true
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json with extractor", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log, err := logger.New(logger.Config{Output: &buf}, requestID, nil)
		require.NoError(t, err)

		ctx := context.WithValue(context.Background(), ctxKey{}, "abc")
		log.InfoContext(ctx, "hello", slog.Int("status", 200))

		line := decodeLine(t, &buf)
		assert.Equal(t, "hello", line["msg"])
		assert.Equal(t, "abc", line["request_id"])
		assert.InDelta(t, 200, line["status"], 0)
	})

	t.Run("extractor without value", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.MustNew(logger.Config{Output: &buf}, requestID)

		log.Info("hello")
		assert.NotContains(t, decodeLine(t, &buf), "request_id")
	})

	t.Run("extractors survive With", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.MustNew(logger.Config{Output: &buf}, requestID).With("component", "test").WithGroup("g")

		ctx := context.WithValue(context.Background(), ctxKey{}, "abc")
		log.InfoContext(ctx, "hello")
		assert.Contains(t, buf.String(), `"component":"test"`)
		assert.Contains(t, buf.String(), `"request_id":"abc"`)
	})

	t.Run("level filters", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.MustNew(logger.Config{Output: &buf, Level: "warn"})

		log.Info("skipped")
		assert.Zero(t, buf.Len())
		log.Warn("kept")
		assert.Contains(t, buf.String(), "kept")
	})

	t.Run("text format", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.MustNew(logger.Config{Output: &buf, Format: "TEXT"})

		log.Info("hello")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()
		_, err := logger.New(logger.Config{Format: "xml"})
		assert.ErrorIs(t, err, logger.ErrUnknownFormat)
		assert.Panics(t, func() { logger.MustNew(logger.Config{Format: "xml"}) })
	})
}

func TestContextWithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.MustNew(logger.Config{Output: &buf}, requestID)

	ctx := logger.ContextWithAttrs(context.Background(), slog.String("method", "GET"))
	ctx = logger.ContextWithAttrs(ctx, slog.String("path", "/users"))
	ctx = context.WithValue(ctx, ctxKey{}, "abc")
	log.InfoContext(ctx, "hello")

	line := decodeLine(t, &buf)
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/users", line["path"])
	assert.Equal(t, "abc", line["request_id"])

	assert.Empty(t, logger.AttrsFromContext(context.Background()))
	assert.Len(t, logger.AttrsFromContext(ctx), 2)
	assert.Equal(t, ctx, logger.ContextWithAttrs(ctx))
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"warn+2", slog.LevelWarn + 2},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, logger.ParseLevel(tt.in, slog.LevelInfo))
		})
	}
}

func TestNewNope(t *testing.T) {
	t.Parallel()
	log := logger.NewNope()
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
	log.Error("dropped")
}
