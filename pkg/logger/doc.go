// Package logger builds the structured slog logger used across the
// framework.
//
// Records are written as JSON (or text) and enriched by context extractors,
// small functions that pull request-scoped values such as the request id out
// of the context on every call:
//
//	log := logger.MustNew(logger.Config{Level: "debug"}, middlewares.RequestIDExtractor())
//	log.InfoContext(ctx, "request processed", slog.Int("status", 200))
//	// {"level":"INFO","msg":"request processed","status":200,"request_id":"..."}
//
// Attributes known up front can ride on the context instead:
//
//	ctx = logger.ContextWithAttrs(ctx, slog.String("path", r.URL.Path))
//
// When SentryDSN is set, records at SentryLevel and above are also sent to
// Sentry. Errors create issues. If Sentry fails to initialize the logger keeps
// writing locally.
//
// Components that accept an optional logger default to [NewNope].
package logger
