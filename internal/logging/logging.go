// Package logging provides zerolog construction and context propagation
// helpers shared by the CLI and the HTTP API.
//
// Loggers travel on the context: command setup builds a logger, attaches it
// with WithContext, and downstream components recover it with FromContext
// and tag their events with a "component" field.
package logging

import (
	"context"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// Config controls logger construction.
type Config struct {
	// Level is a zerolog level name (trace, debug, info, warn, error).
	// Unparseable values fall back to info.
	Level string

	// Format selects output encoding: "console" for human-readable output,
	// anything else for JSON.
	Format string

	// Out is the destination writer. Defaults to os.Stderr when nil.
	Out io.Writer
}

// NewLogger builds a zerolog.Logger from cfg.
func NewLogger(cfg Config) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}

	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// ComponentLogger returns a child logger tagged with a component name.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// WithContext attaches logger to ctx for later recovery via FromContext.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// FromContext returns the logger attached to ctx, or a disabled logger if
// none was attached. The returned pointer is never nil.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

type requestIDKey struct{}

// entropy feeds ULID generation. Monotonic so IDs within one process sort
// in creation order.
//
//nolint:gochecknoglobals // Shared entropy source is idiomatic for oklog/ulid.
var entropy = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)

// NewRequestID generates a ULID string for request correlation.
func NewRequestID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// ContextWithRequestID stores a request ID on the context.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the stored request ID, or "" if absent.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// GetOrGenerateRequestID returns the request ID already on ctx, generating
// a fresh one if the context carries none.
func GetOrGenerateRequestID(ctx context.Context) string {
	if id := RequestIDFromContext(ctx); id != "" {
		return id
	}
	return NewRequestID()
}
