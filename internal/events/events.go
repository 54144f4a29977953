// Package events provides a structured event sink called at service
// operation boundaries. Implementations can forward events to logs,
// message brokers, or audit storage.
package events

import (
	"context"
	"log/slog"

	"github.com/oklog/ulid/v2"
)

// Sink receives operation events.
type Sink interface {
	Emit(ctx context.Context, name string, attrs ...slog.Attr)
}

// LogSink writes events to a structured logger, tagging each with a
// unique ULID so individual events can be correlated downstream.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a Sink backed by the given logger.
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Emit logs the event at info level.
func (s *LogSink) Emit(ctx context.Context, name string, attrs ...slog.Attr) {
	all := make([]slog.Attr, 0, len(attrs)+1)
	all = append(all, slog.String("event_id", ulid.Make().String()))
	all = append(all, attrs...)
	s.logger.LogAttrs(ctx, slog.LevelInfo, name, all...)
}

// Noop discards all events.
type Noop struct{}

// NewNoop creates a Sink that drops everything.
func NewNoop() *Noop {
	return &Noop{}
}

// Emit does nothing.
func (n *Noop) Emit(ctx context.Context, name string, attrs ...slog.Attr) {}
