package events

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestLogSink_Emit(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	sink := NewLogSink(logger)

	sink.Emit(context.Background(), "user_registered", slog.String("user_id", "abc"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to decode log entry: %v", err)
	}

	if entry["msg"] != "user_registered" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["user_id"] != "abc" {
		t.Errorf("user_id = %v", entry["user_id"])
	}

	eventID, ok := entry["event_id"].(string)
	if !ok || len(eventID) != 26 {
		t.Errorf("event_id = %v, want a 26-character ULID", entry["event_id"])
	}
}

func TestLogSink_UniqueEventIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	sink := NewLogSink(logger)

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		buf.Reset()
		sink.Emit(context.Background(), "tick")

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("failed to decode log entry: %v", err)
		}
		id := entry["event_id"].(string)
		if seen[id] {
			t.Fatalf("duplicate event_id %q", id)
		}
		seen[id] = true
	}
}

func TestNoop(t *testing.T) {
	// Must not panic with or without attrs.
	sink := NewNoop()
	sink.Emit(context.Background(), "anything")
	sink.Emit(context.Background(), "anything", slog.Int("n", 1))
}
