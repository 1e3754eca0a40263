package logging

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFieldsAreForwarded(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(zap.NewNop()) })

	Info("encounter started", Fields{"player_id": "U1", "kind": "siege"})
	Error("save failed", errors.New("disk full"), Fields{"player_id": "U1"})

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["player_id"] != "U1" || ctx["kind"] != "siege" {
		t.Fatalf("unexpected fields: %v", ctx)
	}
	if entries[1].ContextMap()["error"] != "disk full" {
		t.Fatalf("error field missing: %v", entries[1].ContextMap())
	}
}

func TestNilFieldsAllowed(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(zap.NewNop()) })

	Warn("idle", nil, nil)
	if logs.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", logs.Len())
	}
}
