package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStdoutAuditLogger_Log(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := NewStdoutAuditLogger(zap.New(core))
	l.now = func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) }

	l.Log(context.Background(), AuditLog{
		Action:    "LEAVE_APPROVED",
		Message:   "leave approved",
		ActorID:   "u-1",
		RequestID: "rid-1",
		Meta:      map[string]any{"leave_id": "l-1"},
	})

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		ctx := entries[0].ContextMap()
		assert.Equal(t, "audit", entries[0].LoggerName)
		assert.Equal(t, "2026-03-02T09:00:00Z", ctx["timestamp"])
		assert.Equal(t, "LEAVE_APPROVED", ctx["action"])
		assert.Equal(t, "u-1", ctx["actor_id"])
		assert.Equal(t, "rid-1", ctx["request_id"])
	}
}

func TestStdoutAuditLogger_OmitsEmptyFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	NewStdoutAuditLogger(zap.New(core)).Log(context.Background(), AuditLog{Action: "SERVER_SHUTDOWN"})

	ctx := logs.All()[0].ContextMap()
	_, hasActor := ctx["actor_id"]
	_, hasMeta := ctx["meta"]
	assert.False(t, hasActor)
	assert.False(t, hasMeta)
}
