package bootstrap

import "context"

// AuditLog is one operator-facing record: process lifecycle or a domain
// event replayed from Kafka.
type AuditLog struct {
	Action    string
	Message   string
	ActorID   string
	RequestID string
	Meta      map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
