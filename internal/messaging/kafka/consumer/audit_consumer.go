package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go-hrms/internal/bootstrap"
	"go-hrms/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// AuditGroupID is the consumer group that tails every lifecycle topic.
const AuditGroupID = "go-hrms-audit"

// FetchRetryDelay is the pause after a failed fetch before trying again.
var FetchRetryDelay = time.Second

// MessageReader is the part of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeLifecycle turns employee and leave lifecycle events into audit
// entries. Undecodable messages are committed and skipped so a poison
// message cannot stall the partition.
func ConsumeLifecycle(
	ctx context.Context,
	reader MessageReader,
	audit bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.audit")
	log.Info("audit consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("audit consumer stopped")
				return
			}
			log.Error("fetch lifecycle message failed", zap.Error(err))
			select {
			case <-ctx.Done():
				log.Info("audit consumer stopped")
				return
			case <-time.After(FetchRetryDelay):
			}
			continue
		}

		entry, err := ToAuditLog(msg)
		if err != nil {
			log.Warn("skip undecodable lifecycle message",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		} else {
			audit.Log(ctx, entry)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit lifecycle message failed", zap.Error(err))
		}
	}
}

// ToAuditLog decodes a lifecycle message by its event_type header, falling
// back to the topic when the header is missing.
func ToAuditLog(msg kafkago.Message) (bootstrap.AuditLog, error) {
	eventType := header(msg, "event_type")
	if eventType == "" {
		switch msg.Topic {
		case events.EmployeeCreatedTopic:
			eventType = events.EmployeeCreatedType
		case events.LeaveStatusChangedTopic:
			eventType = events.LeaveStatusChangedType
		}
	}

	switch eventType {
	case events.EmployeeCreatedType:
		var e events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &e); err != nil {
			return bootstrap.AuditLog{}, fmt.Errorf("decode %s: %w", eventType, err)
		}
		return bootstrap.AuditLog{
			Action:    "EMPLOYEE_CREATED",
			Message:   fmt.Sprintf("employee %s onboarded", e.EmployeeCode),
			RequestID: e.RequestID,
			Meta: map[string]any{
				"employee_id":   e.EmployeeID,
				"employee_code": e.EmployeeCode,
				"user_id":       e.UserID,
				"role":          e.Role,
			},
		}, nil

	case events.LeaveStatusChangedType:
		var e events.LeaveStatusChangedEvent
		if err := json.Unmarshal(msg.Value, &e); err != nil {
			return bootstrap.AuditLog{}, fmt.Errorf("decode %s: %w", eventType, err)
		}
		action := "LEAVE_" + strings.ToUpper(e.ToStatus)
		if e.Cancelled {
			action = "LEAVE_CANCELLED"
		}
		return bootstrap.AuditLog{
			Action:    action,
			Message:   fmt.Sprintf("leave %s %s -> %s", e.LeaveID, e.FromStatus, e.ToStatus),
			ActorID:   e.ActorUserID,
			RequestID: e.RequestID,
			Meta: map[string]any{
				"leave_id":    e.LeaveID,
				"employee_id": e.EmployeeID,
				"leave_type":  e.LeaveType,
				"start_date":  e.StartDate,
				"end_date":    e.EndDate,
			},
		}, nil
	}

	return bootstrap.AuditLog{}, fmt.Errorf("unknown event type %q", eventType)
}

func header(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
