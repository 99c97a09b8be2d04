package producer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"go-hrms/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeOutboxRepo struct {
	pending []kafka.OutboxEvent
	listErr error
	sent    []string
	failed  []string
}

func (f *fakeOutboxRepo) WithTx(tx *sql.Tx) kafka.OutboxRepository            { return f }
func (f *fakeOutboxRepo) Create(ctx context.Context, event kafka.OutboxEvent) error { return nil }
func (f *fakeOutboxRepo) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if len(f.pending) > limit {
		return f.pending[:limit], nil
	}
	return f.pending, nil
}
func (f *fakeOutboxRepo) MarkSent(ctx context.Context, id string) error {
	f.sent = append(f.sent, id)
	return nil
}
func (f *fakeOutboxRepo) MarkFailed(ctx context.Context, id string, reason string) error {
	f.failed = append(f.failed, id)
	return nil
}

type fakeWriter struct {
	err      error
	messages []kafkago.Message
	calls    int
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msgs...)
	return nil
}

func pendingEvents(n int) []kafka.OutboxEvent {
	out := make([]kafka.OutboxEvent, n)
	for i := range out {
		out[i] = kafka.OutboxEvent{
			ID:            fmt.Sprintf("o-%d", i),
			RequestID:     "rid",
			AggregateType: "leave",
			AggregateID:   fmt.Sprintf("l-%d", i),
			EventType:     "leave.status_changed",
			Topic:         "hr.leave.lifecycle.v1",
			Payload:       []byte(`{}`),
			Status:        kafka.OutboxStatusPending,
		}
	}
	return out
}

func TestRelay_ProcessPending(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := &fakeOutboxRepo{pending: pendingEvents(3)}
		writer := &fakeWriter{}

		sent, err := NewRelay(repo, writer, zap.NewNop(), 10).ProcessPending(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 3, sent)
		assert.Equal(t, []string{"o-0", "o-1", "o-2"}, repo.sent)
		assert.Equal(t, []byte("l-1"), writer.messages[1].Key)
		assert.Equal(t, "hr.leave.lifecycle.v1", writer.messages[0].Topic)
	})

	t.Run("negative publish failure marks failed", func(t *testing.T) {
		repo := &fakeOutboxRepo{pending: pendingEvents(2)}
		writer := &fakeWriter{err: errors.New("broker down")}

		sent, err := NewRelay(repo, writer, zap.NewNop(), 10).ProcessPending(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 0, sent)
		assert.Equal(t, []string{"o-0", "o-1"}, repo.failed)
	})

	t.Run("negative breaker opens and defers the rest", func(t *testing.T) {
		repo := &fakeOutboxRepo{pending: pendingEvents(15)}
		writer := &fakeWriter{err: errors.New("broker down")}

		sent, err := NewRelay(repo, writer, zap.NewNop(), 50).ProcessPending(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 0, sent)
		assert.Equal(t, 10, writer.calls)
		assert.Len(t, repo.failed, 10)
	})

	t.Run("negative list error", func(t *testing.T) {
		repo := &fakeOutboxRepo{listErr: errors.New("db gone")}

		_, err := NewRelay(repo, &fakeWriter{}, zap.NewNop(), 10).ProcessPending(ctx)
		assert.Error(t, err)
	})
}

func TestToMessage_Headers(t *testing.T) {
	msg := toMessage(pendingEvents(1)[0])

	keys := map[string]string{}
	for _, h := range msg.Headers {
		keys[h.Key] = string(h.Value)
	}
	assert.Equal(t, "leave.status_changed", keys["event_type"])
	assert.Equal(t, "rid", keys["request_id"])
	assert.Equal(t, "o-0", keys["outbox_id"])
}
