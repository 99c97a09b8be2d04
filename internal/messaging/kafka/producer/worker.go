package producer

import (
	"context"
	"errors"
	"time"

	"go-hrms/internal/messaging/kafka"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const defaultBatchSize = 50

// Relay moves outbox rows to Kafka. Publishing goes through a circuit
// breaker so an unavailable broker is not hammered every tick.
type Relay struct {
	repo      kafka.OutboxRepository
	writer    MessageWriter
	cb        *gobreaker.CircuitBreaker
	logger    *zap.Logger
	batchSize int
}

func NewRelay(repo kafka.OutboxRepository, writer MessageWriter, logger *zap.Logger, batchSize int) *Relay {
	if logger == nil {
		logger = zap.L()
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	settings := gobreaker.Settings{
		Name:        "kafka-outbox",
		MaxRequests: 5,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// buka breaker bila >= 50% gagal setelah minimal 10 request
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 10 && failureRatio >= 0.5
		},
	}

	log := logger.Named("kafka.producer.worker")
	settings.OnStateChange = func(name string, from, to gobreaker.State) {
		log.Warn("circuit breaker state changed",
			zap.String("breaker", name),
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
	}

	return &Relay{
		repo:      repo,
		writer:    writer,
		cb:        gobreaker.NewCircuitBreaker(settings),
		logger:    log,
		batchSize: batchSize,
	}
}

// ProcessOutboxEvents runs a relay until ctx is cancelled.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
	pollInterval time.Duration,
	batchSize int,
) {
	NewRelay(repo, writer, logger, batchSize).Run(ctx, pollInterval)
}

func (r *Relay) Run(ctx context.Context, pollInterval time.Duration) {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	r.logger.Info("outbox worker started", zap.Duration("poll_interval", pollInterval), zap.Int("batch_size", r.batchSize))

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("outbox worker stopped")
			return
		case <-ticker.C:
			if _, err := r.ProcessPending(ctx); err != nil {
				r.logger.Error("process outbox events failed", zap.Error(err))
			}
		}
	}
}

// ProcessPending publishes one batch and returns how many rows were sent.
func (r *Relay) ProcessPending(ctx context.Context) (int, error) {
	events, err := r.repo.ListPending(ctx, r.batchSize)
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}

	r.logger.Debug("processing pending outbox events", zap.Int("count", len(events)))

	sent := 0
	for _, event := range events {
		_, err := r.cb.Execute(func() (interface{}, error) {
			return nil, publishEvent(ctx, r.writer, event)
		})
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			// sisa batch dibiarkan pending untuk tick berikutnya
			r.logger.Warn("circuit breaker open, deferring outbox batch",
				zap.Int("deferred", len(events)-sent),
			)
			return sent, nil
		}
		if err != nil {
			r.logger.Error("publish outbox event failed",
				zap.String("outbox_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.String("topic", event.Topic),
				zap.Error(err),
			)
			if markErr := r.repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				r.logger.Error("mark outbox failed failed", zap.String("outbox_id", event.ID), zap.Error(markErr))
			}
			continue
		}

		if err := r.repo.MarkSent(ctx, event.ID); err != nil {
			r.logger.Error("mark outbox sent failed",
				zap.String("outbox_id", event.ID),
				zap.Error(err),
			)
			continue
		}
		sent++

		r.logger.Info("outbox event sent",
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
		)
	}

	return sent, nil
}
