package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go-hrms/internal/bootstrap"
	"go-hrms/internal/config"
	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer tails the lifecycle topics into the audit log until
// SIGINT/SIGTERM.
func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		GroupID:        consumer.AuditGroupID,
		GroupTopics:    []string{events.EmployeeCreatedTopic, events.LeaveStatusChangedTopic},
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer.ConsumeLifecycle(ctx, reader, bootstrap.NewStdoutAuditLogger(logger), logger)

	logger.Info("consumer shutting down")
	return nil
}
