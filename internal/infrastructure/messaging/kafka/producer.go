package kafka

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/turtacn/FinCrime-Intelligence/internal/config"
	"github.com/turtacn/FinCrime-Intelligence/internal/domain/entity"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FinCrime-Intelligence/pkg/errors"
)

// writerInterface abstracts kafka.Writer for testing.
type writerInterface interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes assessment events.  Publishing is best-effort from the
// assessment path's perspective: a failed publish is reported to the caller,
// who logs and continues, because a verdict must still be returned to the
// requester.
type Producer struct {
	writer writerInterface
	logger logging.Logger
	closed atomic.Bool
}

// NewProducer builds a producer for the assessment topic.
func NewProducer(cfg config.KafkaConfig, log logging.Logger) *Producer {
	batchTimeout := cfg.BatchTimeout
	if batchTimeout <= 0 {
		batchTimeout = 100 * time.Millisecond
	}
	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 10 * time.Second
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        TopicTransactionAssessed,
		Balancer:     &kafka.Hash{},
		MaxAttempts:  cfg.ProducerRetries + 1,
		BatchTimeout: batchTimeout,
		WriteTimeout: writeTimeout,
		RequiredAcks: kafka.RequireAll,
	}
	return &Producer{writer: writer, logger: log.Named("kafka_producer")}
}

// PublishAssessment publishes a transaction.assessed event keyed by the
// assessment ID.
func (p *Producer) PublishAssessment(ctx context.Context, risk *entity.TransactionRisk) error {
	if p.closed.Load() {
		return errors.New(errors.ErrCodeEventPublishFailed, "producer is closed")
	}

	env, err := NewEnvelope(EventTypeTransactionAssessed, risk)
	if err != nil {
		return err
	}
	value, err := json.Marshal(env)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to marshal event envelope")
	}

	msg := kafka.Message{
		Key:   []byte(risk.ID.String()),
		Value: value,
		Time:  env.OccurredAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return errors.Wrap(err, errors.ErrCodeEventPublishFailed,
			"failed to publish assessment event")
	}

	p.logger.Debug("published assessment event",
		logging.String("assessment_id", risk.ID.String()),
		logging.String("event_id", env.ID.String()))
	return nil
}

// Close flushes and closes the writer.  Safe to call more than once.
func (p *Producer) Close() error {
	if p.closed.Swap(true) {
		return nil
	}
	return p.writer.Close()
}
