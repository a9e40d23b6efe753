package kafka

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"

	"github.com/segmentio/kafka-go"

	"github.com/turtacn/FinCrime-Intelligence/internal/config"
	"github.com/turtacn/FinCrime-Intelligence/internal/domain/entity"
	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/logging"
)

// readerInterface abstracts kafka.Reader for testing.
type readerInterface interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// AssessmentHandler processes one decoded assessment event.  A returned error
// leaves the message uncommitted for redelivery; handlers must therefore be
// idempotent (the audit store upserts by assessment ID).
type AssessmentHandler func(ctx context.Context, risk *entity.TransactionRisk) error

// Consumer reads the assessment topic within a consumer group and hands each
// event to a handler.
type Consumer struct {
	reader  readerInterface
	handler AssessmentHandler
	logger  logging.Logger
}

// NewConsumer builds a consumer for the assessment topic.
func NewConsumer(cfg config.KafkaConfig, handler AssessmentHandler, log logging.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.Brokers,
		GroupID: cfg.GroupID,
		Topic:   TopicTransactionAssessed,
	})
	return &Consumer{
		reader:  reader,
		handler: handler,
		logger:  log.Named("kafka_consumer"),
	}
}

// Run consumes until ctx is cancelled.  Malformed messages are logged and
// committed — they would never succeed on redelivery; handler failures are
// logged and left uncommitted.
func (c *Consumer) Run(ctx context.Context) error {
	defer c.reader.Close()

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			// A cancelled context or a closed reader is a clean shutdown.
			if ctx.Err() != nil || stderrors.Is(err, context.Canceled) || stderrors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		risk, err := c.decode(msg.Value)
		if err != nil {
			c.logger.Error("dropping malformed assessment event",
				logging.Int64("offset", msg.Offset), logging.Err(err))
			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error("failed to commit malformed event", logging.Err(err))
			}
			continue
		}
		if risk == nil {
			// Event of a different type on the topic; skip.
			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error("failed to commit skipped event", logging.Err(err))
			}
			continue
		}

		if err := c.handler(ctx, risk); err != nil {
			c.logger.Error("assessment handler failed, leaving event for redelivery",
				logging.String("assessment_id", risk.ID.String()), logging.Err(err))
			continue
		}
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error("failed to commit assessment event",
				logging.String("assessment_id", risk.ID.String()), logging.Err(err))
		}
	}
}

// decode unwraps the envelope and parses the assessment payload.  A nil
// result with nil error means the event type is not ours.
func (c *Consumer) decode(data []byte) (*entity.TransactionRisk, error) {
	env, err := DecodeEnvelope(data)
	if err != nil {
		return nil, err
	}
	if env.Type != EventTypeTransactionAssessed {
		return nil, nil
	}
	var risk entity.TransactionRisk
	if err := json.Unmarshal(env.Payload, &risk); err != nil {
		return nil, err
	}
	return &risk, nil
}
