// Package kafka consumes the raw-listing ingest feed. Scraper jobs publish
// one JSON listing per message; the worker decodes each and upserts it into
// the listing store. Offsets are committed only after a message is handled,
// so a crashed worker re-reads unprocessed messages instead of losing them.
package kafka

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/marty-droid/laundromat-app-v3/internal/config"
	"github.com/marty-droid/laundromat-app-v3/internal/infrastructure/monitoring/logging"
	"github.com/marty-droid/laundromat-app-v3/internal/infrastructure/monitoring/prometheus"
)

// MessageHandler processes one message payload. A returned error marks the
// message failed; the consumer still commits it so a poison message cannot
// stall the partition.
type MessageHandler func(ctx context.Context, key, value []byte) error

// messageReader is the slice of kafka.Reader the consumer uses, substitutable
// in tests.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer runs the fetch/handle/commit loop over one topic.
type Consumer struct {
	reader  messageReader
	topic   string
	handler MessageHandler
	logger  logging.Logger
	metrics *prometheus.AppMetrics
}

// Option customizes a Consumer.
type Option func(*Consumer)

// WithMetrics records per-message outcome counters and handling duration.
func WithMetrics(m *prometheus.AppMetrics) Option {
	return func(c *Consumer) { c.metrics = m }
}

// NewConsumer builds a consumer over the configured feed.
func NewConsumer(cfg config.KafkaConfig, handler MessageHandler, logger logging.Logger, opts ...Option) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.GroupID,
		Topic:    cfg.Topic,
		MinBytes: cfg.MinBytes,
		MaxBytes: cfg.MaxBytes,
	})
	c := &Consumer{
		reader:  reader,
		topic:   cfg.Topic,
		handler: handler,
		logger:  logger.Named("kafka-consumer"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// newConsumerWithReader is the test seam.
func newConsumerWithReader(reader messageReader, topic string, handler MessageHandler, logger logging.Logger, opts ...Option) *Consumer {
	c := &Consumer{reader: reader, topic: topic, handler: handler, logger: logger}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run consumes until ctx is canceled or the reader is closed. Handler errors
// are logged and counted, never fatal to the loop.
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.Info("consuming ingest feed", logging.String("topic", c.topic))

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				c.logger.Info("ingest feed consumer stopping")
				return nil
			}
			return err
		}

		start := time.Now()
		handleErr := c.handler(ctx, msg.Key, msg.Value)
		if c.metrics != nil {
			c.metrics.RecordKafkaMessage(c.topic, time.Since(start), handleErr)
		}
		if handleErr != nil {
			c.logger.Error("ingest message handling failed",
				logging.String("topic", c.topic),
				logging.Int("partition", msg.Partition),
				logging.Any("offset", msg.Offset),
				logging.Err(handleErr))
		}

		// Commit regardless of handler outcome; failed messages are
		// observable through logs and counters, not redelivery.
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}
}

// Close shuts the underlying reader down.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
