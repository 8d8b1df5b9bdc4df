package kafka

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// Consumer reads a topic through a consumer group and hands each message
// to a handler. Offsets are committed only after the handler succeeds.
type Consumer struct {
	reader *kafka.Reader
	closed bool
	mu     sync.RWMutex
}

type ConsumerOptions struct {
	Brokers []string
	Topic   string
	GroupID string
	MinWait time.Duration
	MaxWait time.Duration
}

func NewConsumer(opts ConsumerOptions) (*Consumer, error) {
	if len(opts.Brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if opts.Topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}
	if opts.GroupID == "" {
		return nil, fmt.Errorf("consumer group id cannot be empty")
	}
	if opts.MaxWait <= 0 {
		opts.MaxWait = 500 * time.Millisecond
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  opts.Brokers,
		Topic:    opts.Topic,
		GroupID:  opts.GroupID,
		MinBytes: 1,
		MaxBytes: 10 * 1024 * 1024,
		MaxWait:  opts.MaxWait,
	})

	return &Consumer{reader: reader}, nil
}

// Run consumes until ctx is canceled or the consumer is closed.
func (c *Consumer) Run(ctx context.Context, handler MessageHandler) error {
	for {
		c.mu.RLock()
		if c.closed {
			c.mu.RUnlock()
			return ErrConsumerClosed
		}
		c.mu.RUnlock()

		kafkaMsg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to fetch message: %w", err)
		}

		msg := Message{
			Key:       string(kafkaMsg.Key),
			Value:     kafkaMsg.Value,
			Headers:   make(map[string]string, len(kafkaMsg.Headers)),
			Timestamp: kafkaMsg.Time,
		}
		for _, h := range kafkaMsg.Headers {
			msg.Headers[h.Key] = string(h.Value)
		}

		if err := handler(ctx, msg); err != nil {
			// Leave the offset uncommitted; the message is redelivered
			// on the next fetch or rebalance.
			continue
		}

		if err := c.reader.CommitMessages(ctx, kafkaMsg); err != nil {
			return fmt.Errorf("failed to commit offset: %w", err)
		}
	}
}

func (c *Consumer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	return c.reader.Close()
}
