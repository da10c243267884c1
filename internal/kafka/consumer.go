package kafka

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
)

type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume decodes each message into a FlightEvent and hands it to handler.
// Messages that do not decode are passed to onBadMessage and skipped.
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, FlightEvent) error, onBadMessage func(kafka.Message, error)) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		event, err := DecodeFlightEvent(msg.Value)
		if err != nil {
			if onBadMessage != nil {
				onBadMessage(msg, err)
			}
			continue
		}

		if err := handler(ctx, event); err != nil {
			return err
		}
	}
}
