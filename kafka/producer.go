package kafka

import (
	"context"
	"encoding/json"
	"log"

	"storefront-service/models"

	"github.com/segmentio/kafka-go"
)

// Producer publishes sale events to Kafka.
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer creates a producer for the given brokers and topic.
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &Producer{
		writer: writer,
		topic:  topic,
	}
}

// SendSaleCompletedEvent publishes a sale.completed event, keyed by session
// so events from one shopper stay ordered.
func (p *Producer) SendSaleCompletedEvent(ctx context.Context, event models.SaleCompletedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.SessionID),
		Value: data,
	}

	err = p.writer.WriteMessages(ctx, msg)
	if err != nil {
		log.Printf("failed to send Kafka message: %v", err)
	}
	return err
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() {
	_ = p.writer.Close()
}
