package sink

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"alertsim/internal/model"
)

// Kafka mirrors envelopes onto a topic, keyed by event type so each type
// lands in a stable partition.
type Kafka struct {
	writer *kafka.Writer
}

func NewKafka(brokers []string, topic string, writeTimeout time.Duration) *Kafka {
	return &Kafka{writer: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        false,
		WriteTimeout: writeTimeout,
	}}
}

func (k *Kafka) Name() string { return "kafka" }

func (k *Kafka) Deliver(ctx context.Context, env model.Envelope) error {
	msg, err := buildMessage(env)
	if err != nil {
		return err
	}
	return k.writer.WriteMessages(ctx, msg)
}

func (k *Kafka) Close() error {
	return k.writer.Close()
}

func buildMessage(env model.Envelope) (kafka.Message, error) {
	value, err := json.Marshal(env)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{Key: []byte(env.EventType), Value: value}, nil
}
