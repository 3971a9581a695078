package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// SubmissionEventProducer — интерфейс для отправки событий заявок в Kafka
// (для подмены моком в тестах).
type SubmissionEventProducer interface {
	ProduceSubmissionEvent(ctx context.Context, event string, payload map[string]interface{})
}

// Producer пишет события портальных заявок в топик Kafka (best-effort, не
// блокирует API).
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer создаёт продюсер. Если brokers пустой или topic пустой — методы no-op.
func NewProducer(brokers []string, topic string) *Producer {
	if len(brokers) == 0 || topic == "" {
		return &Producer{}
	}
	return &Producer{
		topic: topic,
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

// ProduceSubmissionEvent отправляет событие заявки в топик. payload:
// submission_id, code, portal_id, status, priority, work_order_id.
func (p *Producer) ProduceSubmissionEvent(ctx context.Context, event string, payload map[string]interface{}) {
	if p.writer == nil {
		return
	}
	msg := map[string]interface{}{"event": event}
	for k, v := range payload {
		msg[k] = v
	}
	body, err := json.Marshal(msg)
	if err != nil {
		logrus.WithError(err).Error("kafka: marshal submission event")
		return
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{Value: body}); err != nil {
		logrus.WithError(err).Error("kafka: write submission event")
	}
}

// Close закрывает writer.
func (p *Producer) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
