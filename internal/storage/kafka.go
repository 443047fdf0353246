package storage

import (
	"context"
	"encoding/json"
	"strconv"

	"plateful/internal/domain"

	"github.com/segmentio/kafka-go"
)

type KafkaPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

// PublishOrderEvent keys messages by restaurant so one restaurant's events
// stay ordered within a partition.
func (p *KafkaPublisher) PublishOrderEvent(ctx context.Context, evt domain.OrderEvent) error {
	payload, _ := json.Marshal(evt)
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.Itoa(evt.RestaurantID)),
		Value: payload,
	})
}
