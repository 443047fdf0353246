package aggregate

import (
	"context"
	"encoding/json"
	"log"

	"plateful/internal/domain"

	"github.com/segmentio/kafka-go"
)

type StoreInterface interface {
	RecordOrder(evt domain.OrderEvent) error
	RefreshLeaderboard(restaurantID int) error
}

var _ StoreInterface = (*Store)(nil)

type Consumer struct {
	Reader *kafka.Reader
	Store  StoreInterface
}

func NewConsumer(reader *kafka.Reader, store StoreInterface) *Consumer {
	return &Consumer{
		Reader: reader,
		Store:  store,
	}
}

func (c *Consumer) Start(ctx context.Context) {
	log.Println("Starting revenue aggregation consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			log.Printf("Error reading message: %v", err)
			continue
		}

		var evt domain.OrderEvent
		if err := json.Unmarshal(message.Value, &evt); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		c.Process(evt)
	}
}

func (c *Consumer) Process(evt domain.OrderEvent) {
	switch evt.Type {
	case domain.EventOrderCreated:
		if err := c.Store.RecordOrder(evt); err != nil {
			log.Printf("Error recording order %d: %v", evt.OrderID, err)
			return
		}
		if err := c.Store.RefreshLeaderboard(evt.RestaurantID); err != nil {
			log.Printf("Error refreshing leaderboard for restaurant %d: %v", evt.RestaurantID, err)
		}
	case domain.EventOrderStatusChanged:
		if evt.Status != domain.StatusCancelled {
			return
		}
		if err := c.Store.RefreshLeaderboard(evt.RestaurantID); err != nil {
			log.Printf("Error refreshing leaderboard for restaurant %d: %v", evt.RestaurantID, err)
		}
	}
}
