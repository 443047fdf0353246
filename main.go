package main

import (
	"context"
	"log"
	"time"

	"plateful/config"
	"plateful/internal/aggregate"
	httpapi "plateful/internal/api/http"
	"plateful/internal/cart"
	"plateful/internal/pricing"
	"plateful/internal/service"
	"plateful/internal/storage"
)

func main() {
	db := config.MustInitPostgres()
	defer db.Close()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	writer := config.NewKafkaWriter(config.OrdersTopic)
	defer writer.Close()

	publisher := storage.NewKafkaPublisher(writer)
	idempotency := storage.NewRedisCache(rdb, 24*time.Hour)
	carts := cart.NewRedisStore(rdb, 7*24*time.Hour)
	qrEncoder := service.DefaultQRGenerator{BaseURL: config.BaseURL()}

	checkout := service.NewCheckoutService(repo, pricing.NewEngine(pricing.DefaultCommissionBP), idempotency, publisher, qrEncoder)
	orders := service.NewOrderQueryService(repo, qrEncoder)
	menu := service.NewMenuService(repo)

	reader := config.NewKafkaReader(config.OrdersTopic, "revenue-aggregator")
	defer reader.Close()
	consumer := aggregate.NewConsumer(reader, aggregate.NewStore(db, rdb))
	go consumer.Start(context.Background())

	handler := httpapi.NewHandler(checkout, orders, menu, carts)
	httpapi.StartServer(config.HTTPAddr(), httpapi.NewRouter(handler))
}
