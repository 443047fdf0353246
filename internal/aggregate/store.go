package aggregate

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"plateful/internal/domain"

	"github.com/redis/go-redis/v9"
)

// Store maintains revenue rollups in Redis: daily counters per restaurant
// for the ops dashboard and an all-time leaderboard scored by gross revenue.
type Store struct {
	db  *sql.DB
	rdb *redis.Client
	ctx context.Context
}

func NewStore(db *sql.DB, rdb *redis.Client) *Store {
	return &Store{
		db:  db,
		rdb: rdb,
		ctx: context.Background(),
	}
}

func (s *Store) RecordOrder(evt domain.OrderEvent) error {
	day := evt.Timestamp.Format("2006-01-02")
	key := fmt.Sprintf("revenue:daily:%s:%d", day, evt.RestaurantID)

	pipe := s.rdb.Pipeline()
	pipe.HIncrBy(s.ctx, key, "orders_count", 1)
	pipe.HIncrBy(s.ctx, key, "revenue_total", int64(evt.TotalAmount))
	pipe.HIncrBy(s.ctx, key, "platform_fee", int64(evt.PlatformFee))
	pipe.Expire(s.ctx, key, 90*24*time.Hour)
	_, err := pipe.Exec(s.ctx)
	return err
}

// RefreshLeaderboard re-reads gross revenue from the orders table so a
// cancellation pulls the restaurant's score back down.
func (s *Store) RefreshLeaderboard(restaurantID int) error {
	var gross int64
	if err := s.db.QueryRow(`
		SELECT COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE restaurant_id = $1 AND status != 'cancelled'
	`, restaurantID).Scan(&gross); err != nil {
		return err
	}

	return s.rdb.ZAdd(s.ctx, "revenue:leaderboard", redis.Z{
		Score:  float64(gross),
		Member: strconv.Itoa(restaurantID),
	}).Err()
}
