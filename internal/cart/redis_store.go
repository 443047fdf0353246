package cart

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{Client: client, TTL: ttl}
}

func (s *RedisStore) key(customerID int) string {
	return "cart:" + strconv.Itoa(customerID)
}

func (s *RedisStore) Load(ctx context.Context, customerID int) (Cart, error) {
	payload, err := s.Client.Get(ctx, s.key(customerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return New(), nil
	}
	if err != nil {
		return Cart{}, err
	}

	var c Cart
	if err := json.Unmarshal(payload, &c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

func (s *RedisStore) Save(ctx context.Context, customerID int, c Cart) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, s.key(customerID), payload, s.TTL).Err()
}

func (s *RedisStore) Clear(ctx context.Context, customerID int) error {
	return s.Client.Del(ctx, s.key(customerID)).Err()
}

var _ Store = (*RedisStore)(nil)
