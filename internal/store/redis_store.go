// internal/store/redis_store.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/javajoker/storefront-backend/internal/config"
	"github.com/javajoker/storefront-backend/internal/models"
)

// RedisStore keeps each container as a JSON value with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// NewRedisClient connects and pings the configured server.
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func (s *RedisStore) LoadCart(ctx context.Context, sessionID string) (models.Cart, error) {
	var cart models.Cart
	if err := s.get(ctx, cartKey(sessionID), &cart); err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

func (s *RedisStore) SaveCart(ctx context.Context, sessionID string, cart models.Cart) error {
	if len(cart.Items) == 0 {
		return s.client.Del(ctx, cartKey(sessionID)).Err()
	}
	return s.set(ctx, cartKey(sessionID), cart)
}

func (s *RedisStore) LoadFavorites(ctx context.Context, sessionID string) (models.FavoritesList, error) {
	var list models.FavoritesList
	if err := s.get(ctx, favoritesKey(sessionID), &list); err != nil {
		return models.FavoritesList{}, err
	}
	return list, nil
}

func (s *RedisStore) SaveFavorites(ctx context.Context, sessionID string, list models.FavoritesList) error {
	if len(list.ProductIDs) == 0 {
		return s.client.Del(ctx, favoritesKey(sessionID)).Err()
	}
	return s.set(ctx, favoritesKey(sessionID), list)
}

// get leaves dst untouched when the key does not exist.
func (s *RedisStore) get(ctx context.Context, key string, dst interface{}) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}
