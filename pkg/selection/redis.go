package selection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/vehiclelookup/pkg/integrations/vehicles"
)

const redisKeyPrefix = "vehiclelookup:selection:"

// RedisConfig configures a [RedisStore].
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration // 0 = no expiry
}

// RedisStore keeps selections in Redis as JSON strings, so several server
// instances see the same state.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis and verifies the connection with PING.
// Addr defaults to localhost:6379.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	if cfg.Addr == "" {
		cfg.Addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}
	return newRedisStore(client, cfg.TTL), nil
}

func newRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func redisKey(profile string) string {
	return redisKeyPrefix + profile
}

func (s *RedisStore) Get(ctx context.Context, profile string) (*vehicles.VehicleState, error) {
	if err := checkProfile(profile); err != nil {
		return nil, err
	}
	data, err := s.client.Get(ctx, redisKey(profile)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get selection: %w", err)
	}

	var st vehicles.VehicleState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parse selection: %w", err)
	}
	return &st, nil
}

func (s *RedisStore) Set(ctx context.Context, profile string, st *vehicles.VehicleState) error {
	if err := checkSet(profile, st); err != nil {
		return err
	}
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal selection: %w", err)
	}
	if err := s.client.Set(ctx, redisKey(profile), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set selection: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, profile string) error {
	if err := checkProfile(profile); err != nil {
		return err
	}
	if err := s.client.Del(ctx, redisKey(profile)).Err(); err != nil {
		return fmt.Errorf("redis delete selection: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
