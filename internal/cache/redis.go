package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"TimerBot/storage/redis"
)

// 多副本部署时的共享实现：坐标用 GETDEL 保证单次消费，
// 去重用 SETNX，过期交给 redis TTL。语义与内存实现一致，
// 丢失数据的代价仍然只是让用户重发一次位置。

const (
	coordsPrefix = "coords"
	dedupPrefix  = "message:processed"
)

type RedisCoordinateStore struct {
	ttl time.Duration
}

func NewRedisCoordinateStore(ttl time.Duration) *RedisCoordinateStore {
	return &RedisCoordinateStore{ttl: ttl}
}

func (s *RedisCoordinateStore) Put(ctx context.Context, senderID string, lat, lon float64) error {
	payload, err := json.Marshal(Coordinates{Latitude: lat, Longitude: lon})
	if err != nil {
		return fmt.Errorf("failed to marshal coordinates: %w", err)
	}

	key := redis.Key(coordsPrefix, senderID)
	if err := redis.Client().Set(ctx, key, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store coordinates: %w", err)
	}
	return nil
}

func (s *RedisCoordinateStore) TakeIfFresh(ctx context.Context, senderID string) (Coordinates, bool, error) {
	key := redis.Key(coordsPrefix, senderID)

	payload, err := redis.Client().GetDel(ctx, key).Bytes()
	if err == goredis.Nil {
		return Coordinates{}, false, nil
	}
	if err != nil {
		return Coordinates{}, false, fmt.Errorf("failed to take coordinates: %w", err)
	}

	var coords Coordinates
	if err := json.Unmarshal(payload, &coords); err != nil {
		return Coordinates{}, false, fmt.Errorf("failed to unmarshal coordinates: %w", err)
	}

	return coords, true, nil
}

type RedisDedupStore struct {
	ttl time.Duration
}

func NewRedisDedupStore(ttl time.Duration) *RedisDedupStore {
	return &RedisDedupStore{ttl: ttl}
}

func (s *RedisDedupStore) TryMark(ctx context.Context, messageID string) (bool, error) {
	key := redis.Key(dedupPrefix, messageID)

	// SETNX：首次标记返回 true，已存在返回 false
	result, err := redis.Client().SetNX(ctx, key, "processing", s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark message as processing: %w", err)
	}
	return result, nil
}
