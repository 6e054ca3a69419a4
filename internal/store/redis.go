package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Префикс каналов уведомлений об изменении ключа
const redisNotifyPrefix = "presence_sync:changed:"

// RedisKV - сетевой бэкенд: контексты на разных машинах делят один
// origin. Уведомления соседям доставляются через pub/sub канал ключа.
type RedisKV struct {
	client *redis.Client
	log    *logrus.Logger
}

func NewRedisKV(client *redis.Client, log *logrus.Logger) *RedisKV {
	return &RedisKV{client: client, log: log}
}

func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get key from redis: %w", err)
	}
	return raw, nil
}

func (r *RedisKV) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set key in redis: %w", err)
	}
	// Будим соседние контексты; неудача не критична, их догонит опрос
	if err := r.client.Publish(ctx, redisNotifyPrefix+key, "1").Err(); err != nil {
		r.log.WithError(err).WithField("key", key).Warn("Failed to publish change notification")
	}
	return nil
}

func (r *RedisKV) Watch(ctx context.Context, key string, fn func()) (func(), error) {
	pubsub := r.client.Subscribe(ctx, redisNotifyPrefix+key)
	// Принудительно дожидаемся подтверждения подписки
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to key channel: %w", err)
	}

	go func() {
		for range pubsub.Channel() {
			fn()
		}
	}()

	return func() {
		if err := pubsub.Close(); err != nil {
			r.log.WithError(err).WithField("key", key).Warn("Failed to close key subscription")
		}
	}, nil
}

func (r *RedisKV) Close() error {
	return r.client.Close()
}
