package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix separa las marcas de idempotencia del resto de keys en Redis
const keyPrefix = "pdv:sync:processed:"

// retention es cuánto vive una marca. Pasado este plazo un reenvío volvería
// al backend, que deduplica por order_number de su lado.
const retention = 30 * 24 * time.Hour

// RedisRegistry implementa IdempotencyRegistry sobre Redis.
// Compartido entre réplicas del relay: cualquier instancia ve las órdenes
// que otra ya marcó como procesadas.
type RedisRegistry struct {
	client *redis.Client
}

// NewRedisRegistry crea el registro y verifica la conexión
func NewRedisRegistry(addr, password string, db int) (*RedisRegistry, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}

	return &RedisRegistry{client: client}, nil
}

// Seen indica si la key ya fue marcada como procesada
func (r *RedisRegistry) Seen(ctx context.Context, key string) (bool, error) {
	err := r.client.Get(ctx, keyPrefix+key).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error checking idempotency key: %w", err)
	}
	return true, nil
}

// MarkProcessed marca la key como procesada con retención acotada
func (r *RedisRegistry) MarkProcessed(ctx context.Context, key string) error {
	if err := r.client.Set(ctx, keyPrefix+key, "1", retention).Err(); err != nil {
		return fmt.Errorf("error marking idempotency key: %w", err)
	}
	return nil
}

// Close cierra la conexión a Redis
func (r *RedisRegistry) Close() error {
	return r.client.Close()
}
