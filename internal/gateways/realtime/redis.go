package realtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/lukeshafer/indigestion-cards-sub002/cardsite"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/notify"
)

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, cfg cardsite.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// RedisBroadcaster publishes client messages on a pub/sub channel that every
// gateway process subscribes to.
type RedisBroadcaster struct {
	client  *redis.Client
	channel string
}

var _ notify.Broadcaster = &RedisBroadcaster{}

func NewRedisBroadcaster(client *redis.Client, channel string) *RedisBroadcaster {
	return &RedisBroadcaster{client: client, channel: channel}
}

func (b *RedisBroadcaster) Broadcast(ctx context.Context, message string) error {
	receivers, err := b.client.Publish(ctx, b.channel, message).Result()
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", message, err)
	}
	slog.Debug("Broadcast published",
		slog.String("type", "ws"),
		slog.String("message", message),
		slog.Int64("gateways", receivers))
	return nil
}

// Subscribe returns the channel's messages until ctx is done.
func (b *RedisBroadcaster) Subscribe(ctx context.Context) <-chan string {
	pubsub := b.client.Subscribe(ctx, b.channel)
	out := make(chan string)
	go func() {
		defer close(out)
		defer pubsub.Close()
		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				select {
				case out <- msg.Payload:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// RedisRegistry tracks live connection ids in a Redis set shared by all
// gateway processes.
type RedisRegistry struct {
	client *redis.Client
	key    string
}

func NewRedisRegistry(client *redis.Client, key string) *RedisRegistry {
	return &RedisRegistry{client: client, key: key}
}

func (r *RedisRegistry) Add(ctx context.Context, connectionID string) error {
	return r.client.SAdd(ctx, r.key, connectionID).Err()
}

func (r *RedisRegistry) Remove(ctx context.Context, connectionID string) error {
	return r.client.SRem(ctx, r.key, connectionID).Err()
}

func (r *RedisRegistry) Count(ctx context.Context) (int64, error) {
	return r.client.SCard(ctx, r.key).Result()
}
