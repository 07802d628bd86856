// Package notify publishes front desk events to Redis pub/sub so other
// services can follow registrations and enrollments.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"frontdesk-go/frontdesk"
)

// RedisConfig holds the connection settings of the publisher
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

// RedisPublisher sends events to a Redis channel
type RedisPublisher struct {
	Client  *redis.Client
	Channel string
	log     zerolog.Logger
}

var _ frontdesk.Notifier = (*RedisPublisher)(nil)

// NewRedisPublisher connects to Redis and checks the connection with a PING
func NewRedisPublisher(ctx context.Context, cfg RedisConfig, logger zerolog.Logger) (*RedisPublisher, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("could not connect to Redis at %s: %w", cfg.Addr, err)
	}

	logger.Info().Str("addr", cfg.Addr).Int("db", cfg.DB).Str("channel", cfg.Channel).Msg("connected to Redis")
	return &RedisPublisher{
		Client:  rdb,
		Channel: cfg.Channel,
		log:     logger.With().Str("component", "notify").Logger(),
	}, nil
}

// Publish JSON-encodes ev and publishes it on the configured channel
func (p *RedisPublisher) Publish(ctx context.Context, ev frontdesk.Event) error {
	payload, err := EncodeEvent(ev)
	if err != nil {
		return err
	}
	receivers, err := p.Client.Publish(ctx, p.Channel, payload).Result()
	if err != nil {
		return fmt.Errorf("failed to publish %s to %s: %w", ev.Type, p.Channel, err)
	}
	p.log.Debug().Str("event", string(ev.Type)).Int64("receivers", receivers).Msg("event published")
	return nil
}

// Close releases the Redis connection
func (p *RedisPublisher) Close() error {
	return p.Client.Close()
}

// EncodeEvent returns the wire form of ev
func EncodeEvent(ev frontdesk.Event) ([]byte, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("failed to encode event %s: %w", ev.Type, err)
	}
	return b, nil
}
