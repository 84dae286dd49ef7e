package publisher

import (
	"context"
	"encoding/base64"
	"strconv"

	"math/rand/v2"

	"github.com/redis/go-redis/v9"

	"sjsage522/jobaggregator/logger"
	"sjsage522/jobaggregator/pkg/errors"
)

// RedisPublisher implements Publisher using Redis streams
type RedisPublisher struct {
	client          *redis.Client
	ctx             context.Context
	streamPrefix    string
	streamCount     int
	streamMaxLength int64
	log             *logger.Logger
}

// NewRedisPublisher creates a new Redis publisher
func NewRedisPublisher(ctx context.Context, addr string, db int, streamPrefix string, streamCount int, streamMaxLength int64) *RedisPublisher {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if streamCount < 1 {
		streamCount = 1
	}

	log := logger.ForPublisher()
	log.Info().Str("addr", addr).Int("db", db).Str("stream", streamPrefix).Int("streams", streamCount).
		Msg("Publishing to Redis")

	return &RedisPublisher{
		client:          client,
		ctx:             ctx,
		streamPrefix:    streamPrefix,
		streamCount:     streamCount,
		streamMaxLength: streamMaxLength,
		log:             log,
	}
}

// Publish publishes a message to a Redis stream
// The message is base64 encoded before publishing
func (p *RedisPublisher) Publish(key string, message []byte) error {
	encodedMessage := base64.StdEncoding.EncodeToString(message)

	// streams are <prefix>:0 .. <prefix>:<count-1>
	stream := p.streamPrefix + ":" + strconv.Itoa(rand.IntN(p.streamCount))

	err := p.client.XAdd(p.ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			key: encodedMessage,
		},
	}).Err()
	if err != nil {
		return errors.NewPublisher(key, "failed to add to "+stream, err)
	}
	return nil
}

// TrimStreams trims all streams to the configured maximum length
func (p *RedisPublisher) TrimStreams() error {
	pattern := p.streamPrefix + ":*"
	streams, err := p.client.Keys(p.ctx, pattern).Result()
	if err != nil {
		return errors.NewPublisher("", "failed to list streams", err)
	}

	for _, stream := range streams {
		err := p.client.XTrimMaxLen(p.ctx, stream, p.streamMaxLength).Err()
		if err != nil {
			return errors.NewPublisher("", "failed to trim "+stream, err)
		}
	}
	p.log.Debug().Int("streams", len(streams)).Int64("maxlen", p.streamMaxLength).Msg("Streams trimmed")

	return nil
}

// Close closes the Redis connection
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
