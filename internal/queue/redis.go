package queue

import (
	"context"
	"fmt"

	"catalog/navigator/internal/config"
	"catalog/navigator/internal/domain/task"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Publisher appends navigator events to their Redis streams
type Publisher interface {
	Publish(ctx context.Context, task task.Task) (string, error) // Returns message ID
	Close() error
}

type RedisPublisher struct {
	redisClient  *redis.Client
	streamPrefix string
	maxLen       int64
}

func NewRedisPublisher(redisClient *redis.Client, cfg config.RedisConfig) *RedisPublisher {
	prefix := cfg.StreamPrefix
	if prefix == "" {
		prefix = "navigator:stream:"
	}
	return &RedisPublisher{
		redisClient:  redisClient,
		streamPrefix: prefix,
		maxLen:       cfg.StreamMaxLen,
	}
}

// StreamName is the stream a task type is published to
func (q *RedisPublisher) StreamName(taskType string) string {
	return q.streamPrefix + taskType
}

func (q *RedisPublisher) Publish(ctx context.Context, t task.Task) (string, error) {
	taskType := t.TaskType()
	streamName := q.StreamName(taskType)

	values, err := task.Fields(t)
	if err != nil {
		return "", err
	}

	args := &redis.XAddArgs{
		Stream: streamName,
		Values: values,
	}
	if q.maxLen > 0 {
		args.MaxLen = q.maxLen
		args.Approx = true
	}

	messageID, err := q.redisClient.XAdd(ctx, args).Result()
	if err != nil {
		return "", fmt.Errorf("failed to add task to Redis stream %s: %w", streamName, err)
	}

	log.Debugf("Added task %s to stream %s with message ID: %s", taskType, streamName, messageID)
	return messageID, nil
}

func (q *RedisPublisher) Close() error {
	if q.redisClient != nil {
		return q.redisClient.Close()
	}
	return nil
}

// NopPublisher drops every event; used when Redis is disabled
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, task task.Task) (string, error) {
	return "", nil
}

func (NopPublisher) Close() error {
	return nil
}
