package state

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// SnapshotTracker remembers the digest of the last category payload seen per source
type SnapshotTracker interface {
	GetDigest(ctx context.Context, source string) (string, error)
	SetDigest(ctx context.Context, source, digest string) error
}

type redisSnapshotTracker struct {
	redisClient *redis.Client
	keyPrefix   string
}

func NewRedisSnapshotTracker(redisClient *redis.Client) SnapshotTracker {
	return &redisSnapshotTracker{
		redisClient: redisClient,
		keyPrefix:   "navigator:snapshot:digest:",
	}
}

func (s *redisSnapshotTracker) GetDigest(ctx context.Context, source string) (string, error) {
	val, err := s.redisClient.Get(ctx, s.keyPrefix+source).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil // Nothing recorded yet
		}
		return "", fmt.Errorf("failed to get snapshot digest for %s: %w", source, err)
	}
	return val, nil
}

func (s *redisSnapshotTracker) SetDigest(ctx context.Context, source, digest string) error {
	err := s.redisClient.Set(ctx, s.keyPrefix+source, digest, 0).Err() // No expiration
	if err != nil {
		return fmt.Errorf("failed to set snapshot digest for %s: %w", source, err)
	}
	return nil
}

// MemorySnapshotTracker keeps digests in process; used when Redis is disabled
type MemorySnapshotTracker struct {
	mu      sync.Mutex
	digests map[string]string
}

func NewMemorySnapshotTracker() *MemorySnapshotTracker {
	return &MemorySnapshotTracker{digests: make(map[string]string)}
}

func (m *MemorySnapshotTracker) GetDigest(ctx context.Context, source string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.digests[source], nil
}

func (m *MemorySnapshotTracker) SetDigest(ctx context.Context, source, digest string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.digests[source] = digest
	return nil
}
