package state

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTrackers(t *testing.T) map[string]SnapshotTracker {
	server := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return map[string]SnapshotTracker{
		"redis":  NewRedisSnapshotTracker(rdb),
		"memory": NewMemorySnapshotTracker(),
	}
}

func TestSnapshotTracker(t *testing.T) {
	ctx := context.Background()
	for name, tracker := range testTrackers(t) {
		t.Run(name, func(t *testing.T) {
			digest, err := tracker.GetDigest(ctx, "https://example.test/categories")
			require.NoError(t, err)
			assert.Empty(t, digest, "nothing recorded yet")

			require.NoError(t, tracker.SetDigest(ctx, "https://example.test/categories", "00ff"))
			require.NoError(t, tracker.SetDigest(ctx, "categories.json", "beef"))

			digest, err = tracker.GetDigest(ctx, "https://example.test/categories")
			require.NoError(t, err)
			assert.Equal(t, "00ff", digest)
		})
	}
}

func TestRedisSnapshotTracker_KeyPrefix(t *testing.T) {
	server := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer rdb.Close()

	require.NoError(t, NewRedisSnapshotTracker(rdb).SetDigest(context.Background(), "src", "1234"))
	value, err := server.Get("navigator:snapshot:digest:src")
	require.NoError(t, err)
	assert.Equal(t, "1234", value)
}
