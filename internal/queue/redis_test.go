package queue

import (
	"context"
	"testing"
	"time"

	"catalog/navigator/internal/config"
	"catalog/navigator/internal/domain"
	"catalog/navigator/internal/domain/task"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPublisher(t *testing.T, cfg config.RedisConfig) (*RedisPublisher, *redis.Client) {
	t.Helper()
	server := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: server.Addr()})
	publisher := NewRedisPublisher(rdb, cfg)
	t.Cleanup(func() { _ = publisher.Close() })
	return publisher, rdb
}

func TestRedisPublisher_Publish(t *testing.T) {
	ctx := context.Background()
	publisher, rdb := newTestPublisher(t, config.RedisConfig{StreamPrefix: "test:stream:", StreamMaxLen: 100})

	selection := domain.Selection{
		Node: &domain.CategoryNode{ID: "4", Name: "Desktops"},
		Path: []*domain.CategoryNode{
			{ID: "1", Name: "Electronics"},
			{ID: "4", Name: "Desktops"},
		},
		Breadcrumb: "Electronics > Desktops",
	}
	id, err := publisher.Publish(ctx, task.NewSelectionCommittedTask("form", selection, time.Now()))
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	stream := publisher.StreamName("SelectionCommittedTask")
	assert.Equal(t, "test:stream:SelectionCommittedTask", stream)

	messages, err := rdb.XRange(ctx, stream, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "SelectionCommittedTask", messages[0].Values[task.FieldType])

	data, ok := messages[0].Values[task.FieldData].(string)
	require.True(t, ok)
	decoded, err := task.UnmarshalTask[*task.SelectionCommittedTask]([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, "form", decoded.Owner)
	assert.Equal(t, []domain.CategoryID{"1", "4"}, decoded.PathIDs)
}

func TestRedisPublisher_DefaultPrefix(t *testing.T) {
	publisher, rdb := newTestPublisher(t, config.RedisConfig{})

	_, err := publisher.Publish(context.Background(), &task.CatalogSnapshotTask{Source: "file", Digest: "abc"})
	require.NoError(t, err)

	n, err := rdb.XLen(context.Background(), "navigator:stream:CatalogSnapshotTask").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestNopPublisher(t *testing.T) {
	id, err := NopPublisher{}.Publish(context.Background(), &task.CatalogSnapshotTask{})
	assert.NoError(t, err)
	assert.Empty(t, id)
	assert.NoError(t, NopPublisher{}.Close())
}
