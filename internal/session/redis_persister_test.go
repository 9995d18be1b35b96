package session

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRedisPersister_Integration requires a running Redis and skips otherwise.
func TestRedisPersister_Integration(t *testing.T) {
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skip("Skipping Redis integration test: redis not available")
	}

	p := NewRedisPersister(client, "coach:test", 0)
	key := "user-" + t.Name()
	require.NoError(t, p.Delete(ctx, key))

	_, err := p.Load(ctx, key)
	assert.ErrorIs(t, err, ErrNoRecord)

	require.NoError(t, p.Save(ctx, key, []byte(`{"id":"x"}`)))
	data, err := p.Load(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"x"}`, string(data))

	require.NoError(t, p.Delete(ctx, key))
	require.NoError(t, p.Delete(ctx, key))
	_, err = p.Load(ctx, key)
	assert.ErrorIs(t, err, ErrNoRecord)
}
