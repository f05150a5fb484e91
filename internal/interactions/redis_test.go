package interactions

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedis(client), mr
}

func TestRedisStore(t *testing.T) {
	s, _ := newRedisStore(t)
	runStoreTests(t, s)
}

func TestRedisStore_KeyNames(t *testing.T) {
	// The key names are a published interface for external tooling; changing
	// them breaks anything reading the sets directly.
	ctx := context.Background()
	s, mr := newRedisStore(t)

	require.NoError(t, s.SetFavorite(ctx, "l1", true))
	require.NoError(t, s.SetInterest(ctx, "l2", true))
	require.NoError(t, s.SetDismissed(ctx, "l3", true))

	assert.True(t, mr.Exists("bizmatch:favorites"))
	assert.True(t, mr.Exists("bizmatch:interested"))
	assert.True(t, mr.Exists("bizmatch:dismissed"))

	members, err := mr.SMembers("bizmatch:favorites")
	require.NoError(t, err)
	assert.Equal(t, []string{"l1"}, members)
}
