package store

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/hookline/internal/script"
)

// unreachableRedis points at a port nothing listens on.
func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestCachedStoreFallsBackWhenRedisDown(t *testing.T) {
	ctx := context.Background()
	inner := newTestStore(t)
	st := NewCachedStore(inner, unreachableRedis(t), time.Minute, nil)

	p := script.NewProject("coffee", script.PlatformTikTok, "a")
	p.Ensure(script.KindHook).Finalize("hook text")
	require.NoError(t, st.Save(ctx, p))

	got, err := st.Load(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "hook text", got.Hook.Content)

	_, err = st.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	c := &Conversation{ProjectID: p.ID, Title: p.Title}
	require.NoError(t, st.CreateConversation(ctx, c))
	require.NoError(t, st.DeleteConversation(ctx, c.ID))
	_, err = st.Load(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCachedStoreLoadReturnsCopies(t *testing.T) {
	ctx := context.Background()
	inner := newTestStore(t)
	st := NewCachedStore(inner, unreachableRedis(t), 0, nil)

	p := script.NewProject("coffee", script.PlatformTikTok, "a")
	require.NoError(t, st.Save(ctx, p))

	a, err := st.Load(ctx, p.ID)
	require.NoError(t, err)
	a.Title = "changed"

	b, err := st.Load(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "coffee", b.Title)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "hookline:project:abc", cacheKey("abc"))
}
