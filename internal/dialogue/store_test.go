package dialogue

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess := &Context{
		State:       StateSlotsFound,
		PatientName: "Joyce Kim",
		Date:        "2025-11-21",
		Slots:       []SlotRange{{Start: "09:00", End: "09:30"}},
	}
	require.NoError(t, store.Save(ctx, "s1", sess))

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, sess, loaded)

	// The stored copy is independent of the caller's context.
	sess.Slots[0].Start = "mutated"
	loaded2, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "09:00", loaded2.Slots[0].Start)
}

func TestMemoryStoreMissingSession(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", NewContext()))
	require.NoError(t, store.Delete(ctx, "s1"))
	_, err := store.Load(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Deleting an absent session is a no-op.
	assert.NoError(t, store.Delete(ctx, "never-existed"))
}

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, nil, ttl), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := newRedisStore(t, 0)
	ctx := context.Background()

	sess := &Context{
		State: StateBookingDetails,
		Date:  "2025-11-21",
		Time:  "09:30-10:00",
	}
	require.NoError(t, store.Save(ctx, "abc", sess))

	loaded, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, sess, loaded)
}

func TestRedisStoreMissingSession(t *testing.T) {
	store, _ := newRedisStore(t, 0)
	_, err := store.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStoreTTL(t *testing.T) {
	store, mr := newRedisStore(t, time.Hour)
	require.NoError(t, store.Save(context.Background(), "abc", NewContext()))

	mr.FastForward(2 * time.Hour)
	_, err := store.Load(context.Background(), "abc")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStoreDelete(t *testing.T) {
	store, _ := newRedisStore(t, 0)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "abc", NewContext()))
	require.NoError(t, store.Delete(ctx, "abc"))
	_, err := store.Load(ctx, "abc")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStoreCorruptPayload(t *testing.T) {
	store, mr := newRedisStore(t, 0)
	require.NoError(t, mr.Set("session:abc", "not json"))

	_, err := store.Load(context.Background(), "abc")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionNotFound)
}
