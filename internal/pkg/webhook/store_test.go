package webhook

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStoreDown = errors.New("store unreachable")

// failingStore simulates a fully unavailable shared store.
type failingStore struct{}

func (failingStore) Incr(context.Context, string) (int64, error) { return 0, errStoreDown }
func (failingStore) Expire(context.Context, string, time.Duration) error {
	return errStoreDown
}
func (failingStore) Get(context.Context, string) (string, error) { return "", errStoreDown }
func (failingStore) SetEx(context.Context, string, interface{}, time.Duration) error {
	return errStoreDown
}
func (failingStore) SetNX(context.Context, string, interface{}, time.Duration) (bool, error) {
	return false, errStoreDown
}

func TestMemoryStoreIncrAndExpire(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()

	n, err := store.Incr(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = store.Incr(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, store.Expire(ctx, "counter", -time.Second))
	n, err = store.Incr(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "expired counter restarts from zero")
}

func TestMemoryStoreSetNX(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()

	ok, err := store.SetNX(ctx, "lock", "1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.SetNX(ctx, "lock", "1", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "second claim within TTL must fail")

	ok, err = store.SetNX(ctx, "expired-lock", "1", -time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = store.SetNX(ctx, "expired-lock", "1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "expired lock is claimable again")
}

func TestMemoryStoreGetAndSetEx(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.SetEx(ctx, "key", []byte(`{"a":1}`), time.Minute))
	val, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, val)

	require.NoError(t, store.SetEx(ctx, "gone", "x", -time.Second))
	_, err = store.Get(ctx, "gone")
	assert.ErrorIs(t, err, ErrNotFound)
}
