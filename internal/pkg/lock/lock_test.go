package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLocker(t *testing.T) (*Locker, *miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewLocker(client), mr, client
}

func TestAcquireAndRelease(t *testing.T) {
	locker, _, _ := setupLocker(t)
	ctx := context.Background()

	release, err := locker.Acquire(ctx, "user:1")
	require.NoError(t, err)

	_, err = locker.Acquire(ctx, "user:1")
	assert.ErrorIs(t, err, ErrLockHeld)

	// A different key is independent.
	otherRelease, err := locker.Acquire(ctx, "user:2")
	require.NoError(t, err)
	otherRelease()

	release()

	release, err = locker.Acquire(ctx, "user:1")
	require.NoError(t, err)
	release()
}

func TestReleaseAfterExpiryKeepsNewHolder(t *testing.T) {
	locker, mr, client := setupLocker(t)
	ctx := context.Background()

	staleRelease, err := locker.Acquire(ctx, "user:1")
	require.NoError(t, err)

	// The TTL elapses and another request takes the lock.
	mr.FastForward(11 * time.Second)

	release, err := locker.Acquire(ctx, "user:1")
	require.NoError(t, err)
	defer release()

	// The stale release must not delete the new holder's lock.
	staleRelease()

	exists, err := client.Exists(ctx, "lock:user:1").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists)
}

func TestUserKey(t *testing.T) {
	assert.Equal(t, "user:42", UserKey(42))
}
