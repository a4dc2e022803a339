package lock

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	lockKeyPrefix = "lock:"
	lockTTL       = 10 * time.Second
)

// ErrLockHeld is returned when another request holds the lock.
var ErrLockHeld = errors.New("lock already held")

// Locker provides short-lived per-key mutual exclusion across server
// instances, backed by redis SET NX.
type Locker struct {
	rdb *redis.Client
}

func NewLocker(rdb *redis.Client) *Locker {
	return &Locker{rdb: rdb}
}

// Acquire takes the lock for key and returns a release function. The
// release only deletes the lock if the token still matches, so an
// expired lock is never released out from under a new holder.
func (l *Locker) Acquire(ctx context.Context, key string) (func(), error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return nil, fmt.Errorf("failed to generate lock token: %w", err)
	}
	token := hex.EncodeToString(bytes)

	fullKey := lockKeyPrefix + key
	ok, err := l.rdb.SetNX(ctx, fullKey, token, lockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !ok {
		return nil, ErrLockHeld
	}

	release := func() {
		current, err := l.rdb.Get(context.Background(), fullKey).Result()
		if err == nil && current == token {
			l.rdb.Del(context.Background(), fullKey)
		}
	}

	return release, nil
}

// UserKey builds the lock key serializing all money-moving operations
// for one user.
func UserKey(userID int64) string {
	return fmt.Sprintf("user:%d", userID)
}
