package redis

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockNotAcquired is returned when the lock is still held after the wait budget
var ErrLockNotAcquired = errors.New("lock not acquired")

// Deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`)

var (
	lockSetNX   = SetNX
	lockRelease = func(ctx context.Context, key, token string) error {
		return releaseScript.Run(ctx, client, []string{key}, token).Err()
	}
)

// Locker hands out short-lived exclusive locks stored as redis keys
type Locker struct {
	prefix string
	ttl    time.Duration
	wait   time.Duration
	retry  time.Duration
}

// NewLocker creates a locker. ttl bounds how long a crashed holder blocks others,
// wait bounds how long Acquire keeps retrying.
func NewLocker(prefix string, ttl, wait time.Duration) *Locker {
	return &Locker{
		prefix: prefix,
		ttl:    ttl,
		wait:   wait,
		retry:  25 * time.Millisecond,
	}
}

// Acquire blocks until the lock for key is held, the wait budget runs out or ctx ends.
// The returned func releases the lock.
func (l *Locker) Acquire(ctx context.Context, key string) (func(context.Context) error, error) {
	fullKey := l.prefix + key
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := lockSetNX(ctx, fullKey, token, l.ttl)
		if err != nil {
			return nil, err
		}
		if ok {
			return func(releaseCtx context.Context) error {
				return lockRelease(releaseCtx, fullKey, token)
			}, nil
		}
		if time.Now().After(deadline) {
			return nil, ErrLockNotAcquired
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retry):
		}
	}
}
