// Package locks serialises work on a single key (for example one user's
// problemset) across requests.
package locks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/codetrack/internal/track_errors"
)

const (
	defaultLockTTL   = 30 * time.Second
	defaultLockWait  = 5 * time.Second
	redisRetryPeriod = 50 * time.Millisecond
)

type Locker interface {
	// Acquire blocks until the key is held, the wait elapses or ctx is done.
	// The returned func releases the key.
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// RedisLocker holds keys with SET NX PX so that every api instance sharing
// the redis sees the same lock.
type RedisLocker struct {
	RDB    *redis.Client
	Prefix string
	TTL    time.Duration
	Wait   time.Duration
}

var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
    return redis.call("del", KEYS[1])
else
    return 0
end
`)

func (r *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	ttl := r.TTL
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	wait := r.Wait
	if wait <= 0 {
		wait = defaultLockWait
	}
	redisKey := r.Prefix + key
	lockValue := uuid.NewString()
	lockLogger := log.WithField("lock_key", redisKey)

	waitCtx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()
	ticker := time.NewTicker(redisRetryPeriod)
	defer ticker.Stop()

	for {
		ok, err := r.RDB.SetNX(waitCtx, redisKey, lockValue, ttl).Result()
		if err != nil && waitCtx.Err() == nil {
			err = fmt.Errorf("%w, cannot acquire lock %s, %w", track_errors.ErrInternal, redisKey, err)
			lockLogger.Error(err)
			return nil, err
		}
		if ok {
			break
		}
		select {
		case <-waitCtx.Done():
			lockLogger.Warn("timed out waiting for lock")
			return nil, fmt.Errorf("%w, %s", track_errors.ErrLockNotAcquired, key)
		case <-ticker.C:
		}
	}

	release := func() {
		// release only if we still hold it
		deleted, err := releaseScript.Run(
			context.Background(), r.RDB, []string{redisKey}, lockValue,
		).Int64()
		if err != nil {
			lockLogger.Errorf("failed to release lock, %v", err)
			return
		}
		if deleted == 0 {
			lockLogger.Warn("lock expired before release")
		}
	}
	return release, nil
}

// LocalLocker is an in-process keyed mutex, used when no redis is configured.
// A key's slot lives only while someone holds or waits for it.
type LocalLocker struct {
	Wait time.Duration

	mu    sync.Mutex
	slots map[string]*localSlot
}

type localSlot struct {
	ch chan struct{}
	// holders and waiters of the key
	refs int
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{slots: make(map[string]*localSlot)}
}

func (l *LocalLocker) ref(key string) *localSlot {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.slots == nil {
		l.slots = make(map[string]*localSlot)
	}
	s, ok := l.slots[key]
	if !ok {
		s = &localSlot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	return s
}

func (l *LocalLocker) unref(key string, s *localSlot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}

func (l *LocalLocker) Acquire(ctx context.Context, key string) (func(), error) {
	wait := l.Wait
	if wait <= 0 {
		wait = defaultLockWait
	}
	s := l.ref(key)

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case s.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-s.ch
				l.unref(key, s)
			})
		}, nil
	case <-ctx.Done():
		l.unref(key, s)
		return nil, fmt.Errorf("%w, %s, %w", track_errors.ErrLockNotAcquired, key, ctx.Err())
	case <-timer.C:
		l.unref(key, s)
		return nil, fmt.Errorf("%w, %s", track_errors.ErrLockNotAcquired, key)
	}
}

// held reports the number of keys with a live slot.
func (l *LocalLocker) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}
