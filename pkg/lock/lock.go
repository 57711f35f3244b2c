// Package lock serializes read-validate-write sequences on a single record
// across API instances.
package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// ErrNotObtained is returned when the lock is still held by someone else
// after the wait budget is spent.
var ErrNotObtained = errors.New("lock: not obtained")

// Locker runs fn while holding the lock named key.
type Locker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// RedisLocker is a Locker backed by Redis, shared by every API instance
// pointing at the same server.
type RedisLocker struct {
	client    *redislock.Client
	namespace string
	ttl       time.Duration
	wait      time.Duration
}

// NewRedisLocker wraps rdb. ttl bounds how long a crashed holder keeps the
// lock; wait bounds how long a caller retries before giving up.
func NewRedisLocker(rdb redis.UniversalClient, namespace string, ttl, wait time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisLocker{
		client:    redislock.New(rdb),
		namespace: namespace,
		ttl:       ttl,
		wait:      wait,
	}
}

func (l *RedisLocker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	opts := &redislock.Options{}
	if l.wait > 0 {
		step := 50 * time.Millisecond
		opts.RetryStrategy = redislock.LimitRetry(redislock.LinearBackoff(step), int(l.wait/step))
	}

	name := key
	if l.namespace != "" {
		name = l.namespace + ":" + key
	}

	held, err := l.client.Obtain(ctx, name, l.ttl, opts)
	if errors.Is(err, redislock.ErrNotObtained) {
		return ErrNotObtained
	}
	if err != nil {
		return fmt.Errorf("lock: obtain %s: %w", name, err)
	}
	defer func() {
		// A release failure only means the TTL will free the key.
		_ = held.Release(context.WithoutCancel(ctx))
	}()

	return fn(ctx)
}

// LocalLocker is an in-process Locker for single-instance deployments and tests.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	ch   chan struct{}
	refs int
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[string]*entry)}
}

func (l *LocalLocker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}()

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		return ErrNotObtained
	}
	defer func() { <-e.ch }()

	return fn(ctx)
}
