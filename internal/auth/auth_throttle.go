package auth

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	autherrors "github.com/towet/payroll-processing-sys/internal/auth/errors"

	"github.com/redis/go-redis/v9"
)

const DefaultThrottleWindow = 60 * time.Second

type Clock func() time.Time

// AttemptStore remembers the last auth attempt per key.
type AttemptStore interface {
	Last(ctx context.Context, key string) (time.Time, bool, error)
	Record(ctx context.Context, key string, at time.Time, ttl time.Duration) error
}

// Throttle allows one sign-up or sign-in attempt per email per window.
// A rejected attempt does not move the window.
type Throttle struct {
	store  AttemptStore
	now    Clock
	window time.Duration
}

func NewThrottle(store AttemptStore, now Clock, window time.Duration) *Throttle {
	if now == nil {
		now = time.Now
	}
	if window <= 0 {
		window = DefaultThrottleWindow
	}
	return &Throttle{store: store, now: now, window: window}
}

func throttleKey(email string) string {
	return "auth:throttle:" + strings.ToLower(strings.TrimSpace(email))
}

func (t *Throttle) Check(ctx context.Context, email string) error {
	key := throttleKey(email)
	now := t.now()

	last, ok, err := t.store.Last(ctx, key)
	if err != nil {
		return err
	}
	if ok {
		if remaining := t.window - now.Sub(last); remaining > 0 {
			return autherrors.Throttled(int64(math.Ceil(remaining.Seconds())))
		}
	}
	return t.store.Record(ctx, key, now, t.window)
}

type redisAttemptStore struct {
	rdb *redis.Client
}

func NewRedisAttemptStore(rdb *redis.Client) AttemptStore {
	return &redisAttemptStore{rdb: rdb}
}

func (s *redisAttemptStore) Last(ctx context.Context, key string) (time.Time, bool, error) {
	v, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, false, nil
	}
	return time.UnixMilli(ms), true, nil
}

// Record stores the attempt time in unix milliseconds; the key expires with the window.
func (s *redisAttemptStore) Record(ctx context.Context, key string, at time.Time, ttl time.Duration) error {
	return s.rdb.Set(ctx, key, at.UnixMilli(), ttl).Err()
}

type memoryEntry struct {
	at      time.Time
	expires time.Time
}

type memoryAttemptStore struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]memoryEntry
}

// NewMemoryAttemptStore keeps at most capacity keys. When full, expired keys
// are dropped first, then the oldest attempt.
func NewMemoryAttemptStore(capacity int) AttemptStore {
	if capacity <= 0 {
		capacity = 10000
	}
	return &memoryAttemptStore{capacity: capacity, entries: make(map[string]memoryEntry)}
}

func (s *memoryAttemptStore) Last(ctx context.Context, key string) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return time.Time{}, false, nil
	}
	return e.at, true, nil
}

func (s *memoryAttemptStore) Record(ctx context.Context, key string, at time.Time, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[key]; !exists && len(s.entries) >= s.capacity {
		s.evict(at)
	}
	s.entries[key] = memoryEntry{at: at, expires: at.Add(ttl)}
	return nil
}

func (s *memoryAttemptStore) evict(now time.Time) {
	var (
		oldestKey string
		oldest    time.Time
	)
	for k, e := range s.entries {
		if !now.Before(e.expires) {
			delete(s.entries, k)
			continue
		}
		if oldestKey == "" || e.at.Before(oldest) {
			oldestKey, oldest = k, e.at
		}
	}
	if len(s.entries) >= s.capacity && oldestKey != "" {
		delete(s.entries, oldestKey)
	}
}
