package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/beehayv/beehayv-api/pkg/errors"
)

// CacheRepository is an in-process TTL cache for average-table payloads. The
// tool is single-process, so there is no out-of-process cache backend; values
// round-trip through JSON so callers always receive an independent copy.
type CacheRepository struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	logger  *zap.Logger
	clock   func() time.Time
}

type cacheEntry struct {
	payload   []byte
	expiresAt time.Time
}

// NewCacheRepository constructs a cache repository.
func NewCacheRepository(logger *zap.Logger) *CacheRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheRepository{
		entries: make(map[string]cacheEntry),
		logger:  logger,
		clock:   time.Now,
	}
}

// Get retrieves and unmarshals the cached value into the provided destination.
func (r *CacheRepository) Get(_ context.Context, key string, dest interface{}) error {
	r.mu.Lock()
	entry, ok := r.entries[key]
	if ok && !entry.expiresAt.IsZero() && r.clock().After(entry.expiresAt) {
		delete(r.entries, key)
		ok = false
	}
	r.mu.Unlock()

	if !ok {
		return appErrors.ErrCacheMiss
	}
	if err := json.Unmarshal(entry.payload, dest); err != nil {
		return fmt.Errorf("unmarshal cache value for %s: %w", key, err)
	}
	return nil
}

// Set marshals the provided value and stores it with the given TTL. A zero
// TTL stores the entry without expiry.
func (r *CacheRepository) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value for %s: %w", key, err)
	}

	entry := cacheEntry{payload: payload}
	if ttl > 0 {
		entry.expiresAt = r.clock().Add(ttl)
	}

	r.mu.Lock()
	r.entries[key] = entry
	r.mu.Unlock()
	return nil
}

// DeleteByPattern removes cached entries matching the provided pattern. Only
// the trailing-star prefix form used by the services is supported.
func (r *CacheRepository) DeleteByPattern(_ context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	exact := prefix == pattern

	r.mu.Lock()
	for key := range r.entries {
		if exact && key != pattern {
			continue
		}
		if !exact && !strings.HasPrefix(key, prefix) {
			continue
		}
		delete(r.entries, key)
	}
	r.mu.Unlock()
	return nil
}

// SetClock overrides the expiry clock, used by tests.
func (r *CacheRepository) SetClock(clock func() time.Time) {
	if clock != nil {
		r.clock = clock
	}
}
