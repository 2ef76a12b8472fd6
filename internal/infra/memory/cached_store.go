package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Backing is the slower store a CachedStore reads through to (e.g., Redis).
type Backing interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// CachedStore caches reads with TTL to avoid repeated round trips and writes through.
// Concurrent misses on one key share a single backing read.
type CachedStore struct {
	backing Backing
	ttl     time.Duration
	clock   func() time.Time
	sf      singleflight.Group

	mu    sync.RWMutex
	rnd   *rand.Rand
	cache map[string]cachedValue
}

type cachedValue struct {
	value     string
	ok        bool
	expiresAt time.Time
}

func NewCachedStore(backing Backing, ttl time.Duration) *CachedStore {
	return &CachedStore{
		backing: backing,
		ttl:     ttl,
		clock:   time.Now,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:   make(map[string]cachedValue),
	}
}

func (c *CachedStore) Get(ctx context.Context, key string) (string, bool, error) {
	if entry, hit := c.lookup(key); hit {
		return entry.value, entry.ok, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		if entry, hit := c.lookup(key); hit {
			return entry, nil
		}
		value, ok, err := c.backing.Get(ctx, key)
		if err != nil {
			return cachedValue{}, err
		}
		entry := cachedValue{value: value, ok: ok}
		c.store(key, entry)
		return entry, nil
	})
	if err != nil {
		return "", false, err
	}
	entry := result.(cachedValue)
	return entry.value, entry.ok, nil
}

// Set writes to the backing store first; the cache only changes on success.
func (c *CachedStore) Set(ctx context.Context, key, value string) error {
	if err := c.backing.Set(ctx, key, value); err != nil {
		c.mu.Lock()
		delete(c.cache, key)
		c.mu.Unlock()
		return err
	}
	c.store(key, cachedValue{value: value, ok: true})
	return nil
}

func (c *CachedStore) lookup(key string) (cachedValue, bool) {
	now := c.clock()
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.cache[key]
	if !ok || !entry.expiresAt.After(now) {
		return cachedValue{}, false
	}
	return entry, true
}

func (c *CachedStore) store(key string, entry cachedValue) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry.expiresAt = c.clock().Add(c.ttlWithJitter())
	c.cache[key] = entry
}

// ttlWithJitter adds up to 10% to spread expirations. Callers hold c.mu.
func (c *CachedStore) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
