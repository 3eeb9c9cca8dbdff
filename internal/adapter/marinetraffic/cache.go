package marinetraffic

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/carrier-tracker/internal/domain"
	"github.com/couchcryptid/carrier-tracker/internal/observability"
)

// CachedProvider wraps a PositionProvider with an in-memory TTL'd LRU cache,
// so repeated report cycles within the TTL do not re-hit the metered API.
type CachedProvider struct {
	inner   domain.PositionProvider
	cache   *lruCache
	ttl     time.Duration
	clock   clockwork.Clock
	metrics *observability.Metrics
}

// NewCachedProvider creates a cache decorator around a position provider.
// Pass nil metrics to disable cache instrumentation.
func NewCachedProvider(inner domain.PositionProvider, maxEntries int, ttl time.Duration, metrics *observability.Metrics) *CachedProvider {
	return &CachedProvider{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		ttl:     ttl,
		clock:   clockwork.NewRealClock(),
		metrics: metrics,
	}
}

func (c *CachedProvider) VesselPosition(ctx context.Context, mmsi string) (domain.VesselState, error) {
	if state, ok := c.lookup(mmsi); ok {
		return state, nil
	}

	state, err := c.inner.VesselPosition(ctx, mmsi)
	if err != nil {
		// Not-found and transient failures are not cached so the next cycle retries.
		return state, err
	}

	c.cache.put(mmsi, cacheEntryValue{state: state, fetchedAt: c.clock.Now()})
	return state, nil
}

func (c *CachedProvider) lookup(mmsi string) (domain.VesselState, bool) {
	v, ok := c.cache.get(mmsi)
	if !ok {
		c.count("miss")
		return domain.VesselState{}, false
	}
	if c.clock.Since(v.fetchedAt) > c.ttl {
		c.cache.delete(mmsi)
		c.count("expired")
		return domain.VesselState{}, false
	}
	c.count("hit")
	return v.state, true
}

func (c *CachedProvider) count(result string) {
	if c.metrics != nil {
		c.metrics.PositionCache.WithLabelValues(result).Inc()
	}
}

type cacheEntryValue struct {
	state     domain.VesselState
	fetchedAt time.Time
}

// lruCache is a simple thread-safe LRU cache for vessel states.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value cacheEntryValue
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (cacheEntryValue, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return cacheEntryValue{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value cacheEntryValue) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		c.remove(e)
		delete(c.entries, key)
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.prev = nil
	e.next = nil
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	evicted := c.tail
	c.remove(evicted)
	delete(c.entries, evicted.key)
}
