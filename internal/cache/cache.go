package cache

import (
	"log/slog"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache sizing defaults
const (
	// DefaultTTL is the absolute age after which an entry is expired.
	DefaultTTL = 300 * time.Second

	// DefaultMaxBytes is the global byte budget.
	DefaultMaxBytes = 50 << 20

	// oversizeDivisor: a single entry larger than maxBytes/oversizeDivisor
	// is never cached, so one huge response cannot evict everything else.
	oversizeDivisor = 10

	// maxEntries is a count guard for the underlying recency list; the byte
	// budget is the real bound.
	maxEntries = 100000
)

type entry struct {
	data       []byte
	size       int64
	createdAt  time.Time
	lastAccess time.Time
}

// Config holds Cache construction parameters. Zero values select defaults.
// Now is a clock hook for expiry tests.
type Config struct {
	TTL      time.Duration
	MaxBytes int64
	Logger   *slog.Logger
	Now      func() time.Time
}

// Cache is the bounded response cache: a map from canonical request
// signatures to serialized payloads, expired lazily by absolute age and
// bounded by a byte budget with least-recently-used eviction.
type Cache struct {
	mu       sync.Mutex
	entries  *lru.Cache[string, *entry]
	bytes    int64
	maxBytes int64
	ttl      time.Duration
	now      func() time.Time
	logger   *slog.Logger

	hits      uint64
	misses    uint64
	evictions uint64
	expired   uint64
}

// New creates a response cache.
func New(cfg Config) *Cache {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	c := &Cache{
		maxBytes: cfg.MaxBytes,
		ttl:      cfg.TTL,
		now:      cfg.Now,
		logger:   cfg.Logger,
	}

	// The eviction callback keeps byte accounting in step with the recency
	// list. It runs inside mutating calls while c.mu is held, so it must
	// not lock.
	entries, _ := lru.NewWithEvict[string, *entry](maxEntries, func(_ string, e *entry) {
		c.bytes -= e.size
	})
	c.entries = entries

	return c
}

// Get returns the payload stored under key. An entry older than the TTL is
// treated as absent and removed now (lazy expiry). A hit refreshes the
// entry's recency but never its creation time, so expiry is absolute-age
// based rather than sliding.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries.Get(key)
	if !ok {
		c.misses++
		return nil, false
	}

	if c.now().Sub(e.createdAt) > c.ttl {
		c.entries.Remove(key)
		c.expired++
		c.misses++
		return nil, false
	}

	e.lastAccess = c.now()
	c.hits++

	// Return a copy so a caller cannot mutate cache-owned bytes.
	data := make([]byte, len(e.data))
	copy(data, e.data)
	return data, true
}

// Put stores data under key, refreshing both creation and last-access times.
// An entry larger than a tenth of the byte budget is silently not cached.
// When the insert pushes total size over the budget, least-recently-used
// entries are evicted until the new entry fits or the cache is empty.
func (c *Cache) Put(key string, data []byte) {
	size := int64(len(data))
	if size == 0 {
		return
	}
	if size > c.maxBytes/oversizeDivisor {
		c.logger.Debug("response too large to cache", "key", key, "bytes", size)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Release the bytes of any entry being replaced; lru.Add overwrites
	// without running the eviction callback.
	c.entries.Remove(key)

	stored := make([]byte, len(data))
	copy(stored, data)

	now := c.now()
	if evicted := c.entries.Add(key, &entry{data: stored, size: size, createdAt: now, lastAccess: now}); evicted {
		c.evictions++
	}
	c.bytes += size

	for c.bytes > c.maxBytes {
		if _, _, ok := c.entries.RemoveOldest(); !ok {
			break
		}
		c.evictions++
	}
}

// Clear empties the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Purge()
}

// Stats is a point-in-time snapshot of cache state.
type Stats struct {
	Entries   int
	Bytes     int64
	MaxBytes  int64
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Expired   uint64
}

// HitRate returns the fraction of lookups served from cache.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Stats returns a snapshot of the cache's current state.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Entries:   c.entries.Len(),
		Bytes:     c.bytes,
		MaxBytes:  c.maxBytes,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Expired:   c.expired,
	}
}
