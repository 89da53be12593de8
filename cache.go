package gallery

import (
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	defaultAssetCacheSize = 512
	defaultAssetCacheTTL  = 12 * time.Hour
)

// cachedAsset is one stored proxy response plus the time it was stored.
type cachedAsset struct {
	Status   int
	Header   http.Header
	Body     []byte
	storedAt time.Time
}

// AssetCache is the in-process edge cache for proxied /image responses,
// keyed by request path plus query string. Entries are bounded by an
// LRU and expire after a TTL; a stale hit is evicted on read.
type AssetCache struct {
	entries *lru.Cache[string, cachedAsset]
	ttl     time.Duration
}

// NewAssetCache creates a cache holding up to size responses for ttl.
func NewAssetCache(size int, ttl time.Duration) (*AssetCache, error) {
	if size <= 0 {
		size = defaultAssetCacheSize
	}
	if ttl <= 0 {
		ttl = defaultAssetCacheTTL
	}
	entries, err := lru.New[string, cachedAsset](size)
	if err != nil {
		return nil, err
	}
	return &AssetCache{entries: entries, ttl: ttl}, nil
}

// Get returns the cached response for key, if present and fresh.
func (c *AssetCache) Get(key string) (cachedAsset, bool) {
	entry, ok := c.entries.Get(key)
	if !ok {
		return cachedAsset{}, false
	}
	if time.Since(entry.storedAt) > c.ttl {
		c.entries.Remove(key)
		return cachedAsset{}, false
	}
	return entry, true
}

// Put stores a response. Only the handler's success path calls this;
// non-200 responses never enter the cache.
func (c *AssetCache) Put(key string, status int, header http.Header, body []byte) {
	c.entries.Add(key, cachedAsset{
		Status:   status,
		Header:   header,
		Body:     body,
		storedAt: time.Now(),
	})
}

// Len reports the number of live entries (stale ones included until
// their next read).
func (c *AssetCache) Len() int {
	return c.entries.Len()
}
