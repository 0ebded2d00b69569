package handlers

import (
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"pouparia/internal/services"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/labstack/echo/v4"
)

// ResponseCache keeps recent read responses per user. Entries expire after the
// TTL; any write by a user drops all of that user's entries.
//
// Each user has a generation that Invalidate bumps. A response is stored only
// if the generation it was computed under is still current, so a read that
// overlaps a write never repopulates the cache with pre-write data.
type ResponseCache struct {
	lru     *expirable.LRU[string, interface{}]
	metrics services.MetricsRecorderInterface

	mu          sync.Mutex
	generations map[string]uint64
}

// NewResponseCache creates a cache holding at most size responses
func NewResponseCache(size int, ttl time.Duration, metrics services.MetricsRecorderInterface) *ResponseCache {
	if size <= 0 {
		size = 1
	}
	return &ResponseCache{
		lru:         expirable.NewLRU[string, interface{}](size, nil, ttl),
		metrics:     metrics,
		generations: map[string]uint64{},
	}
}

// Serve writes the cached response for this request when there is one, otherwise
// it runs compute, caches a successful result and writes it. Errors are returned
// uncached for the caller to render.
func (rc *ResponseCache) Serve(c echo.Context, userID string, compute func() (interface{}, error)) error {
	key := cacheKey(userID, c)

	if body, ok := rc.lru.Get(key); ok {
		rc.count("response_cache.hit")
		return c.JSON(http.StatusOK, body)
	}
	rc.count("response_cache.miss")

	gen := rc.generation(userID)
	body, err := compute()
	if err != nil {
		return err
	}

	rc.storeIfCurrent(userID, gen, key, body)
	return c.JSON(http.StatusOK, body)
}

func (rc *ResponseCache) generation(userID string) uint64 {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.generations[userID]
}

func (rc *ResponseCache) storeIfCurrent(userID string, gen uint64, key string, body interface{}) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if rc.generations[userID] != gen {
		rc.count("response_cache.stale_discarded")
		return
	}
	rc.lru.Add(key, body)
	rc.gauge()
}

// Invalidate drops every cached response of userID and discards any response
// still being computed for them.
func (rc *ResponseCache) Invalidate(userID string) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.generations[userID]++

	prefix := userID + "|"
	removed := 0
	for _, key := range rc.lru.Keys() {
		if strings.HasPrefix(key, prefix) && rc.lru.Remove(key) {
			removed++
		}
	}

	if removed > 0 {
		rc.count("response_cache.invalidated")
	}
	rc.gauge()
}

// Len returns the number of live entries
func (rc *ResponseCache) Len() int {
	return rc.lru.Len()
}

func (rc *ResponseCache) count(name string) {
	if rc.metrics != nil {
		rc.metrics.IncrementCounter(name, nil)
	}
}

func (rc *ResponseCache) gauge() {
	if rc.metrics != nil {
		rc.metrics.RecordGauge("response_cache.entries", float64(rc.lru.Len()), nil)
	}
}

// cacheKey is user id, route and the sorted query string
func cacheKey(userID string, c echo.Context) string {
	query := c.QueryParams()
	names := make([]string, 0, len(query))
	for name := range query {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(userID)
	b.WriteByte('|')
	b.WriteString(c.Request().URL.Path)
	for _, name := range names {
		for _, value := range query[name] {
			b.WriteByte('|')
			b.WriteString(name)
			b.WriteByte('=')
			b.WriteString(value)
		}
	}
	return b.String()
}
