package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// CachingClient wraps a Client with a per-id TTL cache. Catalog definitions
// and product links are stable within an editing session, so repeated
// exports of the same quote shouldn't refetch them. Misses are fetched in
// one batch through singleflight to prevent stampedes when several exports
// run concurrently.
type CachingClient struct {
	inner Client
	ttl   time.Duration

	mu      sync.RWMutex
	defs    map[string]cachedDef
	links   map[string]cachedStr
	parents map[string]cachedStr

	sf singleflight.Group
}

type cachedDef struct {
	def     Definition
	ok      bool
	expires time.Time
}

type cachedStr struct {
	val     string
	ok      bool
	expires time.Time
}

// NewCachingClient wraps inner with a TTL cache.
func NewCachingClient(inner Client, ttl time.Duration) *CachingClient {
	return &CachingClient{
		inner:   inner,
		ttl:     ttl,
		defs:    make(map[string]cachedDef),
		links:   make(map[string]cachedStr),
		parents: make(map[string]cachedStr),
	}
}

// Invalidate drops all cached entries. Useful for tests and for forcing a
// refetch after a catalog publish.
func (c *CachingClient) Invalidate() {
	c.mu.Lock()
	c.defs = make(map[string]cachedDef)
	c.links = make(map[string]cachedStr)
	c.parents = make(map[string]cachedStr)
	c.mu.Unlock()
}

func (c *CachingClient) LookupConfigurations(ctx context.Context, ids []string) (map[string]Definition, error) {
	result := make(map[string]Definition, len(ids))
	var misses []string

	now := time.Now()
	c.mu.RLock()
	for _, id := range ids {
		if entry, hit := c.defs[id]; hit && now.Before(entry.expires) {
			if entry.ok {
				result[id] = entry.def
			}
			continue
		}
		misses = append(misses, id)
	}
	c.mu.RUnlock()

	if len(misses) == 0 {
		return result, nil
	}

	fetched, err, _ := c.sf.Do("defs|"+batchKey(misses), func() (any, error) {
		return c.inner.LookupConfigurations(ctx, misses)
	})
	if err != nil {
		return nil, err
	}
	defs := fetched.(map[string]Definition)

	expires := time.Now().Add(c.ttl)
	c.mu.Lock()
	for _, id := range misses {
		def, ok := defs[id]
		// Negative entries are cached too: a missing definition stays
		// missing for the TTL rather than being retried per export.
		c.defs[id] = cachedDef{def: def, ok: ok, expires: expires}
		if ok {
			result[id] = def
		}
	}
	c.mu.Unlock()

	return result, nil
}

func (c *CachingClient) LookupProductLinks(ctx context.Context, ids []string) (map[string]string, error) {
	return c.lookupStrings(ctx, ids, "links", func(ctx context.Context, misses []string) (map[string]string, error) {
		return c.inner.LookupProductLinks(ctx, misses)
	}, func() map[string]cachedStr { return c.links })
}

func (c *CachingClient) LookupParents(ctx context.Context, ids []string) (map[string]string, error) {
	return c.lookupStrings(ctx, ids, "parents", func(ctx context.Context, misses []string) (map[string]string, error) {
		return c.inner.LookupParents(ctx, misses)
	}, func() map[string]cachedStr { return c.parents })
}

func (c *CachingClient) lookupStrings(
	ctx context.Context,
	ids []string,
	kind string,
	fetch func(ctx context.Context, misses []string) (map[string]string, error),
	table func() map[string]cachedStr,
) (map[string]string, error) {
	result := make(map[string]string, len(ids))
	var misses []string

	now := time.Now()
	c.mu.RLock()
	for _, id := range ids {
		if entry, hit := table()[id]; hit && now.Before(entry.expires) {
			if entry.ok {
				result[id] = entry.val
			}
			continue
		}
		misses = append(misses, id)
	}
	c.mu.RUnlock()

	if len(misses) == 0 {
		return result, nil
	}

	fetched, err, _ := c.sf.Do(kind+"|"+batchKey(misses), func() (any, error) {
		return fetch(ctx, misses)
	})
	if err != nil {
		return nil, err
	}
	values := fetched.(map[string]string)

	expires := time.Now().Add(c.ttl)
	c.mu.Lock()
	for _, id := range misses {
		val, ok := values[id]
		table()[id] = cachedStr{val: val, ok: ok, expires: expires}
		if ok {
			result[id] = val
		}
	}
	c.mu.Unlock()

	return result, nil
}

func batchKey(ids []string) string {
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}
