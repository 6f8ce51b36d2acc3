package translate

import "sync"

// keyedCache is a concurrency-safe string map with exclusive per-key
// access. The check-then-compute-then-store sequence for one key runs as
// a critical section, so concurrent workers asking for the same key
// trigger at most one computation; workers on different keys do not
// block each other. Written values are stable: a stored value is never
// overwritten for the lifetime of the cache.
type keyedCache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	mu    sync.Mutex
	set   bool
	value string
}

func newKeyedCache() *keyedCache {
	return &keyedCache{entries: make(map[string]*cacheEntry)}
}

// entry returns the per-key entry, creating it on first use.
func (c *keyedCache) entry(key string) *cacheEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		e = &cacheEntry{}
		c.entries[key] = e
	}
	return e
}

// getOrCompute returns the value stored under key, computing and storing
// it on first use. hit reports whether the value came from the cache.
// When compute fails nothing is stored and the error is returned.
func (c *keyedCache) getOrCompute(key string, compute func() (string, error)) (value string, hit bool, err error) {
	e := c.entry(key)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set {
		return e.value, true, nil
	}
	value, err = compute()
	if err != nil {
		return "", false, err
	}
	e.value = value
	e.set = true
	return value, false, nil
}

// get returns the value stored under key, if any.
func (c *keyedCache) get(key string) (string, bool) {
	e := c.entry(key)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.value, e.set
}

// put stores value under key unless the key already holds a value.
func (c *keyedCache) put(key, value string) {
	e := c.entry(key)
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.set {
		e.value = value
		e.set = true
	}
}

// size returns the number of stored keys. Used by tests and stats.
func (c *keyedCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, e := range c.entries {
		e.mu.Lock()
		if e.set {
			n++
		}
		e.mu.Unlock()
	}
	return n
}
