package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// reportEntry represents a stored payload with expiration
type reportEntry struct {
	payload   []byte
	expiresAt time.Time
}

// InMemoryReportCache implements ReportCache using an in-memory map. This is
// suitable for single-instance deployments and testing. Payloads are stored
// JSON-encoded so Get behaves exactly like the Redis implementation.
type InMemoryReportCache struct {
	mu        sync.RWMutex
	entries   map[string]reportEntry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryReportCache creates a new in-memory report cache. It starts a
// background goroutine to clean up expired entries.
func NewInMemoryReportCache() *InMemoryReportCache {
	cache := &InMemoryReportCache{
		entries:  make(map[string]reportEntry),
		stopChan: make(chan struct{}),
	}

	cache.wg.Add(1)
	go cache.cleanupLoop()

	return cache
}

// Get loads a cached payload into dest. The boolean reports a cache hit.
func (c *InMemoryReportCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	c.mu.RLock()
	e, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists || time.Now().After(e.expiresAt) {
		return false, nil
	}
	if err := json.Unmarshal(e.payload, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores a payload under the key with a TTL.
func (c *InMemoryReportCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.entries[key] = reportEntry{
		payload:   raw,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
	return nil
}

// Close stops the cleanup goroutine and releases resources.
// Safe to call multiple times.
func (c *InMemoryReportCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired entries
func (c *InMemoryReportCache) cleanupLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

// cleanup removes expired entries
func (c *InMemoryReportCache) cleanup() {
	now := time.Now()
	c.mu.Lock()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}
