package cache

import (
	"context"
	"github.com/burenotti/go_bodyfat_backend/internal/domain/estimate"
	"sync"
	"time"
)

type memoryItem struct {
	result    estimate.Result
	expiresAt time.Time
}

// MemoryCache keeps results in process memory. A zero ttl keeps them forever.
type MemoryCache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[string]memoryItem
	now   func() time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:   ttl,
		items: make(map[string]memoryItem),
		now:   time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (estimate.Result, bool, error) {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		return estimate.Result{}, false, nil
	}
	if c.expired(item) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return estimate.Result{}, false, nil
	}
	return item.result, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, result estimate.Result) error {
	item := memoryItem{result: result}
	if c.ttl > 0 {
		item.expiresAt = c.now().Add(c.ttl)
	}

	c.mu.Lock()
	c.items[key] = item
	c.mu.Unlock()
	return nil
}

// Purge drops expired entries.
func (c *MemoryCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, item := range c.items {
		if c.expired(item) {
			delete(c.items, key)
		}
	}
}

// PurgeEvery drops expired entries on every tick until the returned stop
// func is called. A non-positive interval starts nothing.
func (c *MemoryCache) PurgeEvery(interval time.Duration) (stop func()) {
	if interval <= 0 {
		return func() {}
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.Purge()
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			wg.Wait()
		})
	}
}

func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *MemoryCache) expired(item memoryItem) bool {
	return !item.expiresAt.IsZero() && !c.now().Before(item.expiresAt)
}
