package weathercache

import (
	"context"
	"fmt"
	"sync"

	"github.com/yanqian/style-ai/internal/domain/outfit"
)

// MemoryCache keeps snapshots in a map. Useful for tests and single-node dev.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]outfit.WeatherSnapshot
}

// NewMemoryCache constructs the cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]outfit.WeatherSnapshot)}
}

func (c *MemoryCache) Get(_ context.Context, locationID int64, date string) (outfit.WeatherSnapshot, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snap, ok := c.entries[memoryKey(locationID, date)]
	return snap, ok, nil
}

func (c *MemoryCache) Set(_ context.Context, snap outfit.WeatherSnapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[memoryKey(snap.LocationID, snap.ForecastDate)] = snap
	return nil
}

func memoryKey(locationID int64, date string) string {
	return fmt.Sprintf("%d:%s", locationID, date)
}

var _ outfit.WeatherCache = (*MemoryCache)(nil)
