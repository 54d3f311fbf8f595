package weathercache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/style-ai/internal/domain/outfit"
)

// ValkeyCache fronts the weather snapshot repository with a Valkey lookup.
// It is an accelerator only: the repository stays the source of truth, so a
// cache miss or eviction never changes which snapshot answers a key.
type ValkeyCache struct {
	client valkey.Client
	prefix string
	ttl    time.Duration
}

// NewValkeyCache constructs the cache.
func NewValkeyCache(client valkey.Client, prefix string, ttl time.Duration) *ValkeyCache {
	if prefix == "" {
		prefix = "weather"
	}
	return &ValkeyCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *ValkeyCache) Get(ctx context.Context, locationID int64, date string) (outfit.WeatherSnapshot, bool, error) {
	cmd := c.client.B().Get().Key(c.key(locationID, date)).Build()
	payload, err := c.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return outfit.WeatherSnapshot{}, false, nil
		}
		return outfit.WeatherSnapshot{}, false, err
	}
	var entry cacheEntry
	if err := json.Unmarshal([]byte(payload), &entry); err != nil {
		return outfit.WeatherSnapshot{}, false, err
	}
	return entry.toSnapshot(), true, nil
}

func (c *ValkeyCache) Set(ctx context.Context, snap outfit.WeatherSnapshot) error {
	payload, err := json.Marshal(fromSnapshot(snap))
	if err != nil {
		return err
	}
	builder := c.client.B().Set().Key(c.key(snap.LocationID, snap.ForecastDate)).Value(string(payload))
	var cmd valkey.Completed
	if c.ttl > 0 {
		ttl := c.ttl
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return c.client.Do(ctx, cmd).Error()
}

func (c *ValkeyCache) key(locationID int64, date string) string {
	return fmt.Sprintf("%s:%d:%s", c.prefix, locationID, date)
}

// cacheEntry is the serialized snapshot form stored in Valkey.
type cacheEntry struct {
	ID           int64     `json:"id"`
	LocationID   int64     `json:"locationId"`
	ForecastDate string    `json:"forecastDate"`
	TempAvg      float64   `json:"tempAvg"`
	TempMin      float64   `json:"tempMin"`
	TempMax      float64   `json:"tempMax"`
	Humidity     float64   `json:"humidity"`
	Condition    string    `json:"condition"`
	RawPayload   []byte    `json:"rawPayload,omitempty"`
	FetchedAt    time.Time `json:"fetchedAt"`
}

func fromSnapshot(snap outfit.WeatherSnapshot) cacheEntry {
	return cacheEntry{
		ID:           snap.ID,
		LocationID:   snap.LocationID,
		ForecastDate: snap.ForecastDate,
		TempAvg:      snap.TempAvg,
		TempMin:      snap.TempMin,
		TempMax:      snap.TempMax,
		Humidity:     snap.Humidity,
		Condition:    snap.Condition,
		RawPayload:   snap.RawPayload,
		FetchedAt:    snap.FetchedAt,
	}
}

func (e cacheEntry) toSnapshot() outfit.WeatherSnapshot {
	return outfit.WeatherSnapshot{
		ID:           e.ID,
		LocationID:   e.LocationID,
		ForecastDate: e.ForecastDate,
		TempAvg:      e.TempAvg,
		TempMin:      e.TempMin,
		TempMax:      e.TempMax,
		Humidity:     e.Humidity,
		Condition:    e.Condition,
		RawPayload:   e.RawPayload,
		FetchedAt:    e.FetchedAt,
	}
}

var _ outfit.WeatherCache = (*ValkeyCache)(nil)
