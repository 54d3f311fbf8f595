package weathercache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/style-ai/internal/domain/outfit"
)

func TestMemoryCache_RoundTrip(t *testing.T) {
	cache := NewMemoryCache()

	_, ok, err := cache.Get(context.Background(), 7, "2025-06-20")
	require.NoError(t, err)
	require.False(t, ok)

	snap := outfit.WeatherSnapshot{ID: 3, LocationID: 7, ForecastDate: "2025-06-20", TempAvg: 25, Condition: "Clear"}
	require.NoError(t, cache.Set(context.Background(), snap))

	got, ok, err := cache.Get(context.Background(), 7, "2025-06-20")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, snap, got)

	_, ok, err = cache.Get(context.Background(), 7, "2025-06-21")
	require.NoError(t, err)
	require.False(t, ok)
}
