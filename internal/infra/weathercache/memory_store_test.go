package weathercache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/ai-wardrobe/internal/domain/outfit"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	reading := outfit.WeatherReading{Temperature: 12, Description: "rain", City: "Bergen"}

	_, found, err := store.Get(context.Background(), "bergen")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, store.Save(context.Background(), "bergen", reading, time.Minute))
	got, found, err := store.Get(context.Background(), "bergen")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, reading, got)
}

func TestMemoryStoreExpires(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(context.Background(), "oslo", outfit.WeatherReading{City: "Oslo"}, time.Minute))
	now = now.Add(2 * time.Minute)

	_, found, err := store.Get(context.Background(), "oslo")
	require.NoError(t, err)
	require.False(t, found)
	require.Empty(t, store.entries)
}

func TestMemoryStoreZeroTTLKeeps(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(context.Background(), "rome", outfit.WeatherReading{City: "Rome"}, 0))
	now = now.Add(24 * time.Hour)

	_, found, err := store.Get(context.Background(), "rome")
	require.NoError(t, err)
	require.True(t, found)
}

func TestValkeyStoreKey(t *testing.T) {
	store := NewValkeyStore(nil, "")
	require.Equal(t, "wardrobe:weather:new york", store.readingKey("new york"))
}
