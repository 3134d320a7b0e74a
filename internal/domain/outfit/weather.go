package outfit

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrCityNotFound is returned by a WeatherClient when the city cannot be resolved.
var ErrCityNotFound = errors.New("city not found")

// WeatherReading is a validated current-weather observation for a city.
type WeatherReading struct {
	Temperature float64 `json:"temp"`
	Description string  `json:"description"`
	City        string  `json:"city"`
}

// WeatherClient looks up current weather by city name.
type WeatherClient interface {
	Fetch(ctx context.Context, city string) (WeatherReading, error)
}

// WeatherCache keeps recent readings keyed by normalized city.
type WeatherCache interface {
	Get(ctx context.Context, key string) (WeatherReading, bool, error)
	Save(ctx context.Context, key string, reading WeatherReading, ttl time.Duration) error
}

// CityKey normalizes a city name for cache lookups.
func CityKey(city string) string {
	return strings.Join(strings.Fields(strings.ToLower(city)), " ")
}
