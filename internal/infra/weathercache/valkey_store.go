package weathercache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/ai-wardrobe/internal/domain/outfit"
)

// ValkeyStore persists readings in a Valkey-compatible database.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "wardrobe"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

// Get implements outfit.WeatherCache.
func (s *ValkeyStore) Get(ctx context.Context, key string) (outfit.WeatherReading, bool, error) {
	if key == "" {
		return outfit.WeatherReading{}, false, nil
	}
	payload, err := s.client.Do(ctx, s.client.B().Get().Key(s.readingKey(key)).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return outfit.WeatherReading{}, false, nil
		}
		return outfit.WeatherReading{}, false, err
	}
	var reading outfit.WeatherReading
	if err := json.Unmarshal([]byte(payload), &reading); err != nil {
		return outfit.WeatherReading{}, false, err
	}
	return reading, true, nil
}

// Save implements outfit.WeatherCache. Sub-second TTLs round up to one second.
func (s *ValkeyStore) Save(ctx context.Context, key string, reading outfit.WeatherReading, ttl time.Duration) error {
	payload, err := json.Marshal(reading)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.readingKey(key)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) readingKey(city string) string {
	return fmt.Sprintf("%s:weather:%s", s.prefix, city)
}

var _ outfit.WeatherCache = (*ValkeyStore)(nil)
