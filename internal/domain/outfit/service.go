package outfit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/yanqian/ai-wardrobe/internal/domain/wardrobe"
	apperrors "github.com/yanqian/ai-wardrobe/pkg/errors"
	"github.com/yanqian/ai-wardrobe/pkg/metrics"
)

// Config wires runtime behaviour for recommendations.
type Config struct {
	Count    int
	Seed     int64
	CacheTTL time.Duration
}

// Request captures the payload accepted by the recommendation endpoint.
type Request struct {
	City string `json:"city" binding:"required"`
}

// Response is serialized back to API consumers.
type Response struct {
	Outfits []Outfit       `json:"outfits"`
	Weather WeatherReading `json:"weather"`
}

// Service recommends outfits for a city's current weather.
type Service interface {
	Recommend(ctx context.Context, req Request) (Response, error)
}

// Inventory supplies the wardrobe snapshot for a request.
type Inventory interface {
	List(ctx context.Context) ([]wardrobe.Item, error)
}

type service struct {
	cfg       Config
	inventory Inventory
	weather   WeatherClient
	cache     WeatherCache
	metrics   *metrics.Recorder
	logger    *slog.Logger
	newRand   func() RandomSource
}

// NewService wires up the recommendation domain.
func NewService(cfg Config, inventory Inventory, weather WeatherClient, cache WeatherCache, recorder *metrics.Recorder, logger *slog.Logger) Service {
	if cfg.Count <= 0 {
		cfg.Count = DefaultCount
	}
	return &service{
		cfg:       cfg,
		inventory: inventory,
		weather:   weather,
		cache:     cache,
		metrics:   recorder,
		logger:    logger.With("component", "outfit.service"),
		newRand:   randFactory(cfg.Seed),
	}
}

// randFactory returns a per-call source so concurrent requests never share state.
// A non-zero seed makes every request draw the same sequence.
func randFactory(seed int64) func() RandomSource {
	if seed != 0 {
		return func() RandomSource {
			return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
		}
	}
	return func() RandomSource {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
}

func (s *service) Recommend(ctx context.Context, req Request) (Response, error) {
	city := strings.TrimSpace(req.City)
	if city == "" {
		return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, "City is required", nil)
	}

	reading, err := s.lookupWeather(ctx, city)
	if err != nil {
		return Response{}, err
	}

	items, err := s.inventory.List(ctx)
	if err != nil {
		return Response{}, apperrors.Wrap(apperrors.CodeStorage, "failed to load wardrobe", err)
	}

	flags := ClassifyConditions(reading)
	outfits := Compose(items, flags, s.cfg.Count, s.newRand())
	if len(outfits) == 0 {
		s.metrics.InsufficientWardrobe()
		s.logger.Info("wardrobe cannot cover an outfit", "city", reading.City, "items", len(items))
	}
	for _, o := range outfits {
		s.metrics.OutfitComposed(o.Label)
	}
	s.logger.Info("outfits recommended", "city", reading.City, "temp", reading.Temperature, "description", reading.Description, "warm", flags.Warm, "cold", flags.Cold, "rainy", flags.Rainy, "outfits", len(outfits))

	return Response{Outfits: outfits, Weather: reading}, nil
}

func (s *service) lookupWeather(ctx context.Context, city string) (WeatherReading, error) {
	key := CityKey(city)
	if s.cache != nil {
		reading, found, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("weather cache read failed", "city", key, "error", err)
		} else if found {
			s.metrics.WeatherLookup(metrics.WeatherCacheHit)
			return reading, nil
		}
	}

	reading, err := s.weather.Fetch(ctx, city)
	if err != nil {
		msg := fmt.Sprintf("Could not get weather for %s.", city)
		if errors.Is(err, ErrCityNotFound) {
			s.metrics.WeatherLookup(metrics.WeatherNotFound)
			return WeatherReading{}, apperrors.Wrap(apperrors.CodeNotFound, msg, err)
		}
		s.metrics.WeatherLookup(metrics.WeatherError)
		return WeatherReading{}, apperrors.Wrap(apperrors.CodeWeather, msg, err)
	}
	s.metrics.WeatherLookup(metrics.WeatherFetched)

	if s.cache != nil && s.cfg.CacheTTL > 0 {
		if err := s.cache.Save(ctx, key, reading, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("weather cache write failed", "city", key, "error", err)
		}
	}
	return reading, nil
}
