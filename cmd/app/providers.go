package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/ai-wardrobe/internal/domain/outfit"
	"github.com/yanqian/ai-wardrobe/internal/domain/wardrobe"
	"github.com/yanqian/ai-wardrobe/internal/infra/config"
	"github.com/yanqian/ai-wardrobe/internal/infra/imagestore"
	"github.com/yanqian/ai-wardrobe/internal/infra/llm/chatgpt"
	"github.com/yanqian/ai-wardrobe/internal/infra/vision"
	"github.com/yanqian/ai-wardrobe/internal/infra/wardroberepo"
	"github.com/yanqian/ai-wardrobe/internal/infra/weather/openweather"
	"github.com/yanqian/ai-wardrobe/internal/infra/weathercache"
)

func provideWardrobeConfig(cfg *config.Config) wardrobe.Config {
	return wardrobe.Config{
		MaxFileBytes: cfg.HTTP.MaxUploadBytes,
		ColorCount:   cfg.Vision.ColorCount,
	}
}

func provideOutfitConfig(cfg *config.Config) outfit.Config {
	return outfit.Config{
		Count:    cfg.Outfits.Count,
		Seed:     cfg.Outfits.Seed,
		CacheTTL: cfg.Weather.CacheTTL,
	}
}

func provideEmbedder(cfg *config.Config) *vision.GridEmbedder {
	return vision.NewGridEmbedder(cfg.Vision.EmbeddingGrid)
}

func provideColorExtractor() wardrobe.ColorExtractor {
	return vision.KMeansExtractor{}
}

func provideClassifier(cfg *config.Config, logger *slog.Logger) wardrobe.Classifier {
	if strings.TrimSpace(cfg.Vision.APIKey) == "" {
		logger.Info("vision api key not set, classifying by filename keywords")
		return vision.KeywordClassifier{}
	}
	client, err := chatgpt.NewClient(cfg.Vision.APIKey, cfg.Vision.BaseURL)
	if err != nil {
		logger.Error("failed to create vision client, classifying by filename keywords", "error", err)
		return vision.KeywordClassifier{}
	}
	logger.Info("vision classifier enabled", "model", cfg.Vision.Model)
	return vision.NewChatGPTClassifier(client, cfg.Vision.Model, cfg.Vision.Temperature, logger)
}

func provideWeatherClient(cfg *config.Config) outfit.WeatherClient {
	return openweather.NewClient(cfg.Weather.APIKey, cfg.Weather.BaseURL, cfg.Weather.Timeout)
}

func noCleanup() {}

// provideItemRepository returns the pgvector repository when a DSN is set. The
// cleanup closes the pool.
func provideItemRepository(cfg *config.Config, embedder *vision.GridEmbedder, logger *slog.Logger) (wardrobe.Repository, func()) {
	fallback := wardroberepo.NewMemoryRepository()
	dsn := strings.TrimSpace(cfg.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory repository")
		return fallback, noCleanup
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repository", "error", err)
		return fallback, noCleanup
	}
	if cfg.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Postgres.MaxConns
	}
	if cfg.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repository", "error", err)
		return fallback, noCleanup
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repository", "error", err)
		pool.Close()
		return fallback, noCleanup
	}
	repo := wardroberepo.NewPostgresRepository(pool)
	if err := repo.EnsureSchema(ctx, embedder.Dimensions()); err != nil {
		logger.Error("postgres schema setup failed, using memory repository", "error", err)
		pool.Close()
		return fallback, noCleanup
	}
	logger.Info("postgres item repository enabled")
	return repo, pool.Close
}

func provideImageStorage(cfg *config.Config, logger *slog.Logger) wardrobe.ObjectStorage {
	if strings.TrimSpace(cfg.Storage.Endpoint) == "" {
		logger.Info("storage endpoint not set, keeping images in memory")
		return imagestore.NewMemoryStorage()
	}
	store, err := imagestore.NewS3Storage(cfg.Storage.Endpoint, cfg.Storage.AccessKey, cfg.Storage.SecretKey, cfg.Storage.Bucket, cfg.Storage.Region, logger)
	if err != nil {
		logger.Error("failed to initialize object storage, keeping images in memory", "error", err)
		return imagestore.NewMemoryStorage()
	}
	logger.Info("s3 image storage enabled", "bucket", cfg.Storage.Bucket)
	return store
}

func provideWeatherCache(cfg *config.Config, logger *slog.Logger) (outfit.WeatherCache, func()) {
	if !cfg.Cache.Valkey.Enabled {
		return weathercache.NewMemoryStore(), noCleanup
	}
	opt, err := buildValkeyOptions(cfg)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
		return weathercache.NewMemoryStore(), noCleanup
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
		return weathercache.NewMemoryStore(), noCleanup
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory cache", "error", err)
		client.Close()
		return weathercache.NewMemoryStore(), noCleanup
	}
	logger.Info("valkey weather cache enabled", "addr", cfg.Cache.Valkey.Addr)
	return weathercache.NewValkeyStore(client, cfg.Cache.Valkey.Prefix), client.Close
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	if strings.Contains(cfg.Cache.Valkey.Addr, "://") {
		return valkey.ParseURL(cfg.Cache.Valkey.Addr)
	}
	return valkey.ClientOption{InitAddress: []string{cfg.Cache.Valkey.Addr}}, nil
}
