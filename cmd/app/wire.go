//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/ai-wardrobe/internal/bootstrap"
	"github.com/yanqian/ai-wardrobe/internal/domain/outfit"
	"github.com/yanqian/ai-wardrobe/internal/domain/wardrobe"
	"github.com/yanqian/ai-wardrobe/internal/infra/config"
	"github.com/yanqian/ai-wardrobe/internal/infra/vision"
	httpiface "github.com/yanqian/ai-wardrobe/internal/interface/http"
	"github.com/yanqian/ai-wardrobe/pkg/logger"
	"github.com/yanqian/ai-wardrobe/pkg/metrics"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		metrics.New,
		provideWardrobeConfig,
		provideOutfitConfig,
		provideEmbedder,
		provideColorExtractor,
		provideClassifier,
		provideWeatherClient,
		provideItemRepository,
		provideImageStorage,
		provideWeatherCache,
		wardrobe.NewService,
		outfit.NewService,
		wire.Bind(new(wardrobe.Embedder), new(*vision.GridEmbedder)),
		wire.Bind(new(outfit.Inventory), new(*wardrobe.Service)),
		wire.Bind(new(httpiface.ItemService), new(*wardrobe.Service)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
