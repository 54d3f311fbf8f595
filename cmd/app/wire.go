//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/style-ai/internal/bootstrap"
	"github.com/yanqian/style-ai/internal/domain/auth"
	"github.com/yanqian/style-ai/internal/domain/outfit"
	"github.com/yanqian/style-ai/internal/domain/wardrobe"
	"github.com/yanqian/style-ai/internal/infra/config"
	forecastapi "github.com/yanqian/style-ai/internal/infra/forecast/openmeteo"
	geoapi "github.com/yanqian/style-ai/internal/infra/geo/openmeteo"
	"github.com/yanqian/style-ai/internal/infra/imagen/vertex"
	httpiface "github.com/yanqian/style-ai/internal/interface/http"
	"github.com/yanqian/style-ai/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideAuthConfig,
		provideOutfitConfig,
		providePostgresPool,
		provideUserRepository,
		provideProfileProvider,
		provideLocationRepository,
		provideWeatherRepository,
		provideRequestRepository,
		provideOutfitRepository,
		provideWardrobeRepository,
		provideWeatherCache,
		provideGeocodingClient,
		provideForecastClient,
		provideImagenClient,
		provideImageStorage,
		provideImageStore,
		provideUploadsDir,
		auth.NewService,
		outfit.NewService,
		wardrobe.NewService,
		wire.Bind(new(outfit.GeocodingClient), new(*geoapi.Client)),
		wire.Bind(new(outfit.ForecastClient), new(*forecastapi.Client)),
		wire.Bind(new(outfit.ImageGenerator), new(*vertex.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
