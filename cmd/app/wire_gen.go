// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package main

import (
	"github.com/yanqian/style-ai/internal/bootstrap"
	"github.com/yanqian/style-ai/internal/domain/auth"
	"github.com/yanqian/style-ai/internal/domain/outfit"
	"github.com/yanqian/style-ai/internal/domain/wardrobe"
	"github.com/yanqian/style-ai/internal/infra/config"
	"github.com/yanqian/style-ai/internal/interface/http"
	"github.com/yanqian/style-ai/pkg/logger"
)

// Injectors from wire.go:

func initializeApp() (*bootstrap.App, error) {
	configConfig, err := config.Load()
	if err != nil {
		return nil, err
	}
	slogLogger := logger.New()
	outfitConfig := provideOutfitConfig(configConfig)
	pool := providePostgresPool(configConfig, slogLogger)
	locationRepository := provideLocationRepository(pool)
	weatherRepository := provideWeatherRepository(pool)
	requestRepository := provideRequestRepository(pool)
	outfitRepository := provideOutfitRepository(pool)
	weatherCache := provideWeatherCache(configConfig, slogLogger)
	client := provideGeocodingClient(configConfig)
	openmeteoClient := provideForecastClient(configConfig)
	vertexClient := provideImagenClient(configConfig, slogLogger)
	storage, err := provideImageStorage(configConfig, slogLogger)
	if err != nil {
		return nil, err
	}
	imageStore := provideImageStore(storage)
	repository := provideUserRepository(pool)
	profileProvider := provideProfileProvider(repository)
	service := outfit.NewService(outfitConfig, locationRepository, weatherRepository, requestRepository, outfitRepository, weatherCache, client, openmeteoClient, vertexClient, imageStore, profileProvider, slogLogger)
	authConfig := provideAuthConfig(configConfig)
	authService := auth.NewService(authConfig, repository, slogLogger)
	wardrobeRepository := provideWardrobeRepository(pool)
	wardrobeService := wardrobe.NewService(wardrobeRepository, storage, slogLogger)
	handler := http.NewHandler(service, authService, wardrobeService, slogLogger)
	string2 := provideUploadsDir(configConfig)
	server := http.NewRouter(configConfig, handler, authService, string2)
	app := bootstrap.NewApp(configConfig, slogLogger, server)
	return app, nil
}
