package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/style-ai/internal/domain/auth"
	"github.com/yanqian/style-ai/internal/domain/outfit"
	"github.com/yanqian/style-ai/internal/domain/wardrobe"
	"github.com/yanqian/style-ai/internal/infra/config"
	forecastapi "github.com/yanqian/style-ai/internal/infra/forecast/openmeteo"
	geoapi "github.com/yanqian/style-ai/internal/infra/geo/openmeteo"
	"github.com/yanqian/style-ai/internal/infra/imagen/vertex"
	"github.com/yanqian/style-ai/internal/infra/imagestore"
	"github.com/yanqian/style-ai/internal/infra/outfitrepo"
	"github.com/yanqian/style-ai/internal/infra/userrepo"
	"github.com/yanqian/style-ai/internal/infra/wardroberepo"
	"github.com/yanqian/style-ai/internal/infra/weathercache"
)

func provideAuthConfig(cfg *config.Config) auth.Config {
	return auth.Config{
		Secret:   cfg.Auth.Secret,
		TokenTTL: cfg.Auth.TokenTTL,
	}
}

func provideOutfitConfig(cfg *config.Config) outfit.Config {
	return outfit.Config{Model: cfg.Imagen.Model}
}

// providePostgresPool returns nil when no DSN is configured or the database is
// unreachable; repository providers fall back to memory implementations.
func providePostgresPool(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	dsn := strings.TrimSpace(cfg.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory repositories")
		return nil
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repositories", "error", err)
		return nil
	}
	if cfg.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Postgres.MaxConns
	}
	if cfg.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repositories", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repositories", "error", err)
		pool.Close()
		return nil
	}
	logger.Info("postgres repositories enabled")
	return pool
}

func provideUserRepository(pool *pgxpool.Pool) auth.Repository {
	if pool == nil {
		return userrepo.NewMemoryRepository()
	}
	return userrepo.NewPostgresRepository(pool)
}

// provideProfileProvider reuses the user repository; both implementations
// expose the demographic lookup.
func provideProfileProvider(repo auth.Repository) outfit.ProfileProvider {
	return repo.(outfit.ProfileProvider)
}

func provideLocationRepository(pool *pgxpool.Pool) outfit.LocationRepository {
	if pool == nil {
		return outfitrepo.NewMemoryLocationRepository()
	}
	return outfitrepo.NewPostgresLocationRepository(pool)
}

func provideWeatherRepository(pool *pgxpool.Pool) outfit.WeatherRepository {
	if pool == nil {
		return outfitrepo.NewMemoryWeatherRepository()
	}
	return outfitrepo.NewPostgresWeatherRepository(pool)
}

func provideRequestRepository(pool *pgxpool.Pool) outfit.RequestRepository {
	if pool == nil {
		return outfitrepo.NewMemoryRequestRepository()
	}
	return outfitrepo.NewPostgresRequestRepository(pool)
}

func provideOutfitRepository(pool *pgxpool.Pool) outfit.OutfitRepository {
	if pool == nil {
		return outfitrepo.NewMemoryOutfitRepository()
	}
	return outfitrepo.NewPostgresOutfitRepository(pool)
}

func provideWardrobeRepository(pool *pgxpool.Pool) wardrobe.Repository {
	if pool == nil {
		return wardroberepo.NewMemoryRepository()
	}
	return wardroberepo.NewPostgresRepository(pool)
}

func provideWeatherCache(cfg *config.Config, logger *slog.Logger) outfit.WeatherCache {
	if !cfg.Weather.Cache.Enabled {
		return weathercache.NewMemoryCache()
	}
	opt, err := buildValkeyOptions(cfg.Weather.Cache.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
		return weathercache.NewMemoryCache()
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
		return weathercache.NewMemoryCache()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory cache", "error", err)
		return weathercache.NewMemoryCache()
	}
	logger.Info("weather valkey cache enabled", "addr", cfg.Weather.Cache.Addr)
	return weathercache.NewValkeyCache(client, "weather", cfg.Weather.Cache.TTL)
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func provideGeocodingClient(cfg *config.Config) *geoapi.Client {
	return geoapi.NewClient(cfg.Geocode.BaseURL)
}

func provideForecastClient(cfg *config.Config) *forecastapi.Client {
	return forecastapi.NewClient(cfg.Forecast.BaseURL, cfg.Forecast.Timeout)
}

func provideImagenClient(cfg *config.Config, logger *slog.Logger) *vertex.Client {
	return vertex.NewClient(cfg.Imagen.Project, cfg.Imagen.Location, cfg.Imagen.Model, cfg.Imagen.Endpoint, nil, logger)
}

// provideImageStorage selects the blob store shared by generated outfits and
// wardrobe uploads.
func provideImageStorage(cfg *config.Config, logger *slog.Logger) (wardrobe.Storage, error) {
	switch cfg.Storage.Kind {
	case "s3":
		return imagestore.NewS3Store(
			cfg.Storage.S3.Endpoint,
			cfg.Storage.S3.AccessKey,
			cfg.Storage.S3.SecretKey,
			cfg.Storage.S3.Bucket,
			cfg.Storage.S3.Region,
			cfg.Storage.PublicBaseURL,
			logger,
		)
	case "memory":
		return imagestore.NewMemoryStore(cfg.Storage.PublicBaseURL), nil
	default:
		return imagestore.NewDiskStore(cfg.Storage.UploadsDir, cfg.Storage.PublicBaseURL)
	}
}

func provideImageStore(storage wardrobe.Storage) outfit.ImageStore {
	return storage
}

// provideUploadsDir tells the router which directory to serve statically.
// Empty disables static serving (s3/memory storage).
func provideUploadsDir(cfg *config.Config) string {
	if cfg.Storage.Kind == "disk" {
		return cfg.Storage.UploadsDir
	}
	return ""
}
