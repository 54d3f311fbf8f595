package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Auth     AuthConfig     `yaml:"auth"`
	Postgres PostgresConfig `yaml:"postgres"`
	Geocode  GeocodeConfig  `yaml:"geocode"`
	Forecast ForecastConfig `yaml:"forecast"`
	Imagen   ImagenConfig   `yaml:"imagen"`
	Storage  StorageConfig  `yaml:"storage"`
	Weather  WeatherConfig  `yaml:"weather"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// AuthConfig holds token signing settings.
type AuthConfig struct {
	Secret   string        `yaml:"secret"`
	TokenTTL time.Duration `yaml:"tokenTtl"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// GeocodeConfig points at the geocoding capability.
type GeocodeConfig struct {
	BaseURL string `yaml:"baseUrl"`
}

// ForecastConfig points at the daily forecast capability.
type ForecastConfig struct {
	BaseURL string        `yaml:"baseUrl"`
	Timeout time.Duration `yaml:"timeout"`
}

// ImagenConfig carries Vertex AI image generation settings.
type ImagenConfig struct {
	Project  string `yaml:"project"`
	Location string `yaml:"location"`
	Model    string `yaml:"model"`
	Endpoint string `yaml:"endpoint"`
}

// StorageConfig selects where generated and uploaded images live.
type StorageConfig struct {
	Kind          string   `yaml:"kind"` // disk, s3 or memory
	UploadsDir    string   `yaml:"uploadsDir"`
	PublicBaseURL string   `yaml:"publicBaseUrl"`
	S3            S3Config `yaml:"s3"`
}

// S3Config contains S3 compatible object store credentials.
type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
}

// WeatherConfig controls the snapshot cache in front of the repository.
type WeatherConfig struct {
	Cache CacheConfig `yaml:"cache"`
}

// CacheConfig contains connection information for the Valkey cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Addr    string        `yaml:"addr"`
	TTL     time.Duration `yaml:"ttl"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitAndTrim(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = isTruthy(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("AUTH_SECRET"); v != "" {
		cfg.Auth.Secret = v
	}
	if v := os.Getenv("AUTH_TOKEN_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Auth.TokenTTL = parsed
		}
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("GEOCODE_BASE_URL"); v != "" {
		cfg.Geocode.BaseURL = v
	}
	if v := os.Getenv("FORECAST_BASE_URL"); v != "" {
		cfg.Forecast.BaseURL = v
	}
	if v := os.Getenv("FORECAST_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Forecast.Timeout = parsed
		}
	}
	if v := os.Getenv("IMAGEN_PROJECT"); v != "" {
		cfg.Imagen.Project = v
	}
	if v := os.Getenv("IMAGEN_LOCATION"); v != "" {
		cfg.Imagen.Location = v
	}
	if v := os.Getenv("IMAGEN_MODEL"); v != "" {
		cfg.Imagen.Model = v
	}
	if v := os.Getenv("IMAGEN_ENDPOINT"); v != "" {
		cfg.Imagen.Endpoint = v
	}
	if v := os.Getenv("STORAGE_KIND"); v != "" {
		cfg.Storage.Kind = v
	}
	if v := os.Getenv("STORAGE_UPLOADS_DIR"); v != "" {
		cfg.Storage.UploadsDir = v
	}
	if v := os.Getenv("STORAGE_PUBLIC_BASE_URL"); v != "" {
		cfg.Storage.PublicBaseURL = v
	}
	if v := os.Getenv("STORAGE_S3_ENDPOINT"); v != "" {
		cfg.Storage.S3.Endpoint = v
	}
	if v := os.Getenv("STORAGE_S3_ACCESS_KEY"); v != "" {
		cfg.Storage.S3.AccessKey = v
	}
	if v := os.Getenv("STORAGE_S3_SECRET_KEY"); v != "" {
		cfg.Storage.S3.SecretKey = v
	}
	if v := os.Getenv("STORAGE_S3_BUCKET"); v != "" {
		cfg.Storage.S3.Bucket = v
	}
	if v := os.Getenv("STORAGE_S3_REGION"); v != "" {
		cfg.Storage.S3.Region = v
	}
	if v := os.Getenv("WEATHER_CACHE_ENABLED"); v != "" {
		cfg.Weather.Cache.Enabled = isTruthy(v)
	}
	if v := os.Getenv("WEATHER_CACHE_ADDR"); v != "" {
		cfg.Weather.Cache.Addr = v
	}
	if v := os.Getenv("WEATHER_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Weather.Cache.TTL = parsed
		}
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:        ":8080",
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   60 * time.Second,
			AllowedOrigins: []string{"*"},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		Auth: AuthConfig{
			TokenTTL: 24 * time.Hour,
		},
		Postgres: PostgresConfig{
			MaxConns: 4,
			MinConns: 0,
		},
		Geocode: GeocodeConfig{
			BaseURL: "https://geocoding-api.open-meteo.com/v1/search",
		},
		Forecast: ForecastConfig{
			BaseURL: "https://api.open-meteo.com/v1/forecast",
			Timeout: 10 * time.Second,
		},
		Imagen: ImagenConfig{
			Location: "us-central1",
			Model:    "imagen-3.0-generate-002",
		},
		Storage: StorageConfig{
			Kind:          "disk",
			UploadsDir:    "uploads",
			PublicBaseURL: "/uploads",
		},
		Weather: WeatherConfig{
			Cache: CacheConfig{
				Enabled: false,
				TTL:     24 * time.Hour,
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if strings.TrimSpace(c.Auth.Secret) == "" {
		return errors.New("auth.secret cannot be empty")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth.tokenTtl must be positive")
	}
	if c.Geocode.BaseURL == "" {
		return errors.New("geocode.baseUrl cannot be empty")
	}
	if c.Forecast.BaseURL == "" {
		return errors.New("forecast.baseUrl cannot be empty")
	}
	if c.Forecast.Timeout <= 0 {
		return errors.New("forecast.timeout must be positive")
	}
	switch c.Storage.Kind {
	case "disk":
		if strings.TrimSpace(c.Storage.UploadsDir) == "" {
			return errors.New("storage.uploadsDir cannot be empty for disk storage")
		}
	case "s3":
		if strings.TrimSpace(c.Storage.S3.Endpoint) == "" || strings.TrimSpace(c.Storage.S3.Bucket) == "" {
			return errors.New("storage.s3.endpoint and storage.s3.bucket are required for s3 storage")
		}
	case "memory":
	default:
		return fmt.Errorf("storage.kind must be disk, s3 or memory, got %q", c.Storage.Kind)
	}
	if c.Storage.PublicBaseURL == "" {
		return errors.New("storage.publicBaseUrl cannot be empty")
	}
	if c.Weather.Cache.Enabled && strings.TrimSpace(c.Weather.Cache.Addr) == "" {
		return errors.New("weather.cache.addr cannot be empty when the cache is enabled")
	}
	if c.Weather.Cache.TTL < 0 {
		return errors.New("weather.cache.ttl cannot be negative")
	}
	return nil
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func isTruthy(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}
