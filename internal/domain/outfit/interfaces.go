package outfit

import (
	"context"
	"errors"
)

// ErrDuplicateLocation signals a uniqueness violation on (country, state).
var ErrDuplicateLocation = errors.New("location already exists")

// ErrDuplicateSnapshot signals a uniqueness violation on (location, date).
var ErrDuplicateSnapshot = errors.New("weather snapshot already exists")

// ErrGeneratorNotConfigured indicates the external generation capability is
// missing its required project configuration.
var ErrGeneratorNotConfigured = errors.New("image generation is not configured")

// LocationRepository persists resolved locations.
type LocationRepository interface {
	GetByCountryState(ctx context.Context, country, state string) (Location, bool, error)
	GetByID(ctx context.Context, id int64) (Location, bool, error)
	// Create returns ErrDuplicateLocation when another writer inserted the
	// same (country, state) first; callers re-read instead of failing.
	Create(ctx context.Context, loc Location) (Location, error)
}

// WeatherRepository persists weather snapshots.
type WeatherRepository interface {
	GetByLocationDate(ctx context.Context, locationID int64, date string) (WeatherSnapshot, bool, error)
	GetByID(ctx context.Context, id int64) (WeatherSnapshot, bool, error)
	// Create returns ErrDuplicateSnapshot on a (location, date) conflict.
	Create(ctx context.Context, snap WeatherSnapshot) (WeatherSnapshot, error)
}

// RequestRepository persists outfit requests.
type RequestRepository interface {
	Create(ctx context.Context, req OutfitRequest) (OutfitRequest, error)
	UpdateStatus(ctx context.Context, id int64, status RequestStatus, failureReason *string) error
	ListByUser(ctx context.Context, userID int64) ([]OutfitRequest, error)
}

// OutfitRepository persists generated outfits.
type OutfitRepository interface {
	Create(ctx context.Context, outfit GeneratedOutfit) (GeneratedOutfit, error)
	GetByRequest(ctx context.Context, requestID int64) (GeneratedOutfit, bool, error)
}

// WeatherCache fronts the snapshot repository with a faster lookup.
type WeatherCache interface {
	Get(ctx context.Context, locationID int64, date string) (WeatherSnapshot, bool, error)
	Set(ctx context.Context, snap WeatherSnapshot) error
}

// GeoCandidate is one geocoding match.
type GeoCandidate struct {
	Name      string
	Latitude  float64
	Longitude float64
}

// GeocodingClient resolves a free-text query to candidate coordinates.
// An empty result list signals no match.
type GeocodingClient interface {
	Search(ctx context.Context, query string) ([]GeoCandidate, error)
}

// DailyForecast is the single-day summary returned by the forecast capability.
type DailyForecast struct {
	TempMax     float64
	TempMin     float64
	WeatherCode int
	RawPayload  []byte
}

// ForecastClient fetches the daily forecast for one date.
type ForecastClient interface {
	Daily(ctx context.Context, latitude, longitude float64, date string) (DailyForecast, error)
}

// ImageGenerator invokes the external image generation capability.
// Errors wrapping ErrGeneratorNotConfigured mark missing operator config.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}

// StoredImage references a persisted image blob.
type StoredImage struct {
	Key  string
	URL  string
	Size int64
}

// ImageStore persists generated image bytes and returns a public reference.
type ImageStore interface {
	Save(ctx context.Context, key string, data []byte, mimeType string) (StoredImage, error)
}

// ProfileProvider looks up the requesting user's demographic context.
type ProfileProvider interface {
	Profile(ctx context.Context, userID int64) (Profile, bool, error)
}
