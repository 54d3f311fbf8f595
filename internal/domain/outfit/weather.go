package outfit

import (
	"context"
	"errors"

	apperrors "github.com/yanqian/style-ai/pkg/errors"
)

// DefaultWeatherWarning is surfaced alongside synthesized snapshots.
const DefaultWeatherWarning = "Using default weather as weather API is facing issues"

const (
	defaultTempAvg  = 25.0
	defaultTempMin  = 22.0
	defaultTempMax  = 28.0
	defaultHumidity = 50.0
)

// resolveWeather returns the memoized snapshot for (location, date). On miss
// it fetches the daily forecast; any upstream failure degrades to a default
// snapshot instead of failing the caller. Snapshots are sticky: once stored
// (defaulted or not) the same row answers every later request for the key.
func (s *service) resolveWeather(ctx context.Context, loc Location, date string) (WeatherResolution, error) {
	if s.cache != nil {
		if snap, ok, err := s.cache.Get(ctx, loc.ID, date); err == nil && ok {
			return WeatherResolution{Snapshot: snap, UsingDefaults: snap.IsDefaulted()}, nil
		} else if err != nil {
			s.logger.Warn("weather cache read failed", "error", err)
		}
	}

	existing, found, err := s.weather.GetByLocationDate(ctx, loc.ID, date)
	if err != nil {
		return WeatherResolution{}, apperrors.Wrap("storage_error", "failed to look up weather snapshot", err)
	}
	if found {
		s.cacheSnapshot(ctx, existing)
		return WeatherResolution{Snapshot: existing, UsingDefaults: existing.IsDefaulted()}, nil
	}

	snapshot := s.fetchSnapshot(ctx, loc, date)

	created, err := s.weather.Create(ctx, snapshot)
	if errors.Is(err, ErrDuplicateSnapshot) {
		winner, found, rerr := s.weather.GetByLocationDate(ctx, loc.ID, date)
		if rerr != nil || !found {
			return WeatherResolution{}, apperrors.Wrap("storage_error", "failed to re-read weather snapshot after conflict", rerr)
		}
		s.cacheSnapshot(ctx, winner)
		return WeatherResolution{Snapshot: winner, UsingDefaults: winner.IsDefaulted()}, nil
	}
	if err != nil {
		return WeatherResolution{}, apperrors.Wrap("storage_error", "failed to persist weather snapshot", err)
	}

	s.cacheSnapshot(ctx, created)
	return WeatherResolution{Snapshot: created, UsingDefaults: created.IsDefaulted()}, nil
}

// fetchSnapshot calls the forecast capability, degrading to defaults on any
// failure. It never returns an error.
func (s *service) fetchSnapshot(ctx context.Context, loc Location, date string) WeatherSnapshot {
	daily, err := s.forecast.Daily(ctx, loc.Latitude, loc.Longitude, date)
	if err != nil {
		s.logger.Warn("forecast fetch failed, using default snapshot", "location_id", loc.ID, "date", date, "error", err)
		return WeatherSnapshot{
			LocationID:   loc.ID,
			ForecastDate: date,
			TempAvg:      defaultTempAvg,
			TempMin:      defaultTempMin,
			TempMax:      defaultTempMax,
			Humidity:     defaultHumidity,
			Condition:    "Clear",
			FetchedAt:    s.now(),
		}
	}

	return WeatherSnapshot{
		LocationID:   loc.ID,
		ForecastDate: date,
		TempAvg:      (daily.TempMax + daily.TempMin) / 2,
		TempMin:      daily.TempMin,
		TempMax:      daily.TempMax,
		Humidity:     defaultHumidity, // daily endpoint does not expose humidity
		Condition:    conditionForCode(daily.WeatherCode),
		RawPayload:   daily.RawPayload,
		FetchedAt:    s.now(),
	}
}

func (s *service) cacheSnapshot(ctx context.Context, snap WeatherSnapshot) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, snap); err != nil {
		s.logger.Warn("weather cache write failed", "error", err)
	}
}

// conditionForCode maps WMO weather codes to a coarse condition category.
func conditionForCode(code int) string {
	switch {
	case code >= 1 && code <= 3:
		return "Cloudy"
	case code >= 45 && code <= 48:
		return "Fog"
	case code >= 51 && code <= 67:
		return "Rain"
	case code >= 71 && code <= 77:
		return "Snow"
	case code >= 80 && code <= 82:
		return "Showers"
	case code >= 95 && code <= 99:
		return "Thunderstorm"
	default:
		return "Clear"
	}
}
