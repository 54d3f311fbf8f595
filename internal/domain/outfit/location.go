package outfit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/yanqian/style-ai/pkg/errors"
)

// resolveLocation returns the memoized location for (country, state),
// geocoding and persisting it on first sight. Query fallbacks:
// "{state} {country}" -> "{state}" -> "{country}".
func (s *service) resolveLocation(ctx context.Context, country, state string) (Location, error) {
	existing, found, err := s.locations.GetByCountryState(ctx, country, state)
	if err != nil {
		return Location{}, apperrors.Wrap("storage_error", "failed to look up location", err)
	}
	if found {
		return existing, nil
	}

	primary := strings.TrimSpace(state + " " + country)
	for _, query := range candidateQueries(country, state) {
		matches, err := s.geocoder.Search(ctx, query)
		if err != nil {
			return Location{}, apperrors.Wrap("geocode_error", "geocoding lookup failed", err)
		}
		if len(matches) == 0 {
			continue
		}

		created, err := s.locations.Create(ctx, Location{
			Country:   country,
			State:     state,
			Latitude:  matches[0].Latitude,
			Longitude: matches[0].Longitude,
		})
		if errors.Is(err, ErrDuplicateLocation) {
			// Another request inserted the same key first; its row wins.
			winner, found, rerr := s.locations.GetByCountryState(ctx, country, state)
			if rerr != nil || !found {
				return Location{}, apperrors.Wrap("storage_error", "failed to re-read location after conflict", rerr)
			}
			return winner, nil
		}
		if err != nil {
			return Location{}, apperrors.Wrap("storage_error", "failed to persist location", err)
		}
		s.logger.Info("location resolved", "country", country, "state", state, "query", query)
		return created, nil
	}

	return Location{}, apperrors.Wrap("location_not_found", fmt.Sprintf("could not geolocate the provided country/state: %s", primary), nil)
}

func candidateQueries(country, state string) []string {
	country = strings.TrimSpace(country)
	state = strings.TrimSpace(state)

	queries := make([]string, 0, 3)
	if state != "" && country != "" {
		queries = append(queries, state+" "+country)
	}
	if state != "" {
		queries = append(queries, state)
	}
	if country != "" {
		queries = append(queries, country)
	}
	return queries
}
