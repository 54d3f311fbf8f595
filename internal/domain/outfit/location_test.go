package outfit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/style-ai/pkg/errors"
)

func TestResolveLocation_ReusesExistingRow(t *testing.T) {
	f := newFixture()
	seeded, err := f.locations.Create(context.Background(), Location{Country: "India", State: "Maharashtra", Latitude: 19.07, Longitude: 72.87})
	require.NoError(t, err)

	loc, err := f.svc.resolveLocation(context.Background(), "India", "Maharashtra")
	require.NoError(t, err)
	require.Equal(t, seeded.ID, loc.ID)
	require.Empty(t, f.geocoder.queries)
}

func TestResolveLocation_GeocodesAndPersists(t *testing.T) {
	f := newFixture()

	loc, err := f.svc.resolveLocation(context.Background(), "India", "Maharashtra")
	require.NoError(t, err)
	require.Equal(t, "India", loc.Country)
	require.Equal(t, "Maharashtra", loc.State)
	require.InDelta(t, 19.07, loc.Latitude, 0.001)
	require.Equal(t, []string{"Maharashtra India"}, f.geocoder.queries)
	require.NotZero(t, loc.ID)
}

func TestResolveLocation_FallsBackThroughQueries(t *testing.T) {
	f := newFixture()
	f.geocoder.searchFn = func(_ context.Context, query string) ([]GeoCandidate, error) {
		if query != "India" {
			return nil, nil
		}
		return []GeoCandidate{{Name: "India", Latitude: 20.59, Longitude: 78.96}}, nil
	}

	loc, err := f.svc.resolveLocation(context.Background(), "India", "Nowhereland")
	require.NoError(t, err)
	require.Equal(t, []string{"Nowhereland India", "Nowhereland", "India"}, f.geocoder.queries)
	require.InDelta(t, 20.59, loc.Latitude, 0.001)
	// the row keeps the requested key, not the matched query
	require.Equal(t, "Nowhereland", loc.State)
}

func TestResolveLocation_NotFound(t *testing.T) {
	f := newFixture()
	f.geocoder.searchFn = func(context.Context, string) ([]GeoCandidate, error) {
		return nil, nil
	}

	_, err := f.svc.resolveLocation(context.Background(), "Atlantis", "Poseidonia")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "location_not_found"))
	require.Contains(t, err.Error(), "could not geolocate the provided country/state: Poseidonia Atlantis")
	require.Zero(t, f.locations.createCalled)
}

func TestResolveLocation_ConflictReReads(t *testing.T) {
	f := newFixture()
	// Seed the winner but hide it from the first lookup so resolution races
	// into Create and hits the uniqueness sentinel.
	winner, err := f.locations.Create(context.Background(), Location{Country: "India", State: "Maharashtra", Latitude: 19.07, Longitude: 72.87})
	require.NoError(t, err)
	f.locations.skipGets = 1

	loc, err := f.svc.resolveLocation(context.Background(), "India", "Maharashtra")
	require.NoError(t, err)
	require.Equal(t, winner.ID, loc.ID)
	require.Equal(t, 2, f.locations.createCalled)
}
