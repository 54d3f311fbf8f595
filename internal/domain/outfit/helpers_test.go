package outfit

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

type fixture struct {
	svc       *service
	locations *fakeLocationRepo
	weather   *fakeWeatherRepo
	requests  *fakeRequestRepo
	outfits   *fakeOutfitRepo
	geocoder  *stubGeocoder
	forecast  *stubForecast
	generator *stubGenerator
	images    *stubImages
	profiles  *stubProfiles
}

// newFixture wires the service against fakes configured for the happy path.
func newFixture() *fixture {
	f := &fixture{
		locations: newFakeLocationRepo(),
		weather:   newFakeWeatherRepo(),
		requests:  newFakeRequestRepo(),
		outfits:   newFakeOutfitRepo(),
		geocoder: &stubGeocoder{
			searchFn: func(_ context.Context, query string) ([]GeoCandidate, error) {
				return []GeoCandidate{{Name: query, Latitude: 19.07, Longitude: 72.87}}, nil
			},
		},
		forecast: &stubForecast{
			dailyFn: func(context.Context, float64, float64, string) (DailyForecast, error) {
				return DailyForecast{
					TempMax:     30,
					TempMin:     20,
					WeatherCode: 0,
					RawPayload:  []byte(`{"daily":{}}`),
				}, nil
			},
		},
		generator: &stubGenerator{
			generateFn: func(context.Context, string) ([]byte, error) {
				return []byte("jpeg-bytes"), nil
			},
		},
		images:   &stubImages{},
		profiles: &stubProfiles{profile: Profile{Gender: "female", DateOfBirth: "1995-03-10"}, found: true},
	}
	svc := NewService(Config{Model: "imagen-3.0-generate-002"}, f.locations, f.weather, f.requests, f.outfits, nil,
		f.geocoder, f.forecast, f.generator, f.images, f.profiles, newTestLogger()).(*service)
	svc.now = func() time.Time { return testNow }
	f.svc = svc
	return f
}

type fakeLocationRepo struct {
	nextID       int64
	byKey        map[string]Location
	skipGets     int // return not-found for this many lookups to simulate races
	getCalls     int
	createCalled int
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{nextID: 1, byKey: make(map[string]Location)}
}

func (r *fakeLocationRepo) key(country, state string) string {
	return country + "|" + state
}

func (r *fakeLocationRepo) GetByCountryState(_ context.Context, country, state string) (Location, bool, error) {
	r.getCalls++
	if r.skipGets > 0 {
		r.skipGets--
		return Location{}, false, nil
	}
	loc, ok := r.byKey[r.key(country, state)]
	return loc, ok, nil
}

func (r *fakeLocationRepo) GetByID(_ context.Context, id int64) (Location, bool, error) {
	for _, loc := range r.byKey {
		if loc.ID == id {
			return loc, true, nil
		}
	}
	return Location{}, false, nil
}

func (r *fakeLocationRepo) Create(_ context.Context, loc Location) (Location, error) {
	r.createCalled++
	key := r.key(loc.Country, loc.State)
	if _, exists := r.byKey[key]; exists {
		return Location{}, ErrDuplicateLocation
	}
	loc.ID = r.nextID
	r.nextID++
	r.byKey[key] = loc
	return loc, nil
}

type fakeWeatherRepo struct {
	nextID   int64
	byKey    map[string]WeatherSnapshot
	skipGets int
	getCalls int
}

func newFakeWeatherRepo() *fakeWeatherRepo {
	return &fakeWeatherRepo{nextID: 1, byKey: make(map[string]WeatherSnapshot)}
}

func (r *fakeWeatherRepo) key(locationID int64, date string) string {
	return fmt.Sprintf("%d|%s", locationID, date)
}

func (r *fakeWeatherRepo) GetByLocationDate(_ context.Context, locationID int64, date string) (WeatherSnapshot, bool, error) {
	r.getCalls++
	if r.skipGets > 0 {
		r.skipGets--
		return WeatherSnapshot{}, false, nil
	}
	snap, ok := r.byKey[r.key(locationID, date)]
	return snap, ok, nil
}

func (r *fakeWeatherRepo) GetByID(_ context.Context, id int64) (WeatherSnapshot, bool, error) {
	for _, snap := range r.byKey {
		if snap.ID == id {
			return snap, true, nil
		}
	}
	return WeatherSnapshot{}, false, nil
}

func (r *fakeWeatherRepo) Create(_ context.Context, snap WeatherSnapshot) (WeatherSnapshot, error) {
	key := r.key(snap.LocationID, snap.ForecastDate)
	if _, exists := r.byKey[key]; exists {
		return WeatherSnapshot{}, ErrDuplicateSnapshot
	}
	snap.ID = r.nextID
	r.nextID++
	r.byKey[key] = snap
	return snap, nil
}

type fakeRequestRepo struct {
	nextID int64
	byID   map[int64]OutfitRequest
	order  []int64
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{nextID: 1, byID: make(map[int64]OutfitRequest)}
}

func (r *fakeRequestRepo) Create(_ context.Context, req OutfitRequest) (OutfitRequest, error) {
	req.ID = r.nextID
	r.nextID++
	r.byID[req.ID] = req
	r.order = append(r.order, req.ID)
	return req, nil
}

func (r *fakeRequestRepo) UpdateStatus(_ context.Context, id int64, status RequestStatus, failureReason *string) error {
	req, ok := r.byID[id]
	if !ok {
		return nil
	}
	req.Status = status
	req.FailureReason = failureReason
	r.byID[id] = req
	return nil
}

func (r *fakeRequestRepo) ListByUser(_ context.Context, userID int64) ([]OutfitRequest, error) {
	var requests []OutfitRequest
	for i := len(r.order) - 1; i >= 0; i-- {
		req := r.byID[r.order[i]]
		if req.UserID == userID {
			requests = append(requests, req)
		}
	}
	return requests, nil
}

type fakeOutfitRepo struct {
	nextID    int64
	byRequest map[int64]GeneratedOutfit
}

func newFakeOutfitRepo() *fakeOutfitRepo {
	return &fakeOutfitRepo{nextID: 1, byRequest: make(map[int64]GeneratedOutfit)}
}

func (r *fakeOutfitRepo) Create(_ context.Context, generated GeneratedOutfit) (GeneratedOutfit, error) {
	generated.ID = r.nextID
	r.nextID++
	r.byRequest[generated.RequestID] = generated
	return generated, nil
}

func (r *fakeOutfitRepo) GetByRequest(_ context.Context, requestID int64) (GeneratedOutfit, bool, error) {
	generated, ok := r.byRequest[requestID]
	return generated, ok, nil
}

type stubGeocoder struct {
	searchFn func(ctx context.Context, query string) ([]GeoCandidate, error)
	queries  []string
}

func (s *stubGeocoder) Search(ctx context.Context, query string) ([]GeoCandidate, error) {
	s.queries = append(s.queries, query)
	if s.searchFn != nil {
		return s.searchFn(ctx, query)
	}
	return nil, nil
}

type stubForecast struct {
	dailyFn func(ctx context.Context, latitude, longitude float64, date string) (DailyForecast, error)
	calls   int
}

func (s *stubForecast) Daily(ctx context.Context, latitude, longitude float64, date string) (DailyForecast, error) {
	s.calls++
	if s.dailyFn != nil {
		return s.dailyFn(ctx, latitude, longitude, date)
	}
	return DailyForecast{}, nil
}

type stubGenerator struct {
	generateFn func(ctx context.Context, prompt string) ([]byte, error)
	prompts    []string
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	s.prompts = append(s.prompts, prompt)
	if s.generateFn != nil {
		return s.generateFn(ctx, prompt)
	}
	return nil, nil
}

type stubImages struct {
	saved   []StoredImage
	saveErr error
}

func (s *stubImages) Save(_ context.Context, key string, data []byte, _ string) (StoredImage, error) {
	if s.saveErr != nil {
		return StoredImage{}, s.saveErr
	}
	stored := StoredImage{Key: key, URL: "/uploads/" + key, Size: int64(len(data))}
	s.saved = append(s.saved, stored)
	return stored, nil
}

type stubProfiles struct {
	profile Profile
	found   bool
	err     error
}

func (s *stubProfiles) Profile(context.Context, int64) (Profile, bool, error) {
	return s.profile, s.found, s.err
}

type stubCache struct {
	entries  map[string]WeatherSnapshot
	getCalls int
	setCalls int
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string]WeatherSnapshot)}
}

func (c *stubCache) cacheKey(locationID int64, date string) string {
	return fmt.Sprintf("%d|%s", locationID, date)
}

func (c *stubCache) Get(_ context.Context, locationID int64, date string) (WeatherSnapshot, bool, error) {
	c.getCalls++
	snap, ok := c.entries[c.cacheKey(locationID, date)]
	return snap, ok, nil
}

func (c *stubCache) Set(_ context.Context, snap WeatherSnapshot) error {
	c.setCalls++
	c.entries[c.cacheKey(snap.LocationID, snap.ForecastDate)] = snap
	return nil
}
