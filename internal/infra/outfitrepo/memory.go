package outfitrepo

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/yanqian/style-ai/internal/domain/outfit"
)

// MemoryLocationRepository keeps locations in memory. Useful for tests and
// local dev; enforces the same (country, state) uniqueness as Postgres.
type MemoryLocationRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]outfit.Location
	byKey  map[string]int64
}

// NewMemoryLocationRepository constructs the repository.
func NewMemoryLocationRepository() *MemoryLocationRepository {
	return &MemoryLocationRepository{
		nextID: 1,
		byID:   make(map[int64]outfit.Location),
		byKey:  make(map[string]int64),
	}
}

func locationKey(country, state string) string {
	return country + "\x00" + state
}

func (r *MemoryLocationRepository) GetByCountryState(_ context.Context, country, state string) (outfit.Location, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byKey[locationKey(country, state)]
	if !ok {
		return outfit.Location{}, false, nil
	}
	return r.byID[id], true, nil
}

func (r *MemoryLocationRepository) GetByID(_ context.Context, id int64) (outfit.Location, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	loc, ok := r.byID[id]
	return loc, ok, nil
}

func (r *MemoryLocationRepository) Create(_ context.Context, loc outfit.Location) (outfit.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := locationKey(loc.Country, loc.State)
	if _, exists := r.byKey[key]; exists {
		return outfit.Location{}, outfit.ErrDuplicateLocation
	}
	loc.ID = r.nextID
	r.nextID++
	r.byID[loc.ID] = loc
	r.byKey[key] = loc.ID
	return loc, nil
}

var _ outfit.LocationRepository = (*MemoryLocationRepository)(nil)

// MemoryWeatherRepository keeps snapshots in memory with (location, date)
// uniqueness.
type MemoryWeatherRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]outfit.WeatherSnapshot
	byKey  map[string]int64
}

// NewMemoryWeatherRepository constructs the repository.
func NewMemoryWeatherRepository() *MemoryWeatherRepository {
	return &MemoryWeatherRepository{
		nextID: 1,
		byID:   make(map[int64]outfit.WeatherSnapshot),
		byKey:  make(map[string]int64),
	}
}

func snapshotKey(locationID int64, date string) string {
	return strconv.FormatInt(locationID, 10) + "\x00" + date
}

func (r *MemoryWeatherRepository) GetByLocationDate(_ context.Context, locationID int64, date string) (outfit.WeatherSnapshot, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byKey[snapshotKey(locationID, date)]
	if !ok {
		return outfit.WeatherSnapshot{}, false, nil
	}
	return r.byID[id], true, nil
}

func (r *MemoryWeatherRepository) GetByID(_ context.Context, id int64) (outfit.WeatherSnapshot, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snap, ok := r.byID[id]
	return snap, ok, nil
}

func (r *MemoryWeatherRepository) Create(_ context.Context, snap outfit.WeatherSnapshot) (outfit.WeatherSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := snapshotKey(snap.LocationID, snap.ForecastDate)
	if _, exists := r.byKey[key]; exists {
		return outfit.WeatherSnapshot{}, outfit.ErrDuplicateSnapshot
	}
	snap.ID = r.nextID
	r.nextID++
	r.byID[snap.ID] = snap
	r.byKey[key] = snap.ID
	return snap, nil
}

var _ outfit.WeatherRepository = (*MemoryWeatherRepository)(nil)

// MemoryRequestRepository keeps outfit requests in memory.
type MemoryRequestRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]outfit.OutfitRequest
}

// NewMemoryRequestRepository constructs the repository.
func NewMemoryRequestRepository() *MemoryRequestRepository {
	return &MemoryRequestRepository{
		nextID: 1,
		byID:   make(map[int64]outfit.OutfitRequest),
	}
}

func (r *MemoryRequestRepository) Create(_ context.Context, req outfit.OutfitRequest) (outfit.OutfitRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req.ID = r.nextID
	r.nextID++
	r.byID[req.ID] = req
	return req, nil
}

func (r *MemoryRequestRepository) UpdateStatus(_ context.Context, id int64, status outfit.RequestStatus, failureReason *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.byID[id]
	if !ok {
		return nil
	}
	req.Status = status
	req.FailureReason = failureReason
	r.byID[id] = req
	return nil
}

// Get returns a request by id. Test helper, not part of the domain contract.
func (r *MemoryRequestRepository) Get(id int64) (outfit.OutfitRequest, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	req, ok := r.byID[id]
	return req, ok
}

// Len reports how many requests exist. Test helper.
func (r *MemoryRequestRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

func (r *MemoryRequestRepository) ListByUser(_ context.Context, userID int64) ([]outfit.OutfitRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var requests []outfit.OutfitRequest
	for _, req := range r.byID {
		if req.UserID == userID {
			requests = append(requests, req)
		}
	}
	sort.Slice(requests, func(i, j int) bool {
		if requests[i].CreatedAt.Equal(requests[j].CreatedAt) {
			return requests[i].ID > requests[j].ID
		}
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})
	return requests, nil
}

var _ outfit.RequestRepository = (*MemoryRequestRepository)(nil)

// MemoryOutfitRepository keeps generated outfits in memory.
type MemoryOutfitRepository struct {
	mu        sync.RWMutex
	nextID    int64
	byRequest map[int64]outfit.GeneratedOutfit
}

// NewMemoryOutfitRepository constructs the repository.
func NewMemoryOutfitRepository() *MemoryOutfitRepository {
	return &MemoryOutfitRepository{
		nextID:    1,
		byRequest: make(map[int64]outfit.GeneratedOutfit),
	}
}

func (r *MemoryOutfitRepository) Create(_ context.Context, generated outfit.GeneratedOutfit) (outfit.GeneratedOutfit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	generated.ID = r.nextID
	r.nextID++
	r.byRequest[generated.RequestID] = generated
	return generated, nil
}

func (r *MemoryOutfitRepository) GetByRequest(_ context.Context, requestID int64) (outfit.GeneratedOutfit, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	generated, ok := r.byRequest[requestID]
	return generated, ok, nil
}

var _ outfit.OutfitRepository = (*MemoryOutfitRepository)(nil)
