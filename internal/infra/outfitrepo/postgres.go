package outfitrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/style-ai/internal/domain/outfit"
)

const dateLayout = "2006-01-02"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// PostgresLocationRepository persists resolved locations.
type PostgresLocationRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresLocationRepository constructs the repository.
func NewPostgresLocationRepository(pool *pgxpool.Pool) *PostgresLocationRepository {
	return &PostgresLocationRepository{pool: pool}
}

func (r *PostgresLocationRepository) GetByCountryState(ctx context.Context, country, state string) (outfit.Location, bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, country, state, latitude, longitude
		FROM locations
		WHERE country = $1 AND state = $2
		LIMIT 1
	`, country, state)
	return scanLocation(row)
}

func (r *PostgresLocationRepository) GetByID(ctx context.Context, id int64) (outfit.Location, bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, country, state, latitude, longitude
		FROM locations
		WHERE id = $1
		LIMIT 1
	`, id)
	return scanLocation(row)
}

// Create inserts a location, translating the unique constraint into
// outfit.ErrDuplicateLocation so resolvers can re-read.
func (r *PostgresLocationRepository) Create(ctx context.Context, loc outfit.Location) (outfit.Location, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO locations (country, state, latitude, longitude)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, loc.Country, loc.State, loc.Latitude, loc.Longitude)
	if err := row.Scan(&loc.ID); err != nil {
		if isUniqueViolation(err) {
			return outfit.Location{}, outfit.ErrDuplicateLocation
		}
		return outfit.Location{}, err
	}
	return loc, nil
}

func scanLocation(row pgx.Row) (outfit.Location, bool, error) {
	var loc outfit.Location
	if err := row.Scan(&loc.ID, &loc.Country, &loc.State, &loc.Latitude, &loc.Longitude); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return outfit.Location{}, false, nil
		}
		return outfit.Location{}, false, err
	}
	return loc, true, nil
}

var _ outfit.LocationRepository = (*PostgresLocationRepository)(nil)

// PostgresWeatherRepository persists weather snapshots.
type PostgresWeatherRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresWeatherRepository constructs the repository.
func NewPostgresWeatherRepository(pool *pgxpool.Pool) *PostgresWeatherRepository {
	return &PostgresWeatherRepository{pool: pool}
}

func (r *PostgresWeatherRepository) GetByLocationDate(ctx context.Context, locationID int64, date string) (outfit.WeatherSnapshot, bool, error) {
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return outfit.WeatherSnapshot{}, false, err
	}
	row := r.pool.QueryRow(ctx, `
		SELECT id, location_id, forecast_date, temperature_avg, temperature_min, temperature_max,
		       humidity, weather_condition, raw_response, fetched_at
		FROM weather_snapshots
		WHERE location_id = $1 AND forecast_date = $2
		LIMIT 1
	`, locationID, parsed)
	return scanSnapshot(row)
}

func (r *PostgresWeatherRepository) GetByID(ctx context.Context, id int64) (outfit.WeatherSnapshot, bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, location_id, forecast_date, temperature_avg, temperature_min, temperature_max,
		       humidity, weather_condition, raw_response, fetched_at
		FROM weather_snapshots
		WHERE id = $1
		LIMIT 1
	`, id)
	return scanSnapshot(row)
}

// Create inserts a snapshot, translating the (location, date) unique
// constraint into outfit.ErrDuplicateSnapshot.
func (r *PostgresWeatherRepository) Create(ctx context.Context, snap outfit.WeatherSnapshot) (outfit.WeatherSnapshot, error) {
	parsed, err := time.Parse(dateLayout, snap.ForecastDate)
	if err != nil {
		return outfit.WeatherSnapshot{}, err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO weather_snapshots (location_id, forecast_date, temperature_avg, temperature_min,
		       temperature_max, humidity, weather_condition, raw_response, fetched_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, snap.LocationID, parsed, snap.TempAvg, snap.TempMin, snap.TempMax, snap.Humidity, snap.Condition, snap.RawPayload, snap.FetchedAt)
	if err := row.Scan(&snap.ID); err != nil {
		if isUniqueViolation(err) {
			return outfit.WeatherSnapshot{}, outfit.ErrDuplicateSnapshot
		}
		return outfit.WeatherSnapshot{}, err
	}
	return snap, nil
}

func scanSnapshot(row pgx.Row) (outfit.WeatherSnapshot, bool, error) {
	var snap outfit.WeatherSnapshot
	var forecastDate time.Time
	var raw []byte
	if err := row.Scan(&snap.ID, &snap.LocationID, &forecastDate, &snap.TempAvg, &snap.TempMin, &snap.TempMax,
		&snap.Humidity, &snap.Condition, &raw, &snap.FetchedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return outfit.WeatherSnapshot{}, false, nil
		}
		return outfit.WeatherSnapshot{}, false, err
	}
	snap.ForecastDate = forecastDate.Format(dateLayout)
	snap.RawPayload = raw
	snap.FetchedAt = snap.FetchedAt.UTC()
	return snap, true, nil
}

var _ outfit.WeatherRepository = (*PostgresWeatherRepository)(nil)

// PostgresRequestRepository persists outfit requests.
type PostgresRequestRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRequestRepository constructs the repository.
func NewPostgresRequestRepository(pool *pgxpool.Pool) *PostgresRequestRepository {
	return &PostgresRequestRepository{pool: pool}
}

func (r *PostgresRequestRepository) Create(ctx context.Context, req outfit.OutfitRequest) (outfit.OutfitRequest, error) {
	parsed, err := time.Parse(dateLayout, req.TargetDate)
	if err != nil {
		return outfit.OutfitRequest{}, err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO outfit_requests (user_id, location_id, weather_id, occasion, target_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, req.UserID, req.LocationID, req.WeatherID, req.Occasion, parsed, req.Status, req.CreatedAt)
	if err := row.Scan(&req.ID); err != nil {
		return outfit.OutfitRequest{}, err
	}
	return req, nil
}

func (r *PostgresRequestRepository) UpdateStatus(ctx context.Context, id int64, status outfit.RequestStatus, failureReason *string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE outfit_requests
		SET status = $1, failure_reason = $2
		WHERE id = $3
	`, status, failureReason, id)
	return err
}

// ListByUser returns the user's requests ordered most recent first.
func (r *PostgresRequestRepository) ListByUser(ctx context.Context, userID int64) ([]outfit.OutfitRequest, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, location_id, weather_id, occasion, target_date, status, failure_reason, created_at
		FROM outfit_requests
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []outfit.OutfitRequest
	for rows.Next() {
		var req outfit.OutfitRequest
		var targetDate time.Time
		if err := rows.Scan(&req.ID, &req.UserID, &req.LocationID, &req.WeatherID, &req.Occasion, &targetDate, &req.Status, &req.FailureReason, &req.CreatedAt); err != nil {
			return nil, err
		}
		req.TargetDate = targetDate.Format(dateLayout)
		req.CreatedAt = req.CreatedAt.UTC()
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

var _ outfit.RequestRepository = (*PostgresRequestRepository)(nil)

// PostgresOutfitRepository persists generated outfits.
type PostgresOutfitRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresOutfitRepository constructs the repository.
func NewPostgresOutfitRepository(pool *pgxpool.Pool) *PostgresOutfitRepository {
	return &PostgresOutfitRepository{pool: pool}
}

func (r *PostgresOutfitRepository) Create(ctx context.Context, generated outfit.GeneratedOutfit) (outfit.GeneratedOutfit, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO generated_outfits (request_id, top_description, bottom_description, image_url, model_used, prompt_used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, generated.RequestID, generated.TopDescription, generated.BottomDescription, generated.ImageURL, generated.ModelUsed, generated.PromptUsed, generated.CreatedAt)
	if err := row.Scan(&generated.ID); err != nil {
		return outfit.GeneratedOutfit{}, err
	}
	return generated, nil
}

func (r *PostgresOutfitRepository) GetByRequest(ctx context.Context, requestID int64) (outfit.GeneratedOutfit, bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, request_id, top_description, bottom_description, image_url, model_used, prompt_used, created_at
		FROM generated_outfits
		WHERE request_id = $1
		LIMIT 1
	`, requestID)
	var generated outfit.GeneratedOutfit
	if err := row.Scan(&generated.ID, &generated.RequestID, &generated.TopDescription, &generated.BottomDescription,
		&generated.ImageURL, &generated.ModelUsed, &generated.PromptUsed, &generated.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return outfit.GeneratedOutfit{}, false, nil
		}
		return outfit.GeneratedOutfit{}, false, err
	}
	generated.CreatedAt = generated.CreatedAt.UTC()
	return generated, true, nil
}

var _ outfit.OutfitRepository = (*PostgresOutfitRepository)(nil)
