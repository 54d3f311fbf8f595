package outfit

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/yanqian/style-ai/pkg/errors"
)

// Service exposes the outfit generation workflows.
type Service interface {
	PreviewWeather(ctx context.Context, userID int64, req GenerateRequest) (WeatherView, error)
	Generate(ctx context.Context, userID int64, req GenerateRequest) (RequestView, error)
	History(ctx context.Context, userID int64) ([]RequestView, error)
}

type service struct {
	cfg       Config
	locations LocationRepository
	weather   WeatherRepository
	requests  RequestRepository
	outfits   OutfitRepository
	cache     WeatherCache
	geocoder  GeocodingClient
	forecast  ForecastClient
	generator ImageGenerator
	images    ImageStore
	profiles  ProfileProvider
	logger    *slog.Logger
	now       func() time.Time
}

// NewService wires up the outfit domain. cache may be nil.
func NewService(cfg Config, locations LocationRepository, weather WeatherRepository, requests RequestRepository, outfits OutfitRepository, cache WeatherCache, geocoder GeocodingClient, forecast ForecastClient, generator ImageGenerator, images ImageStore, profiles ProfileProvider, logger *slog.Logger) Service {
	return &service{
		cfg:       cfg,
		locations: locations,
		weather:   weather,
		requests:  requests,
		outfits:   outfits,
		cache:     cache,
		geocoder:  geocoder,
		forecast:  forecast,
		generator: generator,
		images:    images,
		profiles:  profiles,
		logger:    logger.With("component", "outfit.service"),
		now:       time.Now,
	}
}

// PreviewWeather resolves location and weather only, so callers can inspect
// the forecast (and the default-fallback warning) before generating.
func (s *service) PreviewWeather(ctx context.Context, userID int64, req GenerateRequest) (WeatherView, error) {
	input, err := s.normalizeRequest(req)
	if err != nil {
		return WeatherView{}, err
	}

	loc, err := s.resolveLocation(ctx, input.Country, input.State)
	if err != nil {
		return WeatherView{}, err
	}
	resolution, err := s.resolveWeather(ctx, loc, input.TargetDate)
	if err != nil {
		return WeatherView{}, err
	}

	return toWeatherView(resolution), nil
}

// Generate runs the full pipeline and returns the completed request view.
func (s *service) Generate(ctx context.Context, userID int64, req GenerateRequest) (RequestView, error) {
	input, err := s.normalizeRequest(req)
	if err != nil {
		return RequestView{}, err
	}

	loc, err := s.resolveLocation(ctx, input.Country, input.State)
	if err != nil {
		return RequestView{}, err
	}
	resolution, err := s.resolveWeather(ctx, loc, input.TargetDate)
	if err != nil {
		return RequestView{}, err
	}

	request, err := s.requests.Create(ctx, OutfitRequest{
		UserID:     userID,
		LocationID: loc.ID,
		WeatherID:  resolution.Snapshot.ID,
		Occasion:   input.Occasion,
		TargetDate: input.TargetDate,
		Status:     StatusPending,
		CreatedAt:  s.now(),
	})
	if err != nil {
		return RequestView{}, apperrors.Wrap("storage_error", "failed to record outfit request", err)
	}

	profile := s.loadProfile(ctx, userID)
	prompt := ComposePrompt(PromptInput{
		Occasion:  input.Occasion,
		Condition: resolution.Snapshot.Condition,
		TempAvg:   resolution.Snapshot.TempAvg,
		Gender:    profile.Gender,
		Age:       ageFromDOB(profile.DateOfBirth, s.now()),
		Country:   input.Country,
		State:     input.State,
	})

	outfit, err := s.generateAndAttach(ctx, request, resolution.Snapshot, prompt)
	if err != nil {
		return RequestView{}, s.failRequest(ctx, request, err)
	}

	if err := s.requests.UpdateStatus(ctx, request.ID, StatusCompleted, nil); err != nil {
		return RequestView{}, apperrors.Wrap("storage_error", "failed to complete outfit request", err)
	}
	request.Status = StatusCompleted

	s.logger.Info("outfit generated", "request_id", request.ID, "user_id", userID, "image_url", outfit.ImageURL)

	view := toRequestView(request, loc, resolution, &outfit)
	return view, nil
}

// History lists the user's past requests, most recent first.
func (s *service) History(ctx context.Context, userID int64) ([]RequestView, error) {
	requests, err := s.requests.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap("storage_error", "failed to list outfit requests", err)
	}

	locs := make(map[int64]Location)
	snaps := make(map[int64]WeatherSnapshot)

	views := make([]RequestView, 0, len(requests))
	for _, request := range requests {
		loc, ok := locs[request.LocationID]
		if !ok {
			fetched, found, err := s.locations.GetByID(ctx, request.LocationID)
			if err != nil || !found {
				return nil, apperrors.Wrap("storage_error", "failed to load request location", err)
			}
			loc = fetched
			locs[request.LocationID] = loc
		}

		snap, ok := snaps[request.WeatherID]
		if !ok {
			fetched, found, err := s.weather.GetByID(ctx, request.WeatherID)
			if err != nil || !found {
				return nil, apperrors.Wrap("storage_error", "failed to load request weather", err)
			}
			snap = fetched
			snaps[request.WeatherID] = snap
		}

		var outfitView *GeneratedOutfit
		if outfit, found, err := s.outfits.GetByRequest(ctx, request.ID); err != nil {
			return nil, apperrors.Wrap("storage_error", "failed to load generated outfit", err)
		} else if found {
			outfitView = &outfit
		}

		resolution := WeatherResolution{Snapshot: snap, UsingDefaults: snap.IsDefaulted()}
		views = append(views, toRequestView(request, loc, resolution, outfitView))
	}
	return views, nil
}

// generateAndAttach invokes the generation capability, persists the image and
// attaches the resulting outfit to the request.
func (s *service) generateAndAttach(ctx context.Context, request OutfitRequest, snap WeatherSnapshot, prompt string) (GeneratedOutfit, error) {
	data, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		if errors.Is(err, ErrGeneratorNotConfigured) {
			return GeneratedOutfit{}, apperrors.Wrap("generation_unavailable", "image generation is not configured", err)
		}
		return GeneratedOutfit{}, apperrors.Wrap("generation_failed", "image generation failed", err)
	}

	id := uuid.New()
	key := fmt.Sprintf("outfits/outfit_%s.jpg", hex.EncodeToString(id[:]))
	stored, err := s.images.Save(ctx, key, data, "image/jpeg")
	if err != nil {
		return GeneratedOutfit{}, apperrors.Wrap("generation_failed", "failed to store generated image", err)
	}

	top, bottom := outfitDescriptions(request.Occasion, snap)
	outfit, err := s.outfits.Create(ctx, GeneratedOutfit{
		RequestID:         request.ID,
		TopDescription:    top,
		BottomDescription: bottom,
		ImageURL:          stored.URL,
		ModelUsed:         s.cfg.Model,
		PromptUsed:        prompt,
		CreatedAt:         s.now(),
	})
	if err != nil {
		return GeneratedOutfit{}, apperrors.Wrap("storage_error", "failed to persist generated outfit", err)
	}
	return outfit, nil
}

// failRequest records the terminal failed state and returns the original error.
func (s *service) failRequest(ctx context.Context, request OutfitRequest, cause error) error {
	reason := cause.Error()
	if err := s.requests.UpdateStatus(ctx, request.ID, StatusFailed, &reason); err != nil {
		s.logger.Error("failed to mark request failed", "request_id", request.ID, "error", err)
	}
	return cause
}

type normalizedRequest struct {
	Occasion   string
	Country    string
	State      string
	TargetDate string
}

func (s *service) normalizeRequest(req GenerateRequest) (normalizedRequest, error) {
	occasion := strings.TrimSpace(req.Occasion)
	country := strings.TrimSpace(req.Country)
	state := strings.TrimSpace(req.State)
	if occasion == "" {
		return normalizedRequest{}, apperrors.Wrap("invalid_input", "occasion cannot be empty", nil)
	}
	if country == "" {
		return normalizedRequest{}, apperrors.Wrap("invalid_input", "country cannot be empty", nil)
	}
	if state == "" {
		return normalizedRequest{}, apperrors.Wrap("invalid_input", "state cannot be empty", nil)
	}

	date := strings.TrimSpace(req.TargetDate)
	if date == "" {
		date = s.now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return normalizedRequest{}, apperrors.Wrap("invalid_input", "targetDate must be formatted as YYYY-MM-DD", err)
	}

	return normalizedRequest{Occasion: occasion, Country: country, State: state, TargetDate: date}, nil
}

func (s *service) loadProfile(ctx context.Context, userID int64) Profile {
	profile, found, err := s.profiles.Profile(ctx, userID)
	if err != nil {
		s.logger.Warn("profile lookup failed, using defaults", "user_id", userID, "error", err)
	}
	if err != nil || !found {
		return Profile{Gender: genderUnspecified}
	}
	if strings.TrimSpace(profile.Gender) == "" {
		profile.Gender = genderUnspecified
	}
	return profile
}

func ageFromDOB(dob string, today time.Time) int {
	parsed, err := time.Parse("2006-01-02", strings.TrimSpace(dob))
	if err != nil {
		return 0
	}
	age := today.Year() - parsed.Year()
	if today.Month() < parsed.Month() || (today.Month() == parsed.Month() && today.Day() < parsed.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

func toWeatherView(res WeatherResolution) WeatherView {
	view := WeatherView{
		ForecastDate:  res.Snapshot.ForecastDate,
		TempAvg:       res.Snapshot.TempAvg,
		TempMin:       res.Snapshot.TempMin,
		TempMax:       res.Snapshot.TempMax,
		Humidity:      res.Snapshot.Humidity,
		Condition:     res.Snapshot.Condition,
		UsingDefaults: res.UsingDefaults,
	}
	if res.UsingDefaults {
		view.Warning = DefaultWeatherWarning
	}
	return view
}

func toRequestView(request OutfitRequest, loc Location, res WeatherResolution, outfit *GeneratedOutfit) RequestView {
	view := RequestView{
		ID:         request.ID,
		Occasion:   request.Occasion,
		TargetDate: request.TargetDate,
		Status:     request.Status,
		Location: LocationView{
			Country:   loc.Country,
			State:     loc.State,
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
		},
		Weather:   toWeatherView(res),
		CreatedAt: request.CreatedAt,
	}
	if request.FailureReason != nil {
		view.FailureReason = *request.FailureReason
	}
	if outfit != nil {
		view.GeneratedOutfit = &OutfitView{
			ID:                outfit.ID,
			TopDescription:    outfit.TopDescription,
			BottomDescription: outfit.BottomDescription,
			ImageURL:          outfit.ImageURL,
			CreatedAt:         outfit.CreatedAt,
		}
	}
	return view
}
