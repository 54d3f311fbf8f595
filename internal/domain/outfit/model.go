package outfit

import "time"

// Location is a resolved (country, state) pair with coordinates.
// Rows are created lazily on first resolution and never mutated.
type Location struct {
	ID        int64
	Country   string
	State     string
	Latitude  float64
	Longitude float64
}

// WeatherSnapshot caches the weather summary for one location and date.
// One row per (location, date); once stored it is treated as ground truth.
type WeatherSnapshot struct {
	ID           int64
	LocationID   int64
	ForecastDate string // YYYY-MM-DD
	TempAvg      float64
	TempMin      float64
	TempMax      float64
	Humidity     float64
	Condition    string
	RawPayload   []byte // nil when the synthesized defaults were used
	FetchedAt    time.Time
}

// IsDefaulted reports whether the snapshot was synthesized instead of fetched.
func (w WeatherSnapshot) IsDefaulted() bool {
	return len(w.RawPayload) == 0
}

// WeatherResolution pairs the persisted snapshot with the non-persisted
// resolution outcome.
type WeatherResolution struct {
	Snapshot      WeatherSnapshot
	UsingDefaults bool
}

// RequestStatus tracks the generation lifecycle of an OutfitRequest.
type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusCompleted RequestStatus = "completed"
	StatusFailed    RequestStatus = "failed"
)

// OutfitRequest is a tracked generation job.
type OutfitRequest struct {
	ID            int64
	UserID        int64
	LocationID    int64
	WeatherID     int64
	Occasion      string
	TargetDate    string // YYYY-MM-DD
	Status        RequestStatus
	FailureReason *string
	CreatedAt     time.Time
}

// GeneratedOutfit is the artifact produced for a completed request.
type GeneratedOutfit struct {
	ID                int64
	RequestID         int64
	TopDescription    string
	BottomDescription string
	ImageURL          string
	ModelUsed         string
	PromptUsed        string
	CreatedAt         time.Time
}

// Profile is the demographic context used to personalize the prompt.
type Profile struct {
	Gender      string
	DateOfBirth string // YYYY-MM-DD, empty when unknown
}

// GenerateRequest captures the payload accepted by preview and generate.
type GenerateRequest struct {
	Occasion   string `json:"occasion" binding:"required"`
	Country    string `json:"country" binding:"required"`
	State      string `json:"state" binding:"required"`
	TargetDate string `json:"targetDate"`
}

// LocationView is serialized back to API consumers.
type LocationView struct {
	Country   string  `json:"country"`
	State     string  `json:"state"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// WeatherView exposes the forecast plus the default-fallback warning.
type WeatherView struct {
	ForecastDate  string  `json:"forecastDate"`
	TempAvg       float64 `json:"temperatureAvg"`
	TempMin       float64 `json:"temperatureMin"`
	TempMax       float64 `json:"temperatureMax"`
	Humidity      float64 `json:"humidity"`
	Condition     string  `json:"condition"`
	UsingDefaults bool    `json:"usingDefaults"`
	Warning       string  `json:"warning,omitempty"`
}

// OutfitView trims the generated artifact for responses.
type OutfitView struct {
	ID                int64     `json:"id"`
	TopDescription    string    `json:"topDescription"`
	BottomDescription string    `json:"bottomDescription"`
	ImageURL          string    `json:"imageUrl"`
	CreatedAt         time.Time `json:"createdAt"`
}

// RequestView nests the location, weather and optional outfit sub-objects.
type RequestView struct {
	ID              int64         `json:"id"`
	Occasion        string        `json:"occasion"`
	TargetDate      string        `json:"targetDate"`
	Status          RequestStatus `json:"status"`
	FailureReason   string        `json:"failureReason,omitempty"`
	Location        LocationView  `json:"location"`
	Weather         WeatherView   `json:"weather"`
	GeneratedOutfit *OutfitView   `json:"generatedOutfit,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// Config wires runtime settings for the outfit domain.
type Config struct {
	Model string
}
