package openmeteo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/style-ai/internal/domain/outfit"
)

const defaultBaseURL = "https://api.open-meteo.com/v1/forecast"

// Client fetches daily forecasts from the Open-Meteo API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a forecast client. The timeout bounds the upstream wait;
// expiry is treated like any other upstream failure by the resolver.
func NewClient(baseURL string, timeout time.Duration) *Client {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Daily retrieves max/min temperature and the weather code for one date.
func (c *Client) Daily(ctx context.Context, latitude, longitude float64, date string) (outfit.DailyForecast, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	params.Set("daily", "temperature_2m_max,temperature_2m_min,weathercode")
	params.Set("timezone", "auto")
	params.Set("start_date", date)
	params.Set("end_date", date)
	endpoint := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return outfit.DailyForecast{}, fmt.Errorf("build forecast request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return outfit.DailyForecast{}, fmt.Errorf("forecast request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return outfit.DailyForecast{}, fmt.Errorf("forecast request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return outfit.DailyForecast{}, fmt.Errorf("read forecast response: %w", err)
	}

	var raw forecastResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return outfit.DailyForecast{}, fmt.Errorf("decode forecast response: %w", err)
	}

	daily := raw.Daily
	if daily == nil || len(daily.Time) == 0 {
		return outfit.DailyForecast{}, errors.New("no daily data in forecast response")
	}
	if len(daily.TemperatureMax) == 0 || len(daily.TemperatureMin) == 0 || len(daily.WeatherCode) == 0 {
		return outfit.DailyForecast{}, errors.New("incomplete daily series in forecast response")
	}

	return outfit.DailyForecast{
		TempMax:     daily.TemperatureMax[0],
		TempMin:     daily.TemperatureMin[0],
		WeatherCode: daily.WeatherCode[0],
		RawPayload:  body,
	}, nil
}

type forecastResponse struct {
	Daily *dailySeries `json:"daily"`
}

type dailySeries struct {
	Time           []string  `json:"time"`
	TemperatureMax []float64 `json:"temperature_2m_max"`
	TemperatureMin []float64 `json:"temperature_2m_min"`
	WeatherCode    []int     `json:"weathercode"`
}

var _ outfit.ForecastClient = (*Client)(nil)
