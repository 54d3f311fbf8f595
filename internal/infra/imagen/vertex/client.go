package vertex

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/yanqian/style-ai/internal/domain/outfit"
)

const (
	defaultModel = "imagen-3.0-generate-002"
	cloudScope   = "https://www.googleapis.com/auth/cloud-platform"
)

// Client invokes the Vertex AI Imagen predict endpoint.
type Client struct {
	project     string
	location    string
	model       string
	endpoint    string
	tokenSource oauth2.TokenSource
	httpClient  *http.Client
	logger      *slog.Logger
}

// NewClient builds the Imagen client. When tokenSource is nil the client
// falls back to application default credentials; a missing project or
// missing credentials surfaces as outfit.ErrGeneratorNotConfigured at call
// time so one unconfigured deployment does not fail startup.
func NewClient(project, location, model, endpoint string, tokenSource oauth2.TokenSource, logger *slog.Logger) *Client {
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	if strings.TrimSpace(location) == "" {
		location = "us-central1"
	}
	if tokenSource == nil && strings.TrimSpace(project) != "" {
		ts, err := google.DefaultTokenSource(context.Background(), cloudScope)
		if err != nil {
			logger.Warn("vertex default credentials unavailable", "error", err)
		} else {
			tokenSource = ts
		}
	}
	return &Client{
		project:     strings.TrimSpace(project),
		location:    location,
		model:       model,
		endpoint:    strings.TrimRight(strings.TrimSpace(endpoint), "/"),
		tokenSource: tokenSource,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		logger: logger.With("component", "imagen.vertex"),
	}
}

// Generate requests exactly one square image for the prompt and returns the
// raw image bytes.
func (c *Client) Generate(ctx context.Context, prompt string) ([]byte, error) {
	if c.project == "" {
		return nil, fmt.Errorf("%w: project is not set", outfit.ErrGeneratorNotConfigured)
	}
	if c.tokenSource == nil {
		return nil, fmt.Errorf("%w: no credentials available", outfit.ErrGeneratorNotConfigured)
	}

	payload, err := json.Marshal(predictRequest{
		Instances: []predictInstance{{Prompt: prompt}},
		Parameters: predictParameters{
			SampleCount: 1,
			AspectRatio: "1:1",
			OutputOptions: outputOptions{
				MimeType: "image/jpeg",
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encode predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.predictURL(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build predict request: %w", err)
	}
	token, err := c.tokenSource.Token()
	if err != nil {
		return nil, fmt.Errorf("fetch access token: %w", err)
	}
	token.SetAuthHeader(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("predict request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("predict request error: status=%d body=%s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read predict response: %w", err)
	}

	var out predictResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode predict response: %w", err)
	}
	if len(out.Predictions) == 0 {
		return nil, errors.New("predict response contained no images")
	}

	data, err := base64.StdEncoding.DecodeString(out.Predictions[0].BytesBase64Encoded)
	if err != nil {
		return nil, fmt.Errorf("decode image bytes: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("predict response contained empty image bytes")
	}
	return data, nil
}

func (c *Client) predictURL() string {
	base := c.endpoint
	if base == "" {
		base = fmt.Sprintf("https://%s-aiplatform.googleapis.com", c.location)
	}
	return fmt.Sprintf("%s/v1/projects/%s/locations/%s/publishers/google/models/%s:predict", base, c.project, c.location, c.model)
}

type predictRequest struct {
	Instances  []predictInstance `json:"instances"`
	Parameters predictParameters `json:"parameters"`
}

type predictInstance struct {
	Prompt string `json:"prompt"`
}

type predictParameters struct {
	SampleCount   int           `json:"sampleCount"`
	AspectRatio   string        `json:"aspectRatio"`
	OutputOptions outputOptions `json:"outputOptions"`
}

type outputOptions struct {
	MimeType string `json:"mimeType"`
}

type predictResponse struct {
	Predictions []prediction `json:"predictions"`
}

type prediction struct {
	BytesBase64Encoded string `json:"bytesBase64Encoded"`
	MimeType           string `json:"mimeType"`
}

var _ outfit.ImageGenerator = (*Client)(nil)
