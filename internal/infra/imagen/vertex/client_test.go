package vertex

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/yanqian/style-ai/internal/domain/outfit"
)

func TestClient_Generate(t *testing.T) {
	image := []byte("jpeg-bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/projects/test-project/locations/us-central1/publishers/google/models/imagen-3.0-generate-002:predict", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var req predictRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Instances, 1)
		require.Equal(t, "a flat lay outfit", req.Instances[0].Prompt)
		require.Equal(t, 1, req.Parameters.SampleCount)
		require.Equal(t, "1:1", req.Parameters.AspectRatio)
		require.Equal(t, "image/jpeg", req.Parameters.OutputOptions.MimeType)

		_ = json.NewEncoder(w).Encode(predictResponse{
			Predictions: []prediction{{
				BytesBase64Encoded: base64.StdEncoding.EncodeToString(image),
				MimeType:           "image/jpeg",
			}},
		})
	}))
	defer server.Close()

	client := newTestClient(t, "test-project", server.URL)
	data, err := client.Generate(context.Background(), "a flat lay outfit")
	require.NoError(t, err)
	require.Equal(t, image, data)
}

func TestClient_GenerateUnconfiguredProject(t *testing.T) {
	client := NewClient("", "us-central1", "", "", nil, newTestLogger())
	_, err := client.Generate(context.Background(), "prompt")
	require.Error(t, err)
	require.True(t, errors.Is(err, outfit.ErrGeneratorNotConfigured))
}

func TestClient_GenerateNoPredictions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"predictions":[]}`))
	}))
	defer server.Close()

	client := newTestClient(t, "test-project", server.URL)
	_, err := client.Generate(context.Background(), "prompt")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no images")
}

func TestClient_GenerateUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(t, "test-project", server.URL)
	_, err := client.Generate(context.Background(), "prompt")
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=429")
	require.False(t, errors.Is(err, outfit.ErrGeneratorNotConfigured))
}

func TestClient_PredictURLDefaultsToRegionalEndpoint(t *testing.T) {
	client := NewClient("test-project", "asia-south1", "imagen-3.0-generate-002", "", oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "t"}), newTestLogger())
	require.Equal(t,
		fmt.Sprintf("https://asia-south1-aiplatform.googleapis.com/v1/projects/%s/locations/%s/publishers/google/models/%s:predict", "test-project", "asia-south1", "imagen-3.0-generate-002"),
		client.predictURL())
}

func newTestClient(t *testing.T, project, endpoint string) *Client {
	t.Helper()
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"})
	return NewClient(project, "us-central1", "", endpoint, ts, newTestLogger())
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}
