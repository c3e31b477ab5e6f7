package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/hackfinder/pkg/errors"
)

func TestClientGetJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("x-luma-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"entries": [{"event": {"name": "AI Night"}}]}`))
	}))
	defer server.Close()

	client := New("luma", &HeaderAuth{Header: "x-luma-api-key"}, WithAPIKey("secret"))

	var payload struct {
		Entries []struct {
			Event struct {
				Name string `json:"name"`
			} `json:"event"`
		} `json:"entries"`
	}
	require.NoError(t, client.GetJSON(context.Background(), server.URL, &payload))
	require.Len(t, payload.Entries, 1)
	assert.Equal(t, "AI Night", payload.Entries[0].Event.Name)
}

func TestClientWithoutKeyAppliesNoAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	body, err := New("mlh", &BearerAuth{}, WithUserAgent("test-agent")).GetBody(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(body))
}

func TestClientStatusErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{name: "server error", status: http.StatusBadGateway, check: errors.IsSourceUnavailable},
		{name: "rate limited", status: http.StatusTooManyRequests, check: errors.IsRateLimited},
		{name: "unauthorized", status: http.StatusUnauthorized, check: func(err error) bool {
			return errors.Is(err, errors.ErrAPIKeyRequired)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "nope", tt.status)
			}))
			defer server.Close()

			var target map[string]any
			err := New("devpost", nil).GetJSON(context.Background(), server.URL, &target)
			require.Error(t, err)
			assert.True(t, tt.check(err))

			var fetchErr *errors.FetchError
			require.ErrorAs(t, err, &fetchErr)
			assert.Equal(t, "devpost", fetchErr.Source)
			assert.Equal(t, tt.status, fetchErr.StatusCode)
		})
	}
}

func TestClientMalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"hackathons": [`))
	}))
	defer server.Close()

	var target map[string]any
	err := New("devpost", nil).GetJSON(context.Background(), server.URL, &target)
	var parseErr *errors.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "json", parseErr.Format)
}

func TestClientConnectionError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := New("devevents", nil).GetBody(context.Background(), url)
	require.Error(t, err)
	assert.True(t, errors.IsSourceUnavailable(err))
}

func TestClientCanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{}"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New("devpost", nil).Get(ctx, server.URL, "")
	assert.ErrorIs(t, err, context.Canceled)
}
