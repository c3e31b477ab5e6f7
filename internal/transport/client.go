// Package transport provides the HTTP client listing sources fetch through.
package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/agentstation/hackfinder/pkg/constants"
	"github.com/agentstation/hackfinder/pkg/errors"
	"github.com/agentstation/hackfinder/pkg/logging"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// DefaultUserAgent identifies hackfinder to listing sites.
const DefaultUserAgent = "hackfinder/1.0 (+https://github.com/agentstation/hackfinder)"

// maxBodySize bounds how much of a response is read.
const maxBodySize = 16 << 20

// Client provides HTTP client functionality with authentication.
type Client struct {
	source    string
	http      *http.Client
	auth      Authenticator
	apiKey    string
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithAPIKey sets the key the authenticator applies. Without a key no
// authentication is applied.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a new transport client for the named source.
func New(source string, auth Authenticator, opts ...Option) *Client {
	if auth == nil {
		auth = &NoAuth{}
	}
	c := &Client{
		source:    source,
		http:      &http.Client{Timeout: DefaultHTTPTimeout},
		auth:      auth,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do performs an HTTP request with authentication applied.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.apiKey != "" {
		c.auth.Apply(req, c.apiKey)
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	logging.FromContext(req.Context()).Debug().
		Str("source", c.source).
		Str("method", req.Method).
		Str("url", req.URL.Redacted()).
		Msg("Sending request")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.WrapFetch(c.source, req.URL.Redacted(), err)
	}
	return resp, nil
}

// Get performs a GET request accepting the given media type.
func (c *Client) Get(ctx context.Context, url, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapFetch(c.source, url, err)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	return c.Do(req)
}

// GetJSON fetches url and decodes the JSON body into target.
func (c *Client) GetJSON(ctx context.Context, url string, target any) error {
	resp, err := c.Get(ctx, url, "application/json")
	if err != nil {
		return err
	}
	return DecodeResponse(resp, c.source, target)
}

// GetBody fetches url and returns the body of a successful response.
func (c *Client) GetBody(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.Get(ctx, url, "text/html,application/xhtml+xml")
	if err != nil {
		return nil, err
	}
	return ReadResponse(resp, c.source)
}

// ReadResponse reads the body of a response, turning non-200 statuses into
// FetchErrors. The body is always closed.
func ReadResponse(resp *http.Response, source string) ([]byte, error) {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode != http.StatusOK {
		endpoint := ""
		if resp.Request != nil && resp.Request.URL != nil {
			endpoint = resp.Request.URL.Redacted()
		}
		return nil, &errors.FetchError{
			Source:     source,
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Message:    fmt.Sprintf("%s: %s", resp.Status, truncate(string(body), 200)),
		}
	}
	return body, nil
}

// DecodeResponse decodes a JSON response into the target structure.
func DecodeResponse(resp *http.Response, source string, target any) error {
	body, err := ReadResponse(resp, source)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", source+" response", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
