package transport

import (
	"net/http"
	"strings"
)

// Authenticator applies authentication to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request, apiKey string)
}

// NoAuth implements no authentication.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ *http.Request, _ string) {
	// No authentication applied
}

// BearerAuth implements Bearer token authentication.
type BearerAuth struct{}

// Apply implements the Authenticator interface for BearerAuth.
func (a *BearerAuth) Apply(req *http.Request, apiKey string) {
	req.Header.Set("Authorization", "Bearer "+apiKey)
}

// HeaderAuth implements custom header authentication.
type HeaderAuth struct {
	Header string
}

// Apply implements the Authenticator interface for HeaderAuth.
func (a *HeaderAuth) Apply(req *http.Request, apiKey string) {
	req.Header.Set(a.Header, apiKey)
}

// QueryAuth implements API key as query parameter authentication.
type QueryAuth struct {
	Param string
}

// Apply implements the Authenticator interface for QueryAuth.
func (a *QueryAuth) Apply(req *http.Request, apiKey string) {
	if req.URL == nil {
		return
	}

	// Parse existing query parameters
	query := req.URL.Query()
	query.Set(a.Param, apiKey)
	req.URL.RawQuery = query.Encode()
}

// Auth schemes understood by NewAuthenticator.
const (
	SchemeBearer = "Bearer"
	SchemeBasic  = "Basic"
	SchemeDirect = "Direct"
)

// NewAuthenticator returns the authenticator for a listing source's key
// settings. A query parameter wins over a header; a header without a scheme
// carries the key as is; no settings at all means bearer authentication.
func NewAuthenticator(header, scheme, queryParam string) Authenticator {
	if queryParam != "" {
		return &QueryAuth{Param: queryParam}
	}
	if header == "" {
		header = "Authorization"
	}

	switch {
	case strings.EqualFold(scheme, SchemeBearer):
		if header == "Authorization" {
			return &BearerAuth{}
		}
		return &prefixAuth{header: header, prefix: "Bearer "}
	case strings.EqualFold(scheme, SchemeBasic):
		return &prefixAuth{header: header, prefix: "Basic "}
	case scheme == "" && header == "Authorization":
		return &BearerAuth{}
	default:
		// Direct value (no scheme prefix)
		return &HeaderAuth{Header: header}
	}
}

// prefixAuth sends the key in a custom header with a scheme prefix.
type prefixAuth struct {
	header string
	prefix string
}

// Apply implements the Authenticator interface for prefixAuth.
func (a *prefixAuth) Apply(req *http.Request, apiKey string) {
	req.Header.Set(a.header, a.prefix+apiKey)
}
