package omdb

import (
	"net/http"
	"time"
)

// DefaultBaseURL is the public OMDb endpoint.
const DefaultBaseURL = "https://www.omdbapi.com/"

// DefaultTimeout bounds each individual request. Multi-request operations
// like episode aggregation run their requests concurrently, so it also
// bounds the aggregate.
const DefaultTimeout = 30 * time.Second

// Option configures a Client. Options passed to NewClient set the client
// baseline; the same options passed to Get or Search override the
// baseline for that call only.
type Option func(*clientSettings)

// clientSettings holds the resolved configuration of a call. Per-call
// resolution copies the client baseline and applies overrides on top,
// so later calls never see earlier overrides.
type clientSettings struct {
	apiKey     string
	baseURL    string
	timeout    time.Duration
	userAgent  string
	httpClient *http.Client
}

func defaultSettings() clientSettings {
	return clientSettings{
		baseURL:    DefaultBaseURL,
		timeout:    DefaultTimeout,
		httpClient: http.DefaultClient,
	}
}

// apply returns a copy of s with the given overrides applied.
func (s clientSettings) apply(opts []Option) clientSettings {
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithAPIKey overrides the API key.
func WithAPIKey(key string) Option {
	return func(s *clientSettings) {
		s.apiKey = key
	}
}

// WithBaseURL points the client at a different endpoint. Useful for
// proxies and test servers.
func WithBaseURL(baseURL string) Option {
	return func(s *clientSettings) {
		if baseURL != "" {
			s.baseURL = baseURL
		}
	}
}

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(timeout time.Duration) Option {
	return func(s *clientSettings) {
		if timeout >= 0 {
			s.timeout = timeout
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(s *clientSettings) {
		s.userAgent = userAgent
	}
}

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *clientSettings) {
		if client != nil {
			s.httpClient = client
		}
	}
}
