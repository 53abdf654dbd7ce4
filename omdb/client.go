package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"
)

// Client talks to the OMDb API. It is safe for concurrent use; per-call
// options never mutate the baseline configuration.
type Client struct {
	settings clientSettings
	logger   zerolog.Logger
}

// NewClient creates an OMDb client from an API key and baseline options.
func NewClient(apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	settings := defaultSettings()
	settings.apiKey = apiKey
	settings = settings.apply(opts)

	if settings.apiKey == "" {
		return nil, ErrAPIKeyMissing
	}

	return &Client{
		settings: settings,
		logger:   logger.With().Str("component", "omdb").Logger(),
	}, nil
}

// Get fetches a single record and returns the variant the payload
// classifies as. Exactly one of the request's Title or ID must be set;
// validation failures are reported without touching the network. An
// upstream failure surfaces as an *UpstreamError annotated with the
// title or id used.
func (c *Client) Get(ctx context.Context, req GetRequest, opts ...Option) (Title, error) {
	settings := c.settings.apply(opts)

	if err := req.validate(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("apikey", settings.apiKey)
	if req.ID != "" {
		params.Set("i", req.ID)
	} else {
		params.Set("t", req.Title)
	}
	if req.Year > 0 {
		params.Set("y", strconv.Itoa(req.Year))
	}
	if req.ShortPlot {
		params.Set("plot", "short")
	} else {
		params.Set("plot", "full")
	}
	params.Set("r", "json")

	c.logger.Debug().Str("query", req.query()).Msg("Fetching title")

	body, err := c.doGet(ctx, settings, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %q: %w", req.query(), err)
	}

	var payload itemPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse response for %q: %w", req.query(), err)
	}

	switch kind := classifyItem(&payload); kind {
	case kindError:
		return nil, &UpstreamError{Message: payload.Error, Query: req.query()}
	case kindMovie:
		return newMovie(&payload)
	case kindGame:
		return newGame(&payload)
	case kindSeries:
		return newTVShow(&payload, c, settings)
	case kindEpisode:
		return newEpisode(&payload)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, payload.Type)
	}
}

// Search runs a title search and returns one page of results. Page
// numbering starts at 1; anything lower is treated as 1. The returned
// page can fetch its successor via NextPage.
func (c *Client) Search(ctx context.Context, req SearchRequest, page int, opts ...Option) (*SearchPage, error) {
	return c.search(ctx, c.settings.apply(opts), req, page)
}

func (c *Client) search(ctx context.Context, settings clientSettings, req SearchRequest, page int) (*SearchPage, error) {
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("apikey", settings.apiKey)
	params.Set("s", req.Query)
	params.Set("page", strconv.Itoa(page))
	if req.Year > 0 {
		params.Set("y", strconv.Itoa(req.Year))
	}
	if req.Type != "" {
		params.Set("type", string(req.Type))
	}
	params.Set("r", "json")

	c.logger.Debug().Str("query", req.Query).Int("page", page).Msg("Searching titles")

	body, err := c.doGet(ctx, settings, params)
	if err != nil {
		return nil, fmt.Errorf("failed to search %q: %w", req.Query, err)
	}

	var payload searchPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse search response for %q: %w", req.Query, err)
	}

	if classifySearch(&payload) == kindError {
		return nil, &UpstreamError{Message: payload.Error, Query: req.Query}
	}

	results := make([]SearchResult, 0, len(payload.Search))
	for i := range payload.Search {
		results = append(results, newSearchResult(&payload.Search[i]))
	}

	total, _ := strconv.Atoi(payload.TotalResults)

	return &SearchPage{
		Results:      results,
		TotalResults: total,
		Page:         page,
		request:      req,
		settings:     settings,
		client:       c,
	}, nil
}

// doGet performs one GET against the configured endpoint and returns the
// raw body. The per-call timeout is applied here so every request of a
// multi-request operation gets its own budget.
func (c *Client) doGet(ctx context.Context, settings clientSettings, params url.Values) ([]byte, error) {
	if settings.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, settings.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, settings.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if settings.userAgent != "" {
		req.Header.Set("User-Agent", settings.userAgent)
	}

	resp, err := settings.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
