package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// Episodes returns every episode of the show, flattened across seasons in
// ascending season order. Episodes within a season keep upstream's
// listing order.
//
// The first call fans out one request per season and memoizes the result;
// later calls return the memoized list without touching the network.
// Concurrent first calls serialize on the show's lock and converge on a
// single fetch. The aggregation is all-or-nothing: if any season fails,
// the whole call fails, nothing is memoized, and a later call starts
// over.
func (s *TVShow) Episodes(ctx context.Context) ([]*Episode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.episodesLoaded {
		return s.episodes, nil
	}
	if s.client == nil {
		return nil, fmt.Errorf("%w: show was not fetched through a client", ErrInvalidRequest)
	}

	episodes, err := s.client.fetchAllSeasons(ctx, s.settings, s.ImdbID, s.TotalSeasons)
	if err != nil {
		return nil, err
	}

	s.episodes = episodes
	s.episodesLoaded = true
	return episodes, nil
}

// fetchAllSeasons requests seasons 1..totalSeasons concurrently and
// flattens the results in season order. All legs share the caller's
// settings; each gets its own per-request timeout in doGet.
func (c *Client) fetchAllSeasons(ctx context.Context, settings clientSettings, seriesID string, totalSeasons int) ([]*Episode, error) {
	seasons := make([][]*Episode, totalSeasons)
	if totalSeasons <= 0 {
		return []*Episode{}, nil
	}

	c.logger.Debug().
		Str("series_id", seriesID).
		Int("seasons", totalSeasons).
		Msg("Aggregating episodes")

	g, gctx := errgroup.WithContext(ctx)
	for number := 1; number <= totalSeasons; number++ {
		g.Go(func() error {
			episodes, err := c.fetchSeason(gctx, settings, seriesID, number)
			if err != nil {
				return err
			}
			seasons[number-1] = episodes
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, episodes := range seasons {
		total += len(episodes)
	}
	flattened := make([]*Episode, 0, total)
	for _, episodes := range seasons {
		flattened = append(flattened, episodes...)
	}

	c.logger.Debug().
		Str("series_id", seriesID).
		Int("episodes", len(flattened)).
		Msg("Episode aggregation complete")

	return flattened, nil
}

// fetchSeason retrieves one season listing and builds its episodes. The
// built episodes carry the requested season number, not whatever season
// value the payload reports.
func (c *Client) fetchSeason(ctx context.Context, settings clientSettings, seriesID string, season int) ([]*Episode, error) {
	params := url.Values{}
	params.Set("apikey", settings.apiKey)
	params.Set("i", seriesID)
	params.Set("Season", strconv.Itoa(season))
	params.Set("r", "json")

	body, err := c.doGet(ctx, settings, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch season %d of %q: %w", season, seriesID, err)
	}

	var payload seasonPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse season %d of %q: %w", season, seriesID, err)
	}

	if classifySeason(&payload) == kindError {
		return nil, &UpstreamError{
			Message: payload.Error,
			Query:   fmt.Sprintf("%s season %d", seriesID, season),
		}
	}

	episodes := make([]*Episode, 0, len(payload.Episodes))
	for i := range payload.Episodes {
		episode, err := newSeasonEpisode(&payload.Episodes[i], season, seriesID)
		if err != nil {
			return nil, err
		}
		episodes = append(episodes, episode)
	}

	return episodes, nil
}
