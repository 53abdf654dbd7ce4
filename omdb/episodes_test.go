package omdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seriesHandler serves a two-season show: three episodes in season 1 and
// four in season 2. Season payloads report a bogus Season value to prove
// the aggregator trusts the request, not the payload.
func seriesHandler(t *testing.T, seasonCalls *atomic.Int32, failSeason int) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		season := q.Get("Season")
		if season == "" {
			json.NewEncoder(w).Encode(map[string]any{
				"Title": "Toxie's Revenge", "Year": "1984-1985", "Type": "series",
				"imdbID": "tt9990001", "totalSeasons": "2", "Response": "True",
			})
			return
		}

		seasonCalls.Add(1)
		require.Equal(t, "tt9990001", q.Get("i"))

		if season == "2" && failSeason == 2 {
			json.NewEncoder(w).Encode(map[string]any{
				"Response": "False",
				"Error":    "Series or episode not found!",
			})
			return
		}

		count := 3
		if season == "2" {
			count = 4
		}
		episodes := make([]map[string]any, 0, count)
		for i := 1; i <= count; i++ {
			episodes = append(episodes, map[string]any{
				"Title":      "Episode " + season + "x" + strconv.Itoa(i),
				"Released":   "1984-04-14",
				"Episode":    strconv.Itoa(i),
				"imdbRating": "7.5",
				"imdbID":     "tt999" + season + strconv.Itoa(i),
			})
		}
		json.NewEncoder(w).Encode(map[string]any{
			"Title":    "Toxie's Revenge",
			"Season":   "99",
			"Episodes": episodes,
			"Response": "True",
		})
	}
}

func fetchShow(t *testing.T, client *Client, name string) *TVShow {
	t.Helper()
	title, err := client.Get(context.Background(), GetRequest{Title: name})
	require.NoError(t, err)
	show, ok := title.(*TVShow)
	require.True(t, ok, "expected a *TVShow, got %T", title)
	return show
}

func TestEpisodesAggregation(t *testing.T) {
	var seasonCalls atomic.Int32
	server := httptest.NewServer(seriesHandler(t, &seasonCalls, 0))
	defer server.Close()

	client := newTestClient(t, server)
	show := fetchShow(t, client, "Toxie's Revenge")
	require.Equal(t, 2, show.TotalSeasons)

	episodes, err := show.Episodes(context.Background())
	require.NoError(t, err)
	require.Len(t, episodes, 7)
	assert.Equal(t, int32(2), seasonCalls.Load())

	// Flattened in ascending season order, carrying the requested season
	// number rather than the payload's.
	for i, ep := range episodes {
		wantSeason := 1
		if i >= 3 {
			wantSeason = 2
		}
		assert.Equal(t, wantSeason, ep.Season)
		assert.Equal(t, "tt9990001", ep.SeriesID)
		assert.Equal(t, TypeEpisode, ep.Type)
		assert.Equal(t, ep.Title, ep.Name)
	}
	assert.Equal(t, 1, episodes[0].EpisodeNumber)
	assert.Equal(t, 3, episodes[2].EpisodeNumber)
	assert.Equal(t, 1, episodes[3].EpisodeNumber)
	assert.Equal(t, 4, episodes[6].EpisodeNumber)
}

func TestEpisodesMemoized(t *testing.T) {
	var seasonCalls atomic.Int32
	server := httptest.NewServer(seriesHandler(t, &seasonCalls, 0))
	defer server.Close()

	client := newTestClient(t, server)
	show := fetchShow(t, client, "Toxie's Revenge")

	first, err := show.Episodes(context.Background())
	require.NoError(t, err)
	callsAfterFirst := seasonCalls.Load()

	second, err := show.Episodes(context.Background())
	require.NoError(t, err)

	assert.Equal(t, callsAfterFirst, seasonCalls.Load(), "memoized call must not refetch")
	assert.Equal(t, len(first), len(second))
	for i := range first {
		assert.Same(t, first[i], second[i])
	}
}

func TestEpisodesConcurrentFirstCalls(t *testing.T) {
	var seasonCalls atomic.Int32
	server := httptest.NewServer(seriesHandler(t, &seasonCalls, 0))
	defer server.Close()

	client := newTestClient(t, server)
	show := fetchShow(t, client, "Toxie's Revenge")

	var wg sync.WaitGroup
	results := make([][]*Episode, 4)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			episodes, err := show.Episodes(context.Background())
			assert.NoError(t, err)
			results[i] = episodes
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(2), seasonCalls.Load(), "concurrent first calls must converge on one fetch")
	for _, episodes := range results {
		require.Len(t, episodes, 7)
	}
}

func TestEpisodesAllOrNothing(t *testing.T) {
	var seasonCalls atomic.Int32
	server := httptest.NewServer(seriesHandler(t, &seasonCalls, 2))
	defer server.Close()

	client := newTestClient(t, server)
	show := fetchShow(t, client, "Toxie's Revenge")

	_, err := show.Episodes(context.Background())
	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, "Series or episode not found!", upstreamErr.Message)
	assert.Contains(t, upstreamErr.Query, "season 2")

	// Nothing may be cached after a failed aggregation.
	show.mu.Lock()
	assert.False(t, show.episodesLoaded)
	assert.Nil(t, show.episodes)
	show.mu.Unlock()
}

func TestEpisodesRetryAfterFailure(t *testing.T) {
	var seasonCalls atomic.Int32
	var fail atomic.Bool
	fail.Store(true)

	okHandler := seriesHandler(t, &seasonCalls, 0)
	failHandler := seriesHandler(t, &seasonCalls, 2)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			failHandler(w, r)
			return
		}
		okHandler(w, r)
	}))
	defer server.Close()

	client := newTestClient(t, server)
	show := fetchShow(t, client, "Toxie's Revenge")

	_, err := show.Episodes(context.Background())
	require.Error(t, err)

	fail.Store(false)

	episodes, err := show.Episodes(context.Background())
	require.NoError(t, err)
	assert.Len(t, episodes, 7)
}

func TestEpisodesZeroSeasons(t *testing.T) {
	var seasonCalls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("Season") {
			seasonCalls.Add(1)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"Title": "Mystery Show", "Year": "2015-", "Type": "series",
			"imdbID": "tt9990002", "totalSeasons": "N/A", "Response": "True",
		})
	}))
	defer server.Close()

	client := newTestClient(t, server)
	show := fetchShow(t, client, "Mystery Show")

	episodes, err := show.Episodes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, episodes)
	assert.Zero(t, seasonCalls.Load())

	// The empty list is memoized like any other.
	show.mu.Lock()
	assert.True(t, show.episodesLoaded)
	show.mu.Unlock()
}
