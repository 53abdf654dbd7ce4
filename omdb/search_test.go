package omdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	var requests []map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		requests = append(requests, map[string]string{
			"s": q.Get("s"), "page": q.Get("page"), "type": q.Get("type"), "y": q.Get("y"),
		})

		json.NewEncoder(w).Encode(map[string]any{
			"Search": []map[string]any{
				{"Title": "The Toxic Avenger", "Year": "1984", "imdbID": "tt0087892", "Type": "movie"},
				{"Title": "The Toxic Avenger Part II", "Year": "1989", "imdbID": "tt0098503", "Type": "movie"},
			},
			"totalResults": "25",
			"Response":     "True",
		})
	}))
	defer server.Close()

	client := newTestClient(t, server)

	page, err := client.Search(context.Background(), SearchRequest{Query: "Toxic Avenger"}, 0)
	require.NoError(t, err)

	assert.Len(t, page.Results, 2)
	assert.Equal(t, 25, page.TotalResults)
	assert.Equal(t, 1, page.Page, "page below 1 defaults to 1")
	assert.True(t, page.HasMore())
	assert.Equal(t, "The Toxic Avenger", page.Results[0].Title)
	assert.Equal(t, page.Results[0].Title, page.Results[0].Name)
	assert.Equal(t, 1984, page.Results[0].Year)

	next, err := page.NextPage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, next.Page)
	assert.Equal(t, page.Request(), next.Request())

	require.Len(t, requests, 2)
	assert.Equal(t, map[string]string{"s": "Toxic Avenger", "page": "1", "type": "", "y": ""}, requests[0])
	assert.Equal(t, map[string]string{"s": "Toxic Avenger", "page": "2", "type": "", "y": ""}, requests[1])
}

func TestSearchNarrowing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "series", q.Get("type"))
		assert.Equal(t, "2002", q.Get("y"))

		json.NewEncoder(w).Encode(map[string]any{
			"Search":       []map[string]any{{"Title": "The Wire", "Year": "2002–2008", "imdbID": "tt0306414", "Type": "series"}},
			"totalResults": "1",
			"Response":     "True",
		})
	}))
	defer server.Close()

	client := newTestClient(t, server)

	page, err := client.Search(context.Background(), SearchRequest{Query: "wire", Type: TypeSeries, Year: 2002}, 1)
	require.NoError(t, err)

	require.Len(t, page.Results, 1)
	assert.Equal(t, TypeSeries, page.Results[0].Type)
	assert.Equal(t, 2002, page.Results[0].Year, "range years keep their leading year")
	assert.False(t, page.HasMore())
}

func TestSearchUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"Response": "False",
			"Error":    "Movie not found!",
		})
	}))
	defer server.Close()

	client := newTestClient(t, server)

	_, err := client.Search(context.Background(), SearchRequest{Query: "zzzzzz"}, 1)
	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, "zzzzzz", upstreamErr.Query)
	assert.True(t, upstreamErr.IsNotFound())
}

func TestSearchPastTheEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"Search":       []map[string]any{},
			"totalResults": "3",
			"Response":     "True",
		})
	}))
	defer server.Close()

	client := newTestClient(t, server)

	page, err := client.Search(context.Background(), SearchRequest{Query: "x"}, 9)
	require.NoError(t, err)
	assert.Empty(t, page.Results)
	assert.False(t, page.HasMore())
}
