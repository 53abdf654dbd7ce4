package omdb

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// MediaType identifies which record variant a payload represents.
type MediaType string

// Known media types
const (
	TypeMovie   MediaType = "movie"
	TypeSeries  MediaType = "series"
	TypeEpisode MediaType = "episode"
	TypeGame    MediaType = "game"
)

// String implements the Stringer interface
func (t MediaType) String() string {
	return string(t)
}

// Valid reports whether t is one of the known media types.
func (t MediaType) Valid() bool {
	switch t {
	case TypeMovie, TypeSeries, TypeEpisode, TypeGame:
		return true
	}
	return false
}

// ParseMediaType folds and validates a media type string.
func ParseMediaType(s string) (MediaType, bool) {
	t := MediaType(strings.ToLower(strings.TrimSpace(s)))
	return t, t.Valid()
}

// Title is implemented by every record variant the client can return:
// *Movie, *TVShow, *Episode, and *Game. Callers branch on the concrete
// type, or on Kind() when only the tag matters.
type Title interface {
	// Kind returns the media type tag of the record
	Kind() MediaType
}

// Rating is a single review-source rating as upstream reports it,
// e.g. {Source: "Rotten Tomatoes", Value: "81%"}.
type Rating struct {
	Source string `json:"source"`
	Value  string `json:"value"`
}

// Media holds the attributes shared by every record variant. Field values
// are kept as upstream reports them except for the documented coercions:
// Rating is parsed to a float (invalid parses become 0), Year is parsed to
// an integer unless the upstream value is a year range, and the two date
// fields fall back to their zero value when unparseable.
type Media struct {
	ImdbID  string    `json:"imdbId"`
	ImdbURL string    `json:"imdbUrl"`
	Title   string    `json:"title"`
	Name    string    `json:"name"`
	Type    MediaType `json:"type"`

	// IsSeries is derived at construction: true for every type but movie.
	IsSeries bool `json:"isSeries"`

	// Year is the release year when upstream reports a single year. For
	// year ranges like "2015-2019" it stays 0 and the raw range is kept
	// internally; TVShow derives StartYear and EndYear from it.
	Year      int    `json:"year,omitempty"`
	yearRange string

	Rating     float64   `json:"rating"`
	Votes      string    `json:"votes,omitempty"`
	Runtime    string    `json:"runtime,omitempty"`
	Genres     string    `json:"genres,omitempty"`
	Languages  string    `json:"languages,omitempty"`
	Country    string    `json:"country,omitempty"`
	Rated      string    `json:"rated,omitempty"`
	Plot       string    `json:"plot,omitempty"`
	Poster     string    `json:"poster,omitempty"`
	Metascore  string    `json:"metascore,omitempty"`
	Director   string    `json:"director,omitempty"`
	Writer     string    `json:"writer,omitempty"`
	Actors     string    `json:"actors,omitempty"`
	Awards     string    `json:"awards,omitempty"`
	Website    string    `json:"website,omitempty"`
	Production string    `json:"production,omitempty"`
	BoxOffice  string    `json:"boxOffice,omitempty"`
	Released   time.Time `json:"released,omitzero"`
	DVD        time.Time `json:"dvdRelease,omitzero"`
	Ratings    []Rating  `json:"ratings,omitempty"`
}

// Kind returns the media type tag of the record
func (m *Media) Kind() MediaType {
	return m.Type
}

// Movie is a single film record.
type Movie struct {
	Media
}

// Game is a video game record. OMDb indexes games alongside films; the
// attribute set is identical and only the type tag differs.
type Game struct {
	Media
}

// Episode is a single episode of a series. When fetched directly, Season
// and EpisodeNumber are parsed from the payload; when built by episode
// aggregation, Season is the season that was requested and SeriesID is
// taken from the owning show.
type Episode struct {
	Media
	Season        int    `json:"season"`
	EpisodeNumber int    `json:"episode,omitempty"`
	SeriesID      string `json:"seriesId,omitempty"`
}

// TVShow is a series record. It keeps the client and the settings it was
// fetched with so episodes can be aggregated later without re-supplying
// either.
type TVShow struct {
	Media

	// StartYear is the first year of the show's run. EndYear is 0 while
	// the show is ongoing or upstream reports no usable end year.
	StartYear    int `json:"startYear,omitempty"`
	EndYear      int `json:"endYear,omitempty"`
	TotalSeasons int `json:"totalSeasons"`

	client   *Client
	settings clientSettings

	mu             sync.Mutex
	episodes       []*Episode
	episodesLoaded bool
}

// Ended reports whether the show has a known final year.
func (s *TVShow) Ended() bool {
	return s.EndYear > 0
}

// SearchResult is the lightweight projection OMDb returns for search
// matches. Year is parsed leniently since search entries may carry a year
// range; a value with no leading digits becomes 0.
type SearchResult struct {
	Title  string    `json:"title"`
	Name   string    `json:"name"`
	Year   int       `json:"year,omitempty"`
	ImdbID string    `json:"imdbId"`
	Type   MediaType `json:"type"`
	Poster string    `json:"poster,omitempty"`
}

// GetRequest identifies a single record to fetch. Exactly one of Title or
// ID must be set. Year narrows title lookups; ShortPlot requests the
// abbreviated plot instead of the full one.
type GetRequest struct {
	Title     string
	ID        string
	Year      int
	ShortPlot bool
}

func (r GetRequest) validate() error {
	if r.Title == "" && r.ID == "" {
		return fmt.Errorf("%w: either a title or an IMDb id must be provided", ErrInvalidRequest)
	}
	if r.Title != "" && r.ID != "" {
		return fmt.Errorf("%w: title and IMDb id are mutually exclusive", ErrInvalidRequest)
	}
	return nil
}

// query returns the identifier the request was made with, for error
// annotation.
func (r GetRequest) query() string {
	if r.ID != "" {
		return r.ID
	}
	return r.Title
}

// SearchRequest describes a title search. Query is required; Type and
// Year narrow the results. The request is retained by the resulting
// SearchPage so further pages can be fetched from it.
type SearchRequest struct {
	Query string
	Type  MediaType
	Year  int
}
