// Package filter evaluates expr-lang expressions against movie database
// records, so search results and episode lists can be narrowed client-side
// with expressions like `Year >= 2000 and hasGenre("comedy")`.
package filter

import (
	"context"
	"fmt"
	"time"

	"github.com/cinedex/cinedex/omdb"
)

// Item is the flattened view of a record that filter expressions run
// against. Constructors fill in whatever the source record carries;
// absent fields keep their zero value.
type Item struct {
	Title        string    `json:"title"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	Year         int       `json:"year,omitempty"`
	StartYear    int       `json:"startYear,omitempty"`
	EndYear      int       `json:"endYear,omitempty"`
	TotalSeasons int       `json:"totalSeasons,omitempty"`
	Season       int       `json:"season,omitempty"`
	Episode      int       `json:"episode,omitempty"`
	SeriesID     string    `json:"seriesId,omitempty"`
	ImdbID       string    `json:"imdbId"`
	Rating       float64   `json:"rating,omitempty"`
	Votes        string    `json:"votes,omitempty"`
	Genres       string    `json:"genres,omitempty"`
	Languages    string    `json:"languages,omitempty"`
	Country      string    `json:"country,omitempty"`
	Runtime      string    `json:"runtime,omitempty"`
	Rated        string    `json:"rated,omitempty"`
	Released     time.Time `json:"released,omitzero"`
	Poster       string    `json:"poster,omitempty"`
}

// FromSearchResult builds an Item from a search match.
func FromSearchResult(r omdb.SearchResult) Item {
	return Item{
		Title:  r.Title,
		Name:   r.Name,
		Type:   string(r.Type),
		Year:   r.Year,
		ImdbID: r.ImdbID,
		Poster: r.Poster,
	}
}

// FromEpisode builds an Item from an episode record.
func FromEpisode(ep *omdb.Episode) Item {
	item := fromMedia(&ep.Media)
	item.Season = ep.Season
	item.Episode = ep.EpisodeNumber
	item.SeriesID = ep.SeriesID
	return item
}

// FromTitle builds an Item from any record variant.
func FromTitle(title omdb.Title) Item {
	switch t := title.(type) {
	case *omdb.Movie:
		return fromMedia(&t.Media)
	case *omdb.Game:
		return fromMedia(&t.Media)
	case *omdb.Episode:
		return FromEpisode(t)
	case *omdb.TVShow:
		item := fromMedia(&t.Media)
		item.StartYear = t.StartYear
		item.EndYear = t.EndYear
		item.TotalSeasons = t.TotalSeasons
		return item
	}
	return Item{}
}

func fromMedia(m *omdb.Media) Item {
	return Item{
		Title:     m.Title,
		Name:      m.Name,
		Type:      string(m.Type),
		Year:      m.Year,
		ImdbID:    m.ImdbID,
		Rating:    m.Rating,
		Votes:     m.Votes,
		Genres:    m.Genres,
		Languages: m.Languages,
		Country:   m.Country,
		Runtime:   m.Runtime,
		Rated:     m.Rated,
		Released:  m.Released,
		Poster:    m.Poster,
	}
}

// defaultCompiler backs the package-level helpers.
var defaultCompiler = NewExprCompiler(WithCache(100))

// CompileFilter compiles an expression using the shared default compiler.
func CompileFilter(expression string) (CompiledFilter, error) {
	return defaultCompiler.Compile(expression)
}

// EvaluateFilters compiles and evaluates a set of named filter expressions
// against items.
func EvaluateFilters(ctx context.Context, filters map[string]string, items []Item) (map[string][]Item, error) {
	compiled := make(map[string]CompiledFilter, len(filters))
	for name, expression := range filters {
		f, err := CompileFilter(expression)
		if err != nil {
			return nil, fmt.Errorf("failed to compile filter '%s': %w", name, err)
		}
		compiled[name] = f
	}

	return NewConcurrentEvaluator().EvaluateBatch(ctx, compiled, items)
}
