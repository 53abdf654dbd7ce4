package omdb

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const imdbTitleURL = "https://www.imdb.com/title/"

// yearRangePattern matches series-style year values: "2015-2019",
// "2015-", and the en-dash variants upstream occasionally emits.
var yearRangePattern = regexp.MustCompile(`^\d{4}[-–](?:\d{4})?$`)

// dateLayouts lists the two date formats OMDb uses: item payloads carry
// "14 Apr 1984" while season listings carry "1984-04-14".
var dateLayouts = []string{"02 Jan 2006", "2006-01-02"}

// buildMedia normalizes the shared fields of an item payload. String
// fields are carried verbatim, including upstream's "N/A" markers; only
// the year, rating, and date fields are coerced. An unparseable year that
// is not a year range fails the whole record.
func buildMedia(p *itemPayload) (Media, error) {
	m := Media{
		ImdbID:     p.ImdbID,
		Title:      p.Title,
		Name:       p.Title,
		Type:       MediaType(strings.ToLower(p.Type)),
		Votes:      p.ImdbVotes,
		Runtime:    p.Runtime,
		Genres:     p.Genre,
		Languages:  p.Language,
		Country:    p.Country,
		Rated:      p.Rated,
		Plot:       p.Plot,
		Poster:     p.Poster,
		Metascore:  p.Metascore,
		Director:   p.Director,
		Writer:     p.Writer,
		Actors:     p.Actors,
		Awards:     p.Awards,
		Website:    p.Website,
		Production: p.Production,
		BoxOffice:  p.BoxOffice,
	}
	m.IsSeries = m.Type != TypeMovie
	if p.ImdbID != "" {
		m.ImdbURL = imdbTitleURL + p.ImdbID
	}
	m.Rating = parseRating(p.ImdbRating)
	m.Released = parseDate(p.Released)
	m.DVD = parseDate(p.DVD)

	if p.Year != "" {
		if yearRangePattern.MatchString(p.Year) {
			m.yearRange = p.Year
		} else {
			year, err := strconv.Atoi(p.Year)
			if err != nil {
				return Media{}, &ParseError{Field: "year", Value: p.Year}
			}
			m.Year = year
		}
	}

	if len(p.Ratings) > 0 {
		m.Ratings = make([]Rating, 0, len(p.Ratings))
		for _, r := range p.Ratings {
			m.Ratings = append(m.Ratings, Rating{Source: r.Source, Value: r.Value})
		}
	}

	return m, nil
}

func newMovie(p *itemPayload) (*Movie, error) {
	m, err := buildMedia(p)
	if err != nil {
		return nil, err
	}
	return &Movie{Media: m}, nil
}

func newGame(p *itemPayload) (*Game, error) {
	m, err := buildMedia(p)
	if err != nil {
		return nil, err
	}
	return &Game{Media: m}, nil
}

// newTVShow builds a series record and captures the client and settings
// the lookup was made with, so Episodes can fan out later. StartYear and
// EndYear are split from the retained year range; an ongoing show has
// EndYear 0. An unparseable totalSeasons degrades to 0 and a later
// aggregation yields an empty episode list.
func newTVShow(p *itemPayload, c *Client, settings clientSettings) (*TVShow, error) {
	m, err := buildMedia(p)
	if err != nil {
		return nil, err
	}
	show := &TVShow{Media: m, client: c, settings: settings}

	if m.yearRange != "" {
		parts := strings.FieldsFunc(m.yearRange, func(r rune) bool {
			return r == '-' || r == '–'
		})
		show.StartYear, _ = strconv.Atoi(parts[0])
		if len(parts) > 1 {
			if end, err := strconv.Atoi(parts[1]); err == nil && end > 0 {
				show.EndYear = end
			}
		}
	} else {
		show.StartYear = m.Year
	}

	if n, err := strconv.Atoi(p.TotalSeasons); err == nil && n > 0 {
		show.TotalSeasons = n
	}

	return show, nil
}

// newEpisode builds an episode from a direct lookup. Season is required
// and parsed strictly; EpisodeNumber is parsed only when the payload
// carries it.
func newEpisode(p *itemPayload) (*Episode, error) {
	m, err := buildMedia(p)
	if err != nil {
		return nil, err
	}
	ep := &Episode{Media: m, SeriesID: p.SeriesID}

	season, err := strconv.Atoi(p.Season)
	if err != nil {
		return nil, &ParseError{Field: "season", Value: p.Season}
	}
	ep.Season = season

	if p.Episode != "" {
		number, err := strconv.Atoi(p.Episode)
		if err != nil {
			return nil, &ParseError{Field: "episode", Value: p.Episode}
		}
		ep.EpisodeNumber = number
	}

	return ep, nil
}

// newSeasonEpisode builds an episode from one entry of a season listing.
// Season comes from the request that fetched the listing, never from the
// payload, and the series id comes from the owning show.
func newSeasonEpisode(p *seasonEpisodePayload, season int, seriesID string) (*Episode, error) {
	m := Media{
		ImdbID:   p.ImdbID,
		Title:    p.Title,
		Name:     p.Title,
		Type:     TypeEpisode,
		IsSeries: true,
	}
	if p.ImdbID != "" {
		m.ImdbURL = imdbTitleURL + p.ImdbID
	}
	m.Rating = parseRating(p.ImdbRating)
	m.Released = parseDate(p.Released)

	ep := &Episode{Media: m, Season: season, SeriesID: seriesID}
	if p.Episode != "" {
		number, err := strconv.Atoi(p.Episode)
		if err != nil {
			return nil, &ParseError{Field: "episode", Value: p.Episode}
		}
		ep.EpisodeNumber = number
	}

	return ep, nil
}

// newSearchResult projects one search entry. Search years may be ranges
// ("2011–2019"), so the leading digits are enough; entries with no usable
// year keep 0 rather than failing the page.
func newSearchResult(p *searchEntryPayload) SearchResult {
	return SearchResult{
		Title:  p.Title,
		Name:   p.Title,
		Year:   leadingYear(p.Year),
		ImdbID: p.ImdbID,
		Type:   MediaType(strings.ToLower(p.Type)),
		Poster: p.Poster,
	}
}

// parseRating coerces upstream's rating string. "N/A", garbage, and NaN
// all become 0.
func parseRating(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0
	}
	return f
}

// parseDate tries the known upstream layouts and returns the zero time on
// failure. "N/A" release dates are routine upstream and never fail a
// record.
func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func leadingYear(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	year, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return year
}
