package omdb

import "strings"

// OMDb reports every field as a string, uses "N/A" for absent values, and
// signals failure in-band with Response: "False" plus an Error message.
// The payload structs below mirror the wire shape exactly; build.go turns
// them into domain records.

// itemPayload is the response to a single-item lookup (t, i, or y query).
// Series payloads add totalSeasons; episode payloads add Season, Episode,
// and seriesID.
type itemPayload struct {
	Title        string          `json:"Title"`
	Year         string          `json:"Year"`
	Rated        string          `json:"Rated"`
	Released     string          `json:"Released"`
	Runtime      string          `json:"Runtime"`
	Genre        string          `json:"Genre"`
	Director     string          `json:"Director"`
	Writer       string          `json:"Writer"`
	Actors       string          `json:"Actors"`
	Plot         string          `json:"Plot"`
	Language     string          `json:"Language"`
	Country      string          `json:"Country"`
	Awards       string          `json:"Awards"`
	Poster       string          `json:"Poster"`
	Ratings      []ratingPayload `json:"Ratings"`
	Metascore    string          `json:"Metascore"`
	ImdbRating   string          `json:"imdbRating"`
	ImdbVotes    string          `json:"imdbVotes"`
	ImdbID       string          `json:"imdbID"`
	Type         string          `json:"Type"`
	DVD          string          `json:"DVD"`
	BoxOffice    string          `json:"BoxOffice"`
	Production   string          `json:"Production"`
	Website      string          `json:"Website"`
	TotalSeasons string          `json:"totalSeasons"`
	Season       string          `json:"Season"`
	Episode      string          `json:"Episode"`
	SeriesID     string          `json:"seriesID"`
	Response     string          `json:"Response"`
	Error        string          `json:"Error"`
}

func (p *itemPayload) failed() bool {
	return isFalse(p.Response)
}

type ratingPayload struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

// searchPayload is the response to an s query. totalResults counts all
// matches across pages, not the entries in Search.
type searchPayload struct {
	Search       []searchEntryPayload `json:"Search"`
	TotalResults string               `json:"totalResults"`
	Response     string               `json:"Response"`
	Error        string               `json:"Error"`
}

func (p *searchPayload) failed() bool {
	return isFalse(p.Response)
}

type searchEntryPayload struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	ImdbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// seasonPayload is the response to an i+Season query: the episode listing
// of one season, in upstream order.
type seasonPayload struct {
	Title        string                 `json:"Title"`
	Season       string                 `json:"Season"`
	TotalSeasons string                 `json:"totalSeasons"`
	Episodes     []seasonEpisodePayload `json:"Episodes"`
	Response     string                 `json:"Response"`
	Error        string                 `json:"Error"`
}

func (p *seasonPayload) failed() bool {
	return isFalse(p.Response)
}

// seasonEpisodePayload is one entry of a season listing. It is a reduced
// record: no year, plot, or ratings list, and its Released field uses the
// ISO date layout rather than the "02 Jan 2006" layout of item payloads.
type seasonEpisodePayload struct {
	Title      string `json:"Title"`
	Released   string `json:"Released"`
	Episode    string `json:"Episode"`
	ImdbRating string `json:"imdbRating"`
	ImdbID     string `json:"imdbID"`
}

func isFalse(response string) bool {
	return strings.EqualFold(response, "False")
}
