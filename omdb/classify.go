package omdb

import "strings"

// payloadKind is the classification tag assigned to a raw payload before
// any record is built. Classification happens once per response and the
// result is consumed by a switch in the client.
type payloadKind int

const (
	kindUnknown payloadKind = iota
	kindError
	kindMovie
	kindGame
	kindSeries
	kindEpisode
	kindSearchList
	kindSeasonList
)

// String implements the Stringer interface
func (k payloadKind) String() string {
	switch k {
	case kindError:
		return "error"
	case kindMovie:
		return "movie"
	case kindGame:
		return "game"
	case kindSeries:
		return "series"
	case kindEpisode:
		return "episode"
	case kindSearchList:
		return "search listing"
	case kindSeasonList:
		return "season listing"
	default:
		return "unknown"
	}
}

// classifyItem tags a single-item payload. The upstream failure indicator
// wins over everything else; after that the type tag decides the variant.
func classifyItem(p *itemPayload) payloadKind {
	if p.failed() {
		return kindError
	}
	switch MediaType(strings.ToLower(p.Type)) {
	case TypeMovie:
		return kindMovie
	case TypeGame:
		return kindGame
	case TypeSeries:
		return kindSeries
	case TypeEpisode:
		return kindEpisode
	}
	return kindUnknown
}

// classifySearch tags a search payload: either an upstream error or a
// result listing.
func classifySearch(p *searchPayload) payloadKind {
	if p.failed() {
		return kindError
	}
	return kindSearchList
}

// classifySeason tags a season payload: either an upstream error or an
// episode listing.
func classifySeason(p *seasonPayload) payloadKind {
	if p.failed() {
		return kindError
	}
	return kindSeasonList
}
