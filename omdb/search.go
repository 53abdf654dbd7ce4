package omdb

import "context"

// SearchPage is one page of search results together with everything
// needed to fetch the next one: the original request and the settings the
// search was made with. Pages are read-only; NextPage returns a new page.
type SearchPage struct {
	Results      []SearchResult `json:"results"`
	TotalResults int            `json:"totalResults"`
	Page         int            `json:"page"`

	request  SearchRequest
	settings clientSettings
	client   *Client
}

// Request returns the search request this page was produced from.
func (p *SearchPage) Request() SearchRequest {
	return p.request
}

// HasMore reports whether upstream claims more results than the pages
// fetched so far could hold. OMDb serves ten results per page.
func (p *SearchPage) HasMore() bool {
	return p.Page*resultsPerPage < p.TotalResults
}

const resultsPerPage = 10

// NextPage re-issues the stored request for the following page. It does
// not guard against running past the last page; upstream answers such a
// request with an error or an empty listing, and both are passed through
// unchanged.
func (p *SearchPage) NextPage(ctx context.Context) (*SearchPage, error) {
	return p.client.search(ctx, p.settings, p.request, p.Page+1)
}
