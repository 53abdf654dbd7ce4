package omdb

import (
	"context"

	"github.com/rs/zerolog"
)

// Get is a one-shot lookup for callers that do not hold a client. It
// builds a transient client from the key and options, so construction
// failures surface the same way call failures do.
func Get(ctx context.Context, apiKey string, req GetRequest, opts ...Option) (Title, error) {
	client, err := NewClient(apiKey, zerolog.Nop(), opts...)
	if err != nil {
		return nil, err
	}
	return client.Get(ctx, req)
}

// Search is the one-shot counterpart of Client.Search. The returned page
// keeps the transient client alive for NextPage.
func Search(ctx context.Context, apiKey string, req SearchRequest, page int, opts ...Option) (*SearchPage, error) {
	client, err := NewClient(apiKey, zerolog.Nop(), opts...)
	if err != nil {
		return nil, err
	}
	return client.Search(ctx, req, page)
}
