// Package omdb provides a client for the OMDb API (https://www.omdbapi.com/).
//
// The client turns OMDb's loosely-typed JSON payloads into fixed domain
// records: Movie, TVShow, Episode, and Game, all sharing the common Media
// attributes. Responses are classified by their upstream type tag before
// construction, so callers receive the concrete variant behind the Title
// interface and can branch with a type switch.
//
// # Usage
//
//	client, err := omdb.NewClient(apiKey, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	title, err := client.Get(ctx, omdb.GetRequest{Title: "The Toxic Avenger"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	switch t := title.(type) {
//	case *omdb.Movie:
//	    fmt.Println(t.Title, t.Year)
//	case *omdb.TVShow:
//	    episodes, err := t.Episodes(ctx)
//	    // ...
//	}
//
// Search results are paginated; a SearchPage retains the request it was
// built from so the next page can be fetched without re-supplying it:
//
//	page, err := client.Search(ctx, omdb.SearchRequest{Query: "alien"}, 1)
//	next, err := page.NextPage(ctx)
//
// Options passed to NewClient form the client baseline; the same options
// may be passed per call, where they override the baseline for that call
// only. The package-level Get and Search functions construct a one-shot
// client for callers that do not want to hold one.
package omdb
