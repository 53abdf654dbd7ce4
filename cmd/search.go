package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cinedex/cinedex/filter"
	"github.com/cinedex/cinedex/omdb"
)

var (
	searchType  string
	searchYear  int
	searchPage  int
	searchPages int
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search OMDb by title",
	Long: `Search the movie database by title. Results come in pages of ten;
--pages follows the pagination to fetch several consecutive pages in one
call.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVarP(&searchType, "type", "t", "", "restrict to a media type (movie, series, episode, game)")
	searchCmd.Flags().IntVarP(&searchYear, "year", "y", 0, "release year")
	searchCmd.Flags().IntVar(&searchPage, "page", 1, "result page to start from")
	searchCmd.Flags().IntVar(&searchPages, "pages", 1, "number of consecutive pages to fetch")
	searchCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	searchCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	searchCmd.Flags().BoolVar(&jsonOut, "json", false, "print results as JSON")
}

func runSearch(cmd *cobra.Command, args []string) error {
	req := omdb.SearchRequest{Query: args[0], Year: searchYear}
	if searchType != "" {
		mediaType, ok := omdb.ParseMediaType(searchType)
		if !ok {
			return fmt.Errorf("invalid media type %q", searchType)
		}
		req.Type = mediaType
	}

	compiled, err := resolveFilter()
	if err != nil {
		return err
	}

	ctx := context.Background()
	page, err := client.Search(ctx, req, searchPage)
	if err != nil {
		return err
	}

	total := page.TotalResults
	results := page.Results

	// Follow next pages when asked. Upstream reports out-of-range pages
	// as not found, so treat that as the end of the listing.
	for fetched := 1; fetched < searchPages && page.HasMore(); fetched++ {
		next, err := page.NextPage(ctx)
		if err != nil {
			var upstreamErr *omdb.UpstreamError
			if errors.As(err, &upstreamErr) && upstreamErr.IsNotFound() {
				break
			}
			return err
		}
		page = next
		results = append(results, page.Results...)
	}

	if compiled != nil {
		kept := make([]omdb.SearchResult, 0, len(results))
		for _, result := range results {
			if compiled.Evaluate(filter.FromSearchResult(result)) {
				kept = append(kept, result)
			}
		}
		results = kept
	}

	if jsonOut {
		return printJSON(results)
	}

	if len(results) == 0 {
		fmt.Println("No results.")
		return nil
	}

	matchText := "result"
	if len(results) != 1 {
		matchText = "results"
	}
	fmt.Printf("Showing %d %s of %d total:\n\n", len(results), matchText, total)

	fmt.Println(strings.Repeat("━", 85))
	fmt.Printf("%-50s %-8s %-10s %s\n", "TITLE", "YEAR", "TYPE", "IMDB ID")
	fmt.Println(strings.Repeat("━", 85))

	for _, result := range results {
		title := result.Title
		if len(title) > 48 {
			title = title[:45] + "..."
		}

		year := ""
		if result.Year > 0 {
			year = strconv.Itoa(result.Year)
		}

		fmt.Printf("%-50s %-8s %-10s %s\n", title, year, result.Type, result.ImdbID)
	}
	fmt.Println(strings.Repeat("━", 85))

	return nil
}
