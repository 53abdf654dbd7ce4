package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cinedex/cinedex/omdb"
)

var (
	getID     string
	getYear   int
	shortPlot bool
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get [title]",
	Short: "Fetch a single movie, series, episode or game",
	Long: `Fetch one record by title or IMDb id. Series results include season
information and can be expanded with the episodes command.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().StringVarP(&getID, "id", "i", "", "IMDb id, e.g. tt0111161")
	getCmd.Flags().IntVarP(&getYear, "year", "y", 0, "release year to narrow title lookups")
	getCmd.Flags().BoolVar(&shortPlot, "short-plot", false, "request the abbreviated plot")
	getCmd.Flags().BoolVar(&jsonOut, "json", false, "print the record as JSON")
}

func runGet(cmd *cobra.Command, args []string) error {
	req := omdb.GetRequest{ID: getID, Year: getYear, ShortPlot: shortPlot}
	if len(args) > 0 {
		req.Title = args[0]
	}

	ctx := context.Background()
	title, err := client.Get(ctx, req)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(title)
	}

	printTitle(title)
	return nil
}

// printTitle renders one record with variant-specific detail
func printTitle(title omdb.Title) {
	switch t := title.(type) {
	case *omdb.Movie:
		printMedia(&t.Media, "Movie")
	case *omdb.Game:
		printMedia(&t.Media, "Game")
	case *omdb.TVShow:
		printMedia(&t.Media, "Series")
		fmt.Printf("  Years:    %s\n", showYears(t))
		fmt.Printf("  Seasons:  %d\n", t.TotalSeasons)
	case *omdb.Episode:
		printMedia(&t.Media, "Episode")
		fmt.Printf("  Episode:  S%02dE%02d\n", t.Season, t.EpisodeNumber)
		if t.SeriesID != "" {
			fmt.Printf("  Series:   %s\n", t.SeriesID)
		}
	}
}

func printMedia(m *omdb.Media, kind string) {
	fmt.Printf("\n%s", m.Title)
	if m.Year > 0 {
		fmt.Printf(" (%d)", m.Year)
	}
	fmt.Printf(" [%s]\n", kind)
	fmt.Println(strings.Repeat("━", 60))

	if m.Rated != "" && m.Rated != "N/A" {
		fmt.Printf("  Rated:    %s\n", m.Rated)
	}
	if !m.Released.IsZero() {
		fmt.Printf("  Released: %s\n", m.Released.Format("2006-01-02"))
	}
	if m.Runtime != "" && m.Runtime != "N/A" {
		fmt.Printf("  Runtime:  %s\n", m.Runtime)
	}
	if m.Genres != "" && m.Genres != "N/A" {
		fmt.Printf("  Genres:   %s\n", m.Genres)
	}
	if m.Director != "" && m.Director != "N/A" {
		fmt.Printf("  Director: %s\n", m.Director)
	}
	if m.Actors != "" && m.Actors != "N/A" {
		fmt.Printf("  Actors:   %s\n", m.Actors)
	}
	if m.Rating > 0 {
		fmt.Printf("  Rating:   %.1f (%s votes)\n", m.Rating, m.Votes)
	}
	if m.Plot != "" && m.Plot != "N/A" {
		fmt.Printf("\n  %s\n", m.Plot)
	}
	fmt.Printf("\n  %s\n", m.ImdbURL)
}

// showYears formats the run of a series, open-ended while it is ongoing
func showYears(show *omdb.TVShow) string {
	if show.StartYear == 0 {
		return "unknown"
	}
	if show.Ended() {
		return fmt.Sprintf("%d-%d", show.StartYear, show.EndYear)
	}
	return fmt.Sprintf("%d-", show.StartYear)
}
