package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cinedex/cinedex/filter"
	"github.com/cinedex/cinedex/omdb"
)

var episodesID string

// episodesCmd represents the episodes command
var episodesCmd = &cobra.Command{
	Use:   "episodes [title]",
	Short: "List every episode of a series",
	Long: `Fetch a series and aggregate its full episode list. Seasons are
fetched concurrently; the list is either complete or the command fails.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEpisodes,
}

func init() {
	rootCmd.AddCommand(episodesCmd)

	episodesCmd.Flags().StringVarP(&episodesID, "id", "i", "", "IMDb id of the series")
	episodesCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	episodesCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	episodesCmd.Flags().BoolVar(&jsonOut, "json", false, "print episodes as JSON")
}

func runEpisodes(cmd *cobra.Command, args []string) error {
	req := omdb.GetRequest{ID: episodesID}
	if len(args) > 0 {
		req.Title = args[0]
	}

	compiled, err := resolveFilter()
	if err != nil {
		return err
	}

	ctx := context.Background()
	title, err := client.Get(ctx, req)
	if err != nil {
		return err
	}

	show, ok := title.(*omdb.TVShow)
	if !ok {
		name := req.Title
		if name == "" {
			name = req.ID
		}
		return fmt.Errorf("%q is a %s, not a series", name, title.Kind())
	}

	episodes, err := show.Episodes(ctx)
	if err != nil {
		return fmt.Errorf("failed to aggregate episodes: %w", err)
	}

	// Filter into a fresh slice; the aggregated list is cached on the show.
	if compiled != nil {
		kept := make([]*omdb.Episode, 0, len(episodes))
		for _, ep := range episodes {
			if compiled.Evaluate(filter.FromEpisode(ep)) {
				kept = append(kept, ep)
			}
		}
		episodes = kept
	}

	if jsonOut {
		return printJSON(episodes)
	}

	seasonText := "season"
	if show.TotalSeasons != 1 {
		seasonText = "seasons"
	}
	fmt.Printf("%s (%s), %d %s\n", show.Title, showYears(show), show.TotalSeasons, seasonText)

	if len(episodes) == 0 {
		fmt.Println("\nNo episodes.")
		return nil
	}

	season := 0
	for _, ep := range episodes {
		if ep.Season != season {
			season = ep.Season
			fmt.Printf("\nSeason %d\n", season)
			fmt.Println(strings.Repeat("━", 85))
			fmt.Printf("%-5s %-50s %-14s %s\n", "EP", "TITLE", "AIRED", "RATING")
			fmt.Println(strings.Repeat("━", 85))
		}

		name := ep.Title
		if len(name) > 48 {
			name = name[:45] + "..."
		}

		aired := ""
		if !ep.Released.IsZero() {
			aired = ep.Released.Format("2006-01-02")
		}

		rating := ""
		if ep.Rating > 0 {
			rating = fmt.Sprintf("%.1f", ep.Rating)
		}

		fmt.Printf("%-5d %-50s %-14s %s\n", ep.EpisodeNumber, name, aired, rating)
	}

	return nil
}
