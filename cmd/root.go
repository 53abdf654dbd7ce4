package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cinedex/cinedex/config"
	"github.com/cinedex/cinedex/filter"
	"github.com/cinedex/cinedex/omdb"
)

var (
	cfgFile       string
	cfg           *config.Config
	logger        zerolog.Logger
	client        *omdb.Client
	filterManager *filter.Manager

	version   = "dev"
	buildTime = "unknown"

	// Command flags
	filterExpr string
	preset     string
	jsonOut    bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cinedex",
	Short: "Look up movies, series and episodes from the OMDb API",
	Long: `cinedex is a CLI tool for querying the OMDb movie database: fetch
single titles by name or IMDb id, search with pagination, and aggregate
the full episode list of a series. Results can be narrowed with filter
expressions like 'Year >= 2000 and hasGenre("comedy")'.`,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SetVersion sets the version information shown by --version
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	rootCmd.AddCommand(testCmd)
}

// initializeApp initializes the configuration, logger and client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Create OMDb client
	client, err = omdb.NewClient(cfg.OMDb.APIKey, logger,
		omdb.WithBaseURL(cfg.OMDb.BaseURL),
		omdb.WithTimeout(cfg.OMDb.Timeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create OMDb client: %w", err)
	}

	// Compile filter presets once so bad expressions fail at startup
	filterManager = filter.NewManager()
	if err := filterManager.RegisterFilters(cfg.Filter.Presets); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format, without color when stderr is not a terminal
	noColor := !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd())
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// resolveFilter compiles the active filter expression, or returns nil
// when no filtering was requested.
func resolveFilter() (filter.CompiledFilter, error) {
	// Priority: command line filter > preset > config default
	if filterExpr != "" {
		compiled, err := filter.CompileFilter(filterExpr)
		if err != nil {
			return nil, fmt.Errorf("invalid filter expression: %w", err)
		}
		return compiled, nil
	}

	if preset != "" {
		compiled, ok := filterManager.GetFilter(preset)
		if !ok {
			return nil, fmt.Errorf("preset '%s' not found in config", preset)
		}
		return compiled, nil
	}

	if cfg.Filter.Default != "" {
		compiled, err := filter.CompileFilter(cfg.Filter.Default)
		if err != nil {
			return nil, fmt.Errorf("invalid default filter in config: %w", err)
		}
		return compiled, nil
	}

	return nil, nil
}

// printJSON renders v as indented JSON on stdout
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test the OMDb API key and connectivity",
	Long:  `Verify the configured API key by fetching a well-known title from OMDb.`,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	fmt.Printf("Testing connection to OMDb at %s...\n", cfg.OMDb.BaseURL)

	ctx := context.Background()
	title, err := client.Get(ctx, omdb.GetRequest{ID: "tt0111161", ShortPlot: true})
	if err != nil {
		var upstreamErr *omdb.UpstreamError
		if errors.As(err, &upstreamErr) && upstreamErr.IsInvalidAPIKey() {
			return fmt.Errorf("API key rejected: %w", err)
		}
		return fmt.Errorf("connection test failed: %w", err)
	}

	fmt.Println("✓ Connection successful!")

	if movie, ok := title.(*omdb.Movie); ok {
		fmt.Printf("- Fetched: %s (%d)\n", movie.Title, movie.Year)
	}

	if presets := filterManager.ListFilters(); len(presets) > 0 {
		slices.Sort(presets)
		fmt.Printf("\nConfigured filter presets:\n")
		for _, name := range presets {
			fmt.Printf("  • %s\n", name)
		}
	}

	return nil
}
