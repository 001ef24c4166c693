package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"recentstats/adapters/statcast"
	"recentstats/app"
	"recentstats/internal"
	"recentstats/internal/config"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		internal.DefaultLogger.Debug("no .env file found, using system environment variables")
	}

	rootCmd := &cobra.Command{
		Use:   "recentstats",
		Short: "Measures how predictive recent plate appearances are of the next one",
		Long: `recentstats ingests pitch-level Statcast data, derives per-player
chronological plate-appearance sequences, computes rolling AVG/OBP/SLG over
window sizes 1..N and correlates each rolling statistic with the outcome of
the immediately following plate appearance.`,
	}

	rootCmd.AddCommand(newFetchCmd(), newRunCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newFetchCmd() *cobra.Command {
	var (
		dataFile  string
		startYear int
		endYear   int
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download and cache the Statcast dataset",
		Long: `Download pitch-level Statcast data month by month (March through October)
for the configured season range into one local CSV cache. The download is
skipped when the cache file already exists.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, dataFile, startYear, endYear)
			if err != nil {
				return err
			}
			client := statcast.NewClient(internal.DefaultLogger)
			return client.FetchSeasons(cmd.Context(), cfg.Data.StartYear, cfg.Data.EndYear, cfg.Data.File)
		},
	}

	cmd.Flags().StringVar(&dataFile, "data-file", "", "path of the dataset cache (default from DATA_FILE)")
	cmd.Flags().IntVar(&startYear, "start-year", 0, "first season to fetch (default from START_YEAR)")
	cmd.Flags().IntVar(&endYear, "end-year", 0, "last season to fetch (default from END_YEAR)")

	return cmd
}

func newRunCmd() *cobra.Command {
	var (
		dataFile  string
		outDir    string
		maxWindow int
		minPA     int
		workers   int
		noFetch   bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full rolling-correlation pipeline",
		Long: `Run the full pipeline: fetch the dataset if absent, build per-player
sequences, compute rolling statistics and correlations for every window
size, and render the CSV table, xlsx workbook, plots and run summary.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, dataFile, 0, 0)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("out-dir") {
				cfg.Output.Dir = outDir
			}
			if cmd.Flags().Changed("max-window") {
				cfg.Compute.MaxWindow = maxWindow
			}
			if cmd.Flags().Changed("min-pa") {
				cfg.Compute.MinPlayerPA = minPA
			}
			if cmd.Flags().Changed("workers") {
				cfg.Compute.Workers = workers
			}
			if noFetch {
				cfg.Data.FetchEnabled = false
			}

			logger := internal.DefaultLogger
			var fetcher app.Fetcher
			if cfg.Data.FetchEnabled {
				fetcher = statcast.NewClient(logger)
			}

			result, err := app.NewPipeline(cfg, logger, fetcher).Run(cmd.Context())
			if err != nil {
				return err
			}

			for _, artifact := range result.Artifacts {
				fmt.Println(artifact)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataFile, "data-file", "", "path of the dataset cache (default from DATA_FILE)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory for report artifacts (default from OUTPUT_DIR)")
	cmd.Flags().IntVar(&maxWindow, "max-window", 0, "largest rolling window size (default from MAX_WINDOW)")
	cmd.Flags().IntVar(&minPA, "min-pa", -1, "minimum plate appearances per player (default from MIN_PLAYER_PA)")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel window passes (default from WORKERS)")
	cmd.Flags().BoolVar(&noFetch, "no-fetch", false, "fail instead of downloading when the dataset is absent")

	return cmd
}

func loadConfig(cmd *cobra.Command, dataFile string, startYear, endYear int) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("data-file") {
		cfg.Data.File = dataFile
	}
	if cmd.Flags().Changed("start-year") {
		cfg.Data.StartYear = startYear
	}
	if cmd.Flags().Changed("end-year") {
		cfg.Data.EndYear = endYear
	}
	return cfg, nil
}
