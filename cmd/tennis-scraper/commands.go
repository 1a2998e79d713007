package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/myusername/tennis-statistic-scraper/internal/config"
	"github.com/myusername/tennis-statistic-scraper/internal/logging"
	"github.com/myusername/tennis-statistic-scraper/internal/telemetry"
	"github.com/myusername/tennis-statistic-scraper/internal/utils"
	"github.com/myusername/tennis-statistic-scraper/pkg/collector"
	"github.com/myusername/tennis-statistic-scraper/pkg/models"
	"github.com/myusername/tennis-statistic-scraper/pkg/scraper"
)

var (
	configPath string
	overrides  config.Config
	players    []string

	// flag values for the optional config settings
	topFlag      int
	csvFlag      bool
	saveHTMLFlag bool
	debugFlag    bool

	cfg         config.Config
	logger      *zap.SugaredLogger
	collect     *collector.Collector
	stopMetrics func()
	stopTracing telemetry.Shutdown
)

var rootCmd = &cobra.Command{
	Use:               "tennis-scraper",
	Short:             "tennis-scraper collects ATP rankings, player profiles and serve/return statistics.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var versionCmd = &cobra.Command{
	Use:               "version",
	Short:             "Print version information and exit",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tennis-scraper version %s\n", version)
	},
}

var rankingsCmd = &cobra.Command{
	Use:   "rankings",
	Short: "Scrape the singles rankings table.",
	RunE: func(cmd *cobra.Command, args []string) error {
		rankings, err := collect.Rankings(cmd.Context())
		if err != nil {
			return err
		}
		utils.DisplayRankings(cmd.OutOrStdout(), rankings)

		if cfg.WriteCSV() {
			return saveCSV("rankings.csv", func(name string) error {
				return utils.SaveRankingsToCSV(rankings, name)
			})
		}
		return nil
	},
}

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Scrape the rankings and every ranked player's profile.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ps, err := collect.Players(cmd.Context())
		if err != nil {
			return err
		}
		utils.DisplayPlayers(cmd.OutOrStdout(), ps)

		if cfg.WriteCSV() {
			return saveCSV("players.csv", func(name string) error {
				return utils.SavePlayersToCSV(ps, name)
			})
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats [--player <name>]...",
	Short: "Scrape rankings, profiles and year by year service and return statistics.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		ps, err := collect.Players(ctx)
		if err != nil {
			return err
		}
		refs := filterPlayers(models.Refs(ps), players)
		if len(refs) == 0 {
			return fmt.Errorf("no ranked player matches %s", strings.Join(players, ", "))
		}

		start := time.Now()
		result, err := collect.Batch(ctx, refs, cfg.Workers)
		if err != nil {
			return err
		}
		logger.Infow("Scraping complete", "seconds", time.Since(start).Seconds())

		utils.DisplayBatch(cmd.OutOrStdout(), result)

		if cfg.WriteCSV() {
			for name, service := range result.Service {
				if err := saveStats(name, "service", service); err != nil {
					return err
				}
				if err := saveStats(name, "return", result.Return[name]); err != nil {
					return err
				}
			}
		}

		if skipped := result.Skipped(); len(skipped) > 0 {
			return fmt.Errorf("statistics missing for %d of %d players", len(skipped), len(refs))
		}
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", config.DefaultFile, "Config file (JSON5); a .local variant overrides it")
	flags.StringVar(&overrides.RankingsURL, "rankings-url", "", "Rankings listing URL")
	flags.IntVar(&topFlag, "top", 0, "Keep only the top N ranked players (0 keeps all)")
	flags.IntVar(&overrides.Workers, "workers", 0, "Players scraped in parallel")
	flags.IntVar(&overrides.MaxAttempts, "max-attempts", 0, "Statistics attempts per player before skipping")
	flags.StringVar(&overrides.OutputDir, "output", "", "Output directory for CSV and HTML files")
	flags.BoolVar(&csvFlag, "csv", false, "Write CSV files to the output directory")
	flags.BoolVar(&saveHTMLFlag, "save-html", false, "Save every fetched page to <output>/html")
	flags.StringVar(&overrides.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while running")
	flags.BoolVar(&debugFlag, "debug", false, "Verbose console logging")

	statsCmd.Flags().StringSliceVar(&players, "player", nil, "Only scrape statistics for these players (repeatable)")

	rootCmd.AddCommand(versionCmd, rankingsCmd, profilesCmd, statsCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd)

	zl, err := logging.New(cfg.DebugLogging())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	logger = zl.Sugar()
	logger.Infow("Tennis scraper starting", "version", version, "command", cmd.Name())

	var snapshotDir string
	if cfg.SaveSnapshots() || cfg.WriteCSV() {
		if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if cfg.SaveSnapshots() {
		snapshotDir = filepath.Join(cfg.OutputDir, "html")
		if err := os.MkdirAll(snapshotDir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", snapshotDir, err)
		}
	}

	if cfg.MetricsAddr != "" {
		stopMetrics = serveMetrics(cfg.MetricsAddr)
	}

	stopTracing, err = telemetry.Setup(cmd.Context(), "tennis-scraper", cfg.Otlp, logger)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}

	fetcher := scraper.NewHTTPFetcher(scraper.HTTPOptions{
		UserAgent:        cfg.UserAgent,
		Timeout:          time.Duration(cfg.Timeout),
		CloudflareBypass: cfg.CloudflareEnabled(),
		SnapshotDir:      snapshotDir,
		Logger:           logger,
	})
	collect = collector.New(fetcher, collector.Options{
		RankingsURL: cfg.RankingsURL,
		SiteURL:     cfg.SiteURL,
		Top:         cfg.TopPlayers(),
		Retry: collector.RetryPolicy{
			MaxAttempts: cfg.MaxAttempts,
			Backoff:     time.Duration(cfg.Backoff),
			MaxBackoff:  time.Duration(cfg.MaxBackoff),
		},
		Logger: logger,
	})
	return nil
}

// applyFlags copies explicitly set flags over the loaded config.
func applyFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("rankings-url") {
		cfg.RankingsURL = overrides.RankingsURL
	}
	if flags.Changed("top") {
		cfg.Top = config.Int(topFlag)
	}
	if flags.Changed("workers") {
		cfg.Workers = overrides.Workers
	}
	if flags.Changed("max-attempts") {
		cfg.MaxAttempts = overrides.MaxAttempts
	}
	if flags.Changed("output") {
		cfg.OutputDir = overrides.OutputDir
	}
	if flags.Changed("csv") {
		cfg.CSV = config.Bool(csvFlag)
	}
	if flags.Changed("save-html") {
		cfg.SaveHTML = config.Bool(saveHTMLFlag)
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = overrides.MetricsAddr
	}
	if flags.Changed("debug") {
		cfg.Debug = config.Bool(debugFlag)
	}
}

// cleanup stops the metrics server, flushes pending spans and syncs the
// logger. It runs after every command, failed or not.
func cleanup() {
	if stopMetrics != nil {
		stopMetrics()
	}
	if stopTracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := stopTracing(ctx); err != nil && logger != nil {
			logger.Warnw("Error flushing traces", "error", err)
		}
	}
	if logger != nil {
		_ = logger.Sync()
	}
}

func serveMetrics(addr string) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		logger.Infow("Serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warnw("Metrics server stopped", "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

func saveCSV(file string, write func(name string) error) error {
	name := filepath.Join(cfg.OutputDir, file)
	if err := write(name); err != nil {
		return fmt.Errorf("error saving %s: %w", name, err)
	}
	logger.Infow("Saved CSV", "file", name)
	return nil
}

func saveStats(player, kind string, st *models.StatsTable) error {
	name := utils.StatsFileName(cfg.OutputDir, player, kind)
	if err := utils.SaveStatsTableToCSV(st, name); err != nil {
		return fmt.Errorf("error saving %s: %w", name, err)
	}
	logger.Infow("Saved CSV", "file", name)
	return nil
}

// filterPlayers keeps the refs whose name matches one of names,
// case-insensitively. No names keeps everything.
func filterPlayers(refs []models.PlayerRef, names []string) []models.PlayerRef {
	if len(names) == 0 {
		return refs
	}
	var out []models.PlayerRef
	for _, r := range refs {
		for _, n := range names {
			if strings.EqualFold(strings.TrimSpace(n), r.Name) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
