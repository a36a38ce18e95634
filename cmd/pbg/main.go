package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/IshaanNene/pbg/internal/config"
	"github.com/IshaanNene/pbg/internal/engine"
	"github.com/IshaanNene/pbg/internal/fetcher"
)

var (
	cfgFile      string
	verbose      bool
	outputFormat string
	outputPath   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pbg",
		Short: "pbg converts saved buying-guide pages to structured records",
		Long: `pbg parses buying guides saved with curl and writes one JSON or microdata
document per run. Any change in the page structure aborts the run; nothing
is written unless every page parsed.

Guides:
  hrc      Human Rights Campaign Buyer's Guide (about page + category pages)
  eggs     Cornucopia Institute organic egg scorecard
  hotels   UNITE HERE hotel guide`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "", "output format: json, microdata, table")
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "write to this file instead of stdout")

	rootCmd.AddCommand(hrcCmd())
	rootCmd.AddCommand(hrcURLsCmd())
	rootCmd.AddCommand(eggsCmd())
	rootCmd.AddCommand(hotelsCmd())
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// hrcCmd creates the "hrc" subcommand.
func hrcCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hrc ABOUT.html CATEGORY.html...",
		Short: "Convert the HRC Buyer's Guide",
		Long: `Convert the HRC Buyer's Guide. Pass the main (about) page and every
category page listed by "pbg hrc-urls"; companies are merged by name.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGuide(cmd.Context(), "hrc", args)
		},
	}
}

// hrcURLsCmd creates the "hrc-urls" subcommand.
func hrcURLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hrc-urls MAIN.html",
		Short: "List the HRC category pages to download",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, eng, err := setup()
			if err != nil {
				return err
			}

			urls, err := eng.CategoryURLs(cmd.Context(), args[0])
			if err != nil {
				logger.Error("listing category urls failed", "error", err)
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(urls, "\n"))
			return err
		},
	}
}

// eggsCmd creates the "eggs" subcommand.
func eggsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eggs [SCORECARD.html]",
		Short: "Convert the organic egg scorecard (reads stdin without a file)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{fetcher.StdinSource}
			}
			return runGuide(cmd.Context(), "eggs", args)
		},
	}
}

// hotelsCmd creates the "hotels" subcommand.
func hotelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hotels GUIDE.html",
		Short: "Convert the UNITE HERE hotel guide",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGuide(cmd.Context(), "hotels", args)
		},
	}
}

// runGuide executes one conversion run.
func runGuide(ctx context.Context, name string, sources []string) error {
	logger, eng, err := setup()
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := eng.Run(ctx, name, sources); err != nil {
		logger.Error("conversion failed", "guide", name, "error", err)
		return err
	}
	return nil
}

// setup loads and validates the configuration and builds the engine.
func setup() (*slog.Logger, *engine.Engine, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	applyCLIOverrides(cfg)

	if err := config.Validate(cfg); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := setupLogger(cfg.Logging)

	eng, err := engine.New(cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("create engine: %w", err)
	}
	return logger, eng, nil
}

// versionCmd creates the "version" subcommand.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pbg %s\n", config.Version)
		},
	}
}

// configCmd creates the "config" subcommand for inspecting configuration.
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			applyCLIOverrides(cfg)

			out, err := config.Dump(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

// setupLogger builds a stderr logger; stdout carries only the document.
func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

// applyCLIOverrides applies command-line flag values to the config.
func applyCLIOverrides(cfg *config.Config) {
	if outputFormat != "" {
		cfg.Output.Format = outputFormat
	}
	if outputPath != "" {
		cfg.Storage.Type = "file"
		cfg.Storage.OutputPath = outputPath
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
}
