// Package cli wires configuration, logging and the front-ends into a cobra
// command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"simsiac/internal/catalog"
	"simsiac/internal/collector"
	"simsiac/internal/config"
	"simsiac/internal/logging"
	"simsiac/ui/tui"
)

var rootCmd = &cobra.Command{
	Use:   "simsiac",
	Short: "Scrollable terminal menu with system probes",
	Long: `simsiac shows a menu of variable-height items in the terminal.
Items scroll by page or by step, and item shortcuts fire their action even
when the item is off screen. The built-in menu runs host probes.`,
	Example: `
# Run the interactive menu
simsiac

# Scroll one item at a time, with menu entries from a DuckDB catalog
simsiac --mode step --catalog menu.db
  `,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, done, err := prepare(cmd)
		if err != nil {
			return err
		}
		defer done()

		entries, err := loadEntries(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		return tui.Start(cfg, entries, collector.DefaultRegistry(cfg.ProbeTimeout))
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("mode", "m", "", "Scroll mode (page, step)")
	rootCmd.PersistentFlags().StringP("catalog", "c", "", "DuckDB file holding the menu catalog")
	rootCmd.PersistentFlags().String("log-file", "", "Log file path")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads .env and the environment, then applies flags that were
// set on the command line.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("mode") {
		mode, _ := flags.GetString("mode")
		cfg = cfg.WithScrollMode(mode)
	}
	if flags.Changed("catalog") {
		dsn, _ := flags.GetString("catalog")
		cfg = cfg.WithCatalog(dsn)
	}
	file, level := cfg.LogFile, cfg.LogLevel
	if flags.Changed("log-file") {
		file, _ = flags.GetString("log-file")
	}
	if flags.Changed("log-level") {
		level, _ = flags.GetString("log-level")
	}
	cfg = cfg.WithLog(file, level)

	return cfg, cfg.Validate()
}

// prepare loads the config and installs the file logger. done closes the log.
func prepare(cmd *cobra.Command) (config.Config, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return config.Config{}, nil, err
	}
	closer, err := logging.Setup(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return config.Config{}, nil, err
	}
	slog.Debug("config loaded", "mode", cfg.ScrollMode, "catalog", cfg.CatalogDSN)
	return cfg, func() { closer.Close() }, nil
}

// loadEntries returns the catalog entries, or the built-in menu when no
// catalog is configured.
func loadEntries(ctx context.Context, cfg config.Config) ([]catalog.Entry, error) {
	if cfg.CatalogDSN == "" {
		return catalog.Demo(), nil
	}
	repo, closer, err := openRepo(ctx, cfg.CatalogDSN)
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	entries, err := repo.Entries(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		slog.Warn("catalog is empty", "dsn", cfg.CatalogDSN)
	}
	return entries, nil
}

func openRepo(ctx context.Context, dsn string) (*catalog.Repo, io.Closer, error) {
	client, err := catalog.Open(dsn)
	if err != nil {
		return nil, nil, err
	}
	repo := catalog.NewRepo(client.DB())
	if err := repo.Migrate(ctx); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to migrate catalog: %w", err)
	}
	return repo, client, nil
}
