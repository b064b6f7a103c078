package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"simsiac/internal/catalog"
	"simsiac/internal/collector"
	"simsiac/internal/config"
	"simsiac/internal/engine"
	"simsiac/internal/menu"
	"simsiac/ui/console"
)

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the visible part of the menu",
	Long: `Build the menu for a fixed area, replay keys against it and print the
visible window as plain text.`,
	Example: `
# Show the first page of the built-in menu in a 10 row area
simsiac print --height 10

# Page down twice, then print
simsiac print --keys down,down

# Also run every probe and print graded readings
simsiac print --probe
  `,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, done, err := prepare(cmd)
		if err != nil {
			return err
		}
		defer done()

		width, _ := cmd.Flags().GetInt("width")
		height, _ := cmd.Flags().GetInt("height")
		keys, _ := cmd.Flags().GetString("keys")
		probe, _ := cmd.Flags().GetBool("probe")

		entries, err := loadEntries(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		return runPrint(cmd.Context(), cmd.OutOrStdout(), cfg, entries, width, height, splitKeys(keys), probe)
	},
}

func init() {
	rootCmd.AddCommand(printCmd)
	printCmd.Flags().Int("width", 60, "Menu width")
	printCmd.Flags().Int("height", 17, "Menu height in rows")
	printCmd.Flags().String("keys", "", "Comma separated keys to replay before printing")
	printCmd.Flags().Bool("probe", false, "Run every probe and print graded readings")
}

func splitKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

func runPrint(ctx context.Context, w io.Writer, cfg config.Config, entries []catalog.Entry, width, height int, keys []string, probe bool) error {
	m, err := menu.New(width, height,
		menu.WithScrollMode(cfg.Mode()),
		menu.WithQuitKeys(cfg.QuitKeys...),
		menu.WithItems(catalog.Items(entries, nil)),
	)
	if err != nil {
		return fmt.Errorf("failed to build menu: %w", err)
	}

	for _, k := range keys {
		if m.HandleKey(k) == menu.Quit {
			break
		}
	}
	console.Print(w, m)

	if !probe {
		return nil
	}
	reg := collector.DefaultRegistry(cfg.ProbeTimeout)
	var checks []engine.CheckResult
	for _, name := range reg.Names() {
		r, err := reg.Read(ctx, name)
		if err != nil {
			checks = append(checks, engine.CheckResult{Name: name, Status: engine.StatusUnknown})
			continue
		}
		checks = append(checks, engine.Evaluate(r))
	}
	console.PrintChecks(w, checks)
	return nil
}
