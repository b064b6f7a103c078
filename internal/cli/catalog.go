package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"simsiac/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the menu catalog",
	Long:  `Import and list the menu entries stored in the DuckDB catalog given by --catalog.`,
}

var catalogImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the catalog with entries from a YAML or JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, done, err := prepare(cmd)
		if err != nil {
			return err
		}
		defer done()
		if cfg.CatalogDSN == "" {
			return fmt.Errorf("no catalog given, use --catalog or SIMSIAC_CATALOG_DSN")
		}

		entries, err := catalog.LoadFile(args[0])
		if err != nil {
			return err
		}
		repo, closer, err := openRepo(cmd.Context(), cfg.CatalogDSN)
		if err != nil {
			return err
		}
		defer closer.Close()

		if err := repo.Replace(cmd.Context(), entries); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries into %s\n", len(entries), cfg.CatalogDSN)
		return nil
	},
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog entries",
	Long:  `List the catalog entries in menu order. Without --catalog the built-in menu is listed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, done, err := prepare(cmd)
		if err != nil {
			return err
		}
		defer done()

		format, _ := cmd.Flags().GetString("format")
		entries, err := loadEntries(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		return writeEntries(cmd.OutOrStdout(), entries, format)
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogListCmd)

	catalogListCmd.Flags().StringP("format", "f", "text", "Output format (text, json, yaml)")
}

func writeEntries(w io.Writer, entries []catalog.Entry, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(catalog.File{Items: entries})
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(catalog.File{Items: entries})
	case "text":
		for _, e := range entries {
			shortcut := e.Shortcut
			if shortcut == "" {
				shortcut = "-"
			}
			fmt.Fprintf(w, "%3d  %-3s h=%-2d %-28s %s\n", e.Position, shortcut, e.Height, e.Label, e.Action)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}
