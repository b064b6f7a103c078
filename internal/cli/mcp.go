package cli

import (
	"github.com/spf13/cobra"

	"simsiac/internal/collector"
	"simsiac/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the menu over MCP on stdio",
	Long: `Run a Model Context Protocol server on stdin/stdout. Clients can list the
visible items, press keys, add items and resize the menu.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, done, err := prepare(cmd)
		if err != nil {
			return err
		}
		defer done()

		width, _ := cmd.Flags().GetInt("width")
		height, _ := cmd.Flags().GetInt("height")

		entries, err := loadEntries(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		srv, err := mcpserver.NewServer(mcpserver.Config{
			ServerName:    cfg.MCPServerName,
			ServerVersion: cfg.MCPServerVersion,
			Width:         width,
			Height:        height,
			Mode:          cfg.Mode(),
			QuitKeys:      cfg.QuitKeys,
		}, entries, collector.DefaultRegistry(cfg.ProbeTimeout))
		if err != nil {
			return err
		}
		return srv.Start(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().Int("width", 80, "Menu width")
	mcpCmd.Flags().Int("height", 17, "Menu height in rows")
}
