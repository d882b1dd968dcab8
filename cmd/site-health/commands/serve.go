package commands

import (
	"context"

	"site-health/internal/mcp"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analytics as MCP tools over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func serve(ctx context.Context) error {
	return mcp.NewServer(cfg).Serve(ctx)
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
