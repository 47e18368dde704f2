package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ddbrown30/item-browser/internal/mcp"
	"github.com/ddbrown30/item-browser/internal/notify"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the browser as MCP tools over stdio",
	Long: `Runs an MCP server on stdin/stdout exposing list_sources, browse_items and
get_item over the configured world and packs.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		logger.Printf("serving %s items over stdio", s.handler.Title())
		return mcp.New(s.deps(notify.Logger(logger)), version).ServeStdio(ctx)
	},
}
