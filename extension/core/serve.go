// serve.go implements the "canvas-mcp serve" command for MCP server operation.
//
// Separated from extension.go because serve has unique lifecycle requirements.
// Unlike other commands that run and exit, serve blocks handling MCP
// requests over stdio until the client closes the stream.
//
// Design: Serve is an offline command - it loads config and builds its own
// client instead of using the shared one from root.go, because it also owns
// the slog setup and audit log lifetime for the whole session.

package core

import (
	"github.com/jpl-au/canvas-mcp/internal/config"
	"github.com/jpl-au/canvas-mcp/internal/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio for LLM integration.

Credentials come from the config file or CANVAS_API_TOKEN / CANVAS_DOMAIN.
See 'canvas-mcp guide serve' for client setup.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	return mcp.Serve(cfg)
}
