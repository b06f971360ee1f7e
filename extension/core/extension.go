// Package core provides the core extension for canvas-mcp.
// It registers commands: config, serve, guide, whoami, version, audit.
package core

import (
	"github.com/jpl-au/canvas-mcp/extension"
	"github.com/jpl-au/canvas-mcp/internal/canvas"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct {
	client *canvas.Client
}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.Offline       = (*Extension)(nil)
)

// Name returns "core" - this extension provides setup and server commands.
func (e *Extension) Name() string { return "core" }

// Init keeps the shared client for whoami.
func (e *Extension) Init(ctx extension.Context) error {
	e.client = ctx.Client()
	return nil
}

// Commands returns all core CLI commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newConfigCmd(),
		newServeCmd(),
		newGuideCmd(),
		e.newWhoamiCmd(),
		newVersionCmd(),
		newAuditCmd(),
	}
}

// OfflineCommands returns commands that do not need the shared client.
// serve: builds its own client and owns the process until stdin closes.
// config: must work when the config file is broken.
// guide, version, audit: no Canvas access at all.
func (e *Extension) OfflineCommands() []string {
	return []string{"serve", "config", "guide", "version", "audit"}
}
