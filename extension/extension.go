// Package extension provides the plugin architecture for canvas-mcp CLI
// commands. Extensions group related commands and register at init time, so
// new command families can be added without touching the root command.
package extension

import "github.com/spf13/cobra"

// Extension defines the contract for canvas-mcp extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command
}

// Initializable extensions receive the shared Canvas client before any of
// their online commands run.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Offline is an optional interface for extensions with commands that never
// call Canvas. Commands returned by OfflineCommands() do not trigger config
// loading or client construction in PersistentPreRunE.
//
// Use cases:
// 1. Setup commands (config) that must work while the config is broken
// 2. Commands that manage their own client lifecycle (serve)
// 3. Utility commands (guide, version)
type Offline interface {
	OfflineCommands() []string
}
