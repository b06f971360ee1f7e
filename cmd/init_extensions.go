/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Separated from root.go to isolate the initialisation logic that loads
// config, builds the Canvas client and wires up extensions.
//
// Design: Extensions register during init() but aren't initialised until
// first command execution. This two-phase pattern allows extensions to
// declare commands before the config has been read. The client is created
// once and shared across all extensions via the Context.

package cmd

import (
	"fmt"
	"sync"

	"github.com/jpl-au/canvas-mcp/extension"
	"github.com/jpl-au/canvas-mcp/internal/canvas"
	"github.com/jpl-au/canvas-mcp/internal/config"
)

// offlineCommands lists commands that bypass client initialisation.
// Built from extension-declared offline commands plus help and shell
// completion, which cobra adds itself.
var offlineCommands map[string]bool

func buildOfflineCommands() map[string]bool {
	cmds := map[string]bool{
		"help":       true,
		"completion": true,
	}
	for _, ext := range extension.All() {
		if o, ok := ext.(extension.Offline); ok {
			for _, name := range o.OfflineCommands() {
				cmds[name] = true
			}
		}
	}
	return cmds
}

// Global extension context, created during initialisation.
var (
	extContext extension.Context
	initOnce   sync.Once
	initErr    error
)

// initExtensions loads the config, creates the Canvas client and injects it
// into extensions.
//
// Missing credentials are not an error here. The client reports them on its
// first request, with the name of the setting to add, which is a clearer
// message than a generic startup failure.
func initExtensions() error {
	initOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}
		extContext = extension.NewContext(canvas.New(cfg), cfg)

		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}
		offlineCommands = buildOfflineCommands()
	})
}
