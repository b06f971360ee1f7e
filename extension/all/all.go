// Package all imports all built-in canvas-mcp extensions.
// Import this package to register all built-in commands.
package all

import (
	// Built-in extensions - each registers itself via init()
	_ "github.com/jpl-au/canvas-mcp/extension/core"
	_ "github.com/jpl-au/canvas-mcp/extension/coursework"
)
