// context.go defines the Context interface for extension access to the
// Canvas client and configuration.
//
// Separated from extension.go to isolate dependency injection concerns.
// Extensions receive Context during Init(), not at construction, because
// commands are registered before the config has been read.

package extension

import (
	"github.com/jpl-au/canvas-mcp/internal/canvas"
	"github.com/jpl-au/canvas-mcp/internal/config"
)

// Context provides extensions controlled access to shared state.
type Context interface {
	// Client returns the Canvas API client built from the loaded config.
	Client() *canvas.Client

	// Config returns the loaded user configuration.
	Config() *config.Config
}

// extContext implements Context.
type extContext struct {
	client *canvas.Client
	cfg    *config.Config
}

// NewContext creates a new extension context.
func NewContext(client *canvas.Client, cfg *config.Config) Context {
	return &extContext{client: client, cfg: cfg}
}

// Client returns the shared Canvas client.
func (c *extContext) Client() *canvas.Client {
	return c.client
}

// Config returns the loaded user configuration.
func (c *extContext) Config() *config.Config {
	return c.cfg
}
