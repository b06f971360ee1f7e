// whoami.go implements the "canvas-mcp whoami" command, the CLI form of the
// server's startup authentication check.

package core

import (
	"errors"
	"fmt"

	"github.com/jpl-au/canvas-mcp/cmd"
	"github.com/jpl-au/canvas-mcp/internal/format"
	"github.com/jpl-au/canvas-mcp/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the Canvas user the token belongs to",
		Long:  `Verify the configured credentials by fetching /users/self.`,
		Args:  cobra.NoArgs,
		RunE:  e.runWhoami,
	}
}

func (e *Extension) runWhoami(c *cobra.Command, _ []string) error {
	u, err := e.client.Self(c.Context())
	if err == nil && u == nil {
		err = errors.New("canvas returned no user")
	}
	log.Event("cli:whoami", "auth").Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("whoami: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(u)
	}
	return format.User(cmd.Out(), u, e.client.Host())
}
