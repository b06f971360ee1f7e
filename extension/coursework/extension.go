// Package coursework provides the Canvas lookup commands.
// Registers commands: courses, dashboard, search, assignment.
//
// Each command is the CLI twin of an MCP tool and prints the same report,
// so a user can see exactly what an assistant is given.

package coursework

import (
	"github.com/jpl-au/canvas-mcp/extension"
	"github.com/jpl-au/canvas-mcp/internal/canvas"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the coursework extension.
type Extension struct {
	client *canvas.Client
}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "coursework".
func (e *Extension) Name() string { return "coursework" }

// Init connects to the shared Canvas client.
func (e *Extension) Init(ctx extension.Context) error {
	e.client = ctx.Client()
	return nil
}

// Commands returns the course and assignment lookup commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newCoursesCmd(),
		e.newDashboardCmd(),
		e.newSearchCmd(),
		e.newAssignmentCmd(),
	}
}
