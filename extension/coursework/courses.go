// courses.go implements the "canvas-mcp courses" and "canvas-mcp dashboard"
// commands.

package coursework

import (
	"fmt"

	"github.com/jpl-au/canvas-mcp/cmd"
	"github.com/jpl-au/canvas-mcp/extension"
	"github.com/jpl-au/canvas-mcp/internal/canvas"
	"github.com/jpl-au/canvas-mcp/internal/format"
	"github.com/jpl-au/canvas-mcp/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newCoursesCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "courses",
		Short: "List your courses",
		Long: `List the courses you are enrolled in.

  canvas-mcp courses          # active courses
  canvas-mcp courses --all    # include concluded courses
  canvas-mcp courses --table  # aligned columns`,
		Args: cobra.NoArgs,
		RunE: e.runCourses,
	}
	c.Flags().BoolP(extension.FlagAll, "A", false, "Include concluded and inactive courses")
	c.Flags().Bool(extension.FlagTable, false, "Print an aligned ID/name/term table")
	return c
}

func (e *Extension) runCourses(c *cobra.Command, _ []string) error {
	all, _ := c.Flags().GetBool(extension.FlagAll)
	table, _ := c.Flags().GetBool(extension.FlagTable)

	state := canvas.Active
	if all {
		state = canvas.All
	}

	courses, err := e.client.Courses(c.Context(), state)
	log.Event("cli:courses", "list").Detail("state", string(state)).Detail("count", len(courses)).Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("courses: %w", err))
	}

	switch {
	case cmd.JSON():
		if courses == nil {
			courses = []canvas.Course{}
		}
		return cmd.PrintJSON(courses)
	case table:
		return format.CourseTable(cmd.Out(), courses)
	default:
		return format.Courses(cmd.Out(), courses)
	}
}

func (e *Extension) newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "List your dashboard courses",
		Long:  `List the course cards on your Canvas dashboard, with their nicknames.`,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			cards, err := e.client.DashboardCards(c.Context())
			log.Event("cli:dashboard", "list").Detail("count", len(cards)).Write(err)
			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("dashboard: %w", err))
			}
			if cmd.JSON() {
				if cards == nil {
					cards = []canvas.DashboardCard{}
				}
				return cmd.PrintJSON(cards)
			}
			return format.Dashboard(cmd.Out(), cards)
		},
	}
}
