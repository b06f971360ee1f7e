// search.go implements the "canvas-mcp search" command.
//
// Design: positional arguments are joined into one query so
// "canvas-mcp search lab report" and "canvas-mcp search 'lab report'"
// behave the same. Per-course failures are printed with the results and do
// not change the exit status, matching search_assignments.

package coursework

import (
	"fmt"
	"strings"

	"github.com/jpl-au/canvas-mcp/cmd"
	"github.com/jpl-au/canvas-mcp/extension"
	"github.com/jpl-au/canvas-mcp/internal/format"
	"github.com/jpl-au/canvas-mcp/internal/log"
	"github.com/jpl-au/canvas-mcp/internal/progress"
	"github.com/jpl-au/canvas-mcp/internal/search"
	"github.com/spf13/cobra"
)

func (e *Extension) newSearchCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "search [query...]",
		Short: "Search assignments across courses",
		Long: `Search assignments by keyword and due date.

Any word of the query may match an assignment's title or description.
An empty query (or *) matches every assignment.

  canvas-mcp search essay
  canvas-mcp search --before 2024-05-01 --after 2024-04-01
  canvas-mcp search lab --course 1234`,
		RunE: e.runSearch,
	}
	c.Flags().String(extension.FlagBefore, "", "Due on or before (YYYY-MM-DD)")
	c.Flags().String(extension.FlagAfter, "", "Due on or after (YYYY-MM-DD)")
	c.Flags().Bool(extension.FlagCompleted, false, "Also search concluded courses")
	c.Flags().Int(extension.FlagCourse, 0, "Only search this course ID")
	return c
}

// searchJSON is the -o json shape of a search result.
type searchJSON struct {
	Courses  int            `json:"courses"`
	Matches  []search.Match `json:"matches"`
	Failures []failureJSON  `json:"failures,omitempty"`
}

type failureJSON struct {
	CourseID   int    `json:"course_id"`
	CourseName string `json:"course_name"`
	Error      string `json:"error"`
}

func (e *Extension) runSearch(c *cobra.Command, args []string) error {
	before, _ := c.Flags().GetString(extension.FlagBefore)
	after, _ := c.Flags().GetString(extension.FlagAfter)
	completed, _ := c.Flags().GetBool(extension.FlagCompleted)
	course, _ := c.Flags().GetInt(extension.FlagCourse)

	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		query = search.Wildcard
	}

	opts := search.Options{
		Query:            query,
		DueBefore:        before,
		DueAfter:         after,
		IncludeCompleted: completed,
		CourseID:         course,
	}

	l := log.Event("cli:search", "search").Course(course).Detail("query", query)
	spin := progress.NewSpinner("Searching courses")
	spin.Start()
	res, err := search.Run(c.Context(), e.client, opts)
	spin.Stop()
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("search: %w", err))
	}
	l.Detail("count", len(res.Matches)).Detail("failures", len(res.Failures)).Write(nil)

	if cmd.JSON() {
		out := searchJSON{Courses: res.Courses, Matches: res.Matches}
		if out.Matches == nil {
			out.Matches = []search.Match{}
		}
		for _, f := range res.Failures {
			out.Failures = append(out.Failures, failureJSON{CourseID: f.CourseID, CourseName: f.CourseName, Error: f.Err.Error()})
		}
		return cmd.PrintJSON(out)
	}
	return format.Search(cmd.Out(), res)
}
