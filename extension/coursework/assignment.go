// assignment.go implements the "canvas-mcp assignment" command.
//
// Separated from the other commands to isolate terminal rendering: in a TTY
// the markdown report is rendered with glamour, otherwise (or with --raw)
// the report is printed exactly as get_assignment returns it.

package coursework

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/glamour"
	"github.com/jpl-au/canvas-mcp/cmd"
	"github.com/jpl-au/canvas-mcp/extension"
	"github.com/jpl-au/canvas-mcp/internal/format"
	"github.com/jpl-au/canvas-mcp/internal/htmltext"
	"github.com/jpl-au/canvas-mcp/internal/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (e *Extension) newAssignmentCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "assignment <course-id> <assignment-id>",
		Short: "Show assignment details",
		Long: `Show everything Canvas has for one assignment: dates, points, submission
rules, rubric, description and links.

  canvas-mcp assignment 1234 5678
  canvas-mcp assignment 1234 5678 --format text
  canvas-mcp assignment 1234 5678 --raw > brief.md`,
		Args: cobra.ExactArgs(2),
		RunE: e.runAssignment,
	}
	c.Flags().StringP(extension.FlagFormat, "f", string(htmltext.FormatMarkdown), "Description format: markdown, text, html")
	c.Flags().Bool(extension.FlagRaw, false, "Output raw markdown without rendering")
	_ = c.RegisterFlagCompletionFunc(extension.FlagFormat, func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, f := range htmltext.Formats() {
			names = append(names, string(f))
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	return c
}

func parseID(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive number", name, s)
	}
	return n, nil
}

func (e *Extension) runAssignment(c *cobra.Command, args []string) error {
	formatName, _ := c.Flags().GetString(extension.FlagFormat)
	raw, _ := c.Flags().GetBool(extension.FlagRaw)

	courseID, err := parseID("course ID", args[0])
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	assignmentID, err := parseID("assignment ID", args[1])
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	f, err := htmltext.ParseFormat(formatName)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	a, err := e.client.Assignment(c.Context(), courseID, assignmentID)
	if err == nil && a == nil {
		err = errors.New("assignment not found")
	}
	log.Event("cli:assignment", "read").Course(courseID).Assignment(assignmentID).Detail("format", string(f)).Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("assignment %d in course %d: %w", assignmentID, courseID, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(a)
	}

	var buf bytes.Buffer
	if err := format.Assignment(&buf, a, courseID, f); err != nil {
		return err
	}

	// Render with glamour if TTY, markdown and not --raw
	if f == htmltext.FormatMarkdown && !raw && term.IsTerminal(int(os.Stdout.Fd())) {
		rendered, renderErr := glamour.Render(buf.String(), "dark")
		if renderErr == nil {
			fmt.Fprint(cmd.Out(), rendered)
			return nil
		}
	}

	_, err = cmd.Out().Write(buf.Bytes())
	return err
}
