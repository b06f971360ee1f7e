// Package format renders Canvas data as plain-text reports.
//
// The same reports are returned to MCP clients and printed by the CLI, so
// they are deterministic and terse: optional fields that are absent produce
// no line at all rather than an "N/A" placeholder.
package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jpl-au/canvas-mcp/internal/canvas"
	"github.com/jpl-au/canvas-mcp/internal/dates"
	"github.com/jpl-au/canvas-mcp/internal/search"
	"github.com/mattn/go-runewidth"
)

// Messages for empty results.
const (
	NoCourses         = "No courses found."
	NoCoursesToSearch = "No courses found to search."
	NoAssignments     = "No assignments found matching your criteria."
	NoDashboard       = "No courses on the dashboard."
)

// points formats a point value without trailing zeros (10, 2.5).
func points(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// errWriter keeps the first write error so a report can be written with
// plain Fprintf calls and the error checked once at the end.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// Courses writes the course list report.
func Courses(out io.Writer, courses []canvas.Course) error {
	w := &errWriter{w: out}
	if len(courses) == 0 {
		fmt.Fprintln(w, NoCourses)
		return w.err
	}
	fmt.Fprintf(w, "Available courses (%d):\n\n", len(courses))
	for _, c := range courses {
		fmt.Fprintf(w, "- %s (ID: %d)\n", c.Name, c.ID)
		if c.CourseCode != "" {
			fmt.Fprintf(w, "  Code: %s\n", c.CourseCode)
		}
		if term := c.TermName(); term != "" {
			fmt.Fprintf(w, "  Term: %s\n", term)
		}
	}
	return w.err
}

// CourseTable writes courses as aligned columns for terminal display.
// Widths are measured in terminal cells so course names in CJK scripts or
// with emoji line up.
func CourseTable(out io.Writer, courses []canvas.Course) error {
	w := &errWriter{w: out}
	if len(courses) == 0 {
		fmt.Fprintln(w, NoCourses)
		return w.err
	}

	ids := make([]string, len(courses))
	idWidth, nameWidth := len("ID"), len("NAME")
	for i, c := range courses {
		ids[i] = strconv.Itoa(c.ID)
		idWidth = max(idWidth, len(ids[i]))
		nameWidth = max(nameWidth, runewidth.StringWidth(c.Name))
	}

	fmt.Fprintf(w, "%-*s  %s  %s\n", idWidth, "ID", runewidth.FillRight("NAME", nameWidth), "TERM")
	for i, c := range courses {
		term := c.TermName()
		if term == "" {
			term = "-"
		}
		fmt.Fprintf(w, "%-*s  %s  %s\n", idWidth, ids[i], runewidth.FillRight(c.Name, nameWidth), term)
	}
	return w.err
}

// Dashboard writes the dashboard card report.
func Dashboard(out io.Writer, cards []canvas.DashboardCard) error {
	w := &errWriter{w: out}
	if len(cards) == 0 {
		fmt.Fprintln(w, NoDashboard)
		return w.err
	}
	fmt.Fprintf(w, "Dashboard courses (%d):\n\n", len(cards))
	for _, c := range cards {
		name := c.ShortName
		if name == "" {
			name = c.OriginalName
		}
		fmt.Fprintf(w, "- %s (ID: %d)\n", name, c.ID)
		if c.OriginalName != "" && c.OriginalName != name {
			fmt.Fprintf(w, "  Full name: %s\n", c.OriginalName)
		}
		if c.CourseCode != "" {
			fmt.Fprintf(w, "  Code: %s\n", c.CourseCode)
		}
		if c.Term != "" {
			fmt.Fprintf(w, "  Term: %s\n", c.Term)
		}
	}
	return w.err
}

// Search writes the search report, including courses that could not be
// searched.
func Search(out io.Writer, res *search.Result) error {
	w := &errWriter{w: out}
	switch res.Empty() {
	case search.NoCourses:
		fmt.Fprintln(w, NoCoursesToSearch)
		return w.err
	case search.NoMatches:
		fmt.Fprintln(w, NoAssignments)
	default:
		searched := res.Courses - len(res.Failures)
		fmt.Fprintf(w, "Found %d %s across %d %s:\n",
			len(res.Matches), plural(len(res.Matches), "assignment", "assignments"),
			searched, plural(searched, "course", "courses"))
		for i, m := range res.Matches {
			fmt.Fprintf(w, "\n%d. %s\n", i+1, m.Name)
			fmt.Fprintf(w, "   Course: %s (ID: %d)\n", m.CourseName, m.CourseID)
			fmt.Fprintf(w, "   Assignment ID: %d\n", m.ID)
			fmt.Fprintf(w, "   Due: %s\n", dates.Format(m.DueAt, dates.Full))
			fmt.Fprintf(w, "   Points: %s\n", points(m.PointsPossible))
		}
	}

	if len(res.Failures) > 0 {
		fmt.Fprintf(w, "\nCould not search %d %s:\n", len(res.Failures), plural(len(res.Failures), "course", "courses"))
		for _, f := range res.Failures {
			fmt.Fprintf(w, "- %s (ID: %d): %v\n", f.CourseName, f.CourseID, f.Err)
		}
	}
	return w.err
}

// User writes a one-line description of the authenticated user.
func User(out io.Writer, u *canvas.User, host string) error {
	w := &errWriter{w: out}
	login := ""
	if u.LoginID != "" {
		login = " <" + u.LoginID + ">"
	}
	fmt.Fprintf(w, "Authenticated as %s%s (ID: %d) on %s\n", u.Name, login, u.ID, host)
	return w.err
}

// joinNames joins Canvas enum values for display, turning
// "online_text_entry" into "online text entry".
func joinNames(vals []string) string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = strings.ReplaceAll(v, "_", " ")
	}
	return strings.Join(out, ", ")
}
