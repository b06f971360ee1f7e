// assignment.go renders the assignment detail report and the assignment
// resource document.
//
// Each optional section is written only when its source field is present
// (or true). Canvas assignments carry dozens of flags that are off for most
// assignments, and listing them all would bury the few that matter.

package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/jpl-au/canvas-mcp/internal/canvas"
	"github.com/jpl-au/canvas-mcp/internal/dates"
	"github.com/jpl-au/canvas-mcp/internal/htmltext"
)

// NoDescription is shown in place of an empty description.
const NoDescription = "No description provided."

// Assignment writes the detail report for a, rendering the description in
// format f.
func Assignment(out io.Writer, a *canvas.Assignment, courseID int, f htmltext.Format) error {
	w := &errWriter{w: out}
	fmt.Fprintf(w, "# %s\n\n", a.Name)
	fmt.Fprintf(w, "Course ID: %d\n", courseID)
	fmt.Fprintf(w, "Assignment ID: %d\n", a.ID)
	if a.Published {
		fmt.Fprintln(w, "Status: Published")
	} else {
		fmt.Fprintln(w, "Status: Unpublished")
	}
	fmt.Fprintf(w, "Due: %s\n", dates.Format(a.DueAt, dates.Full))
	fmt.Fprintf(w, "Points Possible: %s\n", points(a.PointsPossible))
	if a.GradingType != "" {
		fmt.Fprintf(w, "Grading Type: %s\n", joinNames([]string{a.GradingType}))
	}
	if len(a.SubmissionTypes) > 0 {
		fmt.Fprintf(w, "Submission Types: %s\n", joinNames(a.SubmissionTypes))
	}
	if len(a.AllowedExtensions) > 0 {
		fmt.Fprintf(w, "Allowed Extensions: %s\n", strings.Join(a.AllowedExtensions, ", "))
	}
	if a.AllowedAttempts != nil && *a.AllowedAttempts != -1 {
		fmt.Fprintf(w, "Allowed Attempts: %d\n", *a.AllowedAttempts)
	}

	writeRestrictions(w, a)

	if a.ExternalTool != nil && a.ExternalTool.URL != "" {
		tab := ""
		if a.ExternalTool.NewTab {
			tab = " (opens in new tab)"
		}
		fmt.Fprintf(w, "External Tool: %s%s\n", a.ExternalTool.URL, tab)
	}
	if p := plagiarism(a); p != "" {
		fmt.Fprintf(w, "Plagiarism Detection: %s\n", p)
	}
	if a.HTMLURL != "" {
		fmt.Fprintf(w, "URL: %s\n", a.HTMLURL)
	}

	fmt.Fprintln(w, "\n## Description")
	fmt.Fprintln(w)
	desc := htmltext.Render(a.Description, f)
	if strings.TrimSpace(desc) == "" {
		desc = NoDescription
	}
	fmt.Fprintln(w, desc)

	if len(a.Rubric) > 0 {
		fmt.Fprintln(w, "\n## Rubric")
		fmt.Fprintln(w)
		for _, r := range a.Rubric {
			fmt.Fprintf(w, "- %s (%s pts)", r.Description, points(r.Points))
			if r.LongDescription != "" {
				fmt.Fprintf(w, ": %s", r.LongDescription)
			}
			fmt.Fprintln(w)
		}
	}

	if reqs := requirements(a); len(reqs) > 0 {
		fmt.Fprintln(w, "\n## Special Requirements")
		fmt.Fprintln(w)
		for _, r := range reqs {
			fmt.Fprintf(w, "- %s\n", r)
		}
	}

	if a.LockedForUser && a.LockExplanation != "" {
		fmt.Fprintf(w, "\nLocked: %s\n", a.LockExplanation)
	}

	if f != htmltext.FormatHTML {
		if links := htmltext.Links(a.Description); len(links) > 0 {
			fmt.Fprintln(w, "\n## Links")
			fmt.Fprintln(w)
			for _, l := range links {
				writeLink(w, l, f)
			}
		}
	}
	return w.err
}

// writeRestrictions writes availability windows, group and peer review
// settings, and word count limits.
func writeRestrictions(w io.Writer, a *canvas.Assignment) {
	if a.UnlockAt != nil && *a.UnlockAt != "" {
		fmt.Fprintf(w, "Available From: %s\n", dates.Format(a.UnlockAt, dates.Full))
	}
	if a.LockAt != nil && *a.LockAt != "" {
		fmt.Fprintf(w, "Available Until: %s\n", dates.Format(a.LockAt, dates.Full))
	}
	if a.OnlyVisibleToOverrides {
		fmt.Fprintln(w, "Visibility: Assigned students only")
	}
	if a.HasGroupCategory {
		fmt.Fprintln(w, "Group Assignment: Yes")
	}
	if a.PeerReviews {
		detail := ""
		switch {
		case a.AutomaticPeerReviews && a.PeerReviewCount > 0:
			detail = fmt.Sprintf(" (%d per student, assigned automatically)", a.PeerReviewCount)
		case a.AutomaticPeerReviews:
			detail = " (assigned automatically)"
		case a.PeerReviewCount > 0:
			detail = fmt.Sprintf(" (%d per student)", a.PeerReviewCount)
		}
		fmt.Fprintf(w, "Peer Reviews: Required%s\n", detail)
	}
	if a.WordCountEnabled {
		switch {
		case a.WordCountMin != nil && a.WordCountMax != nil:
			fmt.Fprintf(w, "Word Count: %d-%d words\n", *a.WordCountMin, *a.WordCountMax)
		case a.WordCountMin != nil:
			fmt.Fprintf(w, "Word Count: at least %d words\n", *a.WordCountMin)
		case a.WordCountMax != nil:
			fmt.Fprintf(w, "Word Count: at most %d words\n", *a.WordCountMax)
		default:
			fmt.Fprintln(w, "Word Count: Required")
		}
	}
}

func plagiarism(a *canvas.Assignment) string {
	var tools []string
	if a.TurnitinEnabled {
		tools = append(tools, "Turnitin")
	}
	if a.VericiteEnabled {
		tools = append(tools, "VeriCite")
	}
	return strings.Join(tools, ", ")
}

func requirements(a *canvas.Assignment) []string {
	var reqs []string
	if a.AnonymizeStudents {
		reqs = append(reqs, "Anonymous grading: student names are hidden from graders")
	}
	if a.RequireLockdownBrowser {
		reqs = append(reqs, "Requires LockDown Browser")
	}
	return reqs
}

func writeLink(w io.Writer, l htmltext.Link, f htmltext.Format) {
	text := l.Text
	if text == "" {
		text = l.Href
	}
	switch {
	case l.Href == "":
		fmt.Fprintf(w, "- %s\n", text)
	case f == htmltext.FormatText:
		fmt.Fprintf(w, "- %s: %s\n", text, l.Href)
	default:
		fmt.Fprintf(w, "- [%s](%s)\n", text, l.Href)
	}
}

// AssignmentDocument returns the Markdown document served for the
// assignment resource: title, due date and points, then the description.
func AssignmentDocument(a *canvas.Assignment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", a.Name)
	fmt.Fprintf(&b, "**Due:** %s | **Points:** %s\n\n", dates.Format(a.DueAt, dates.Full), points(a.PointsPossible))
	desc := htmltext.Markdown(a.Description)
	if desc == "" {
		desc = "_" + NoDescription + "_"
	}
	b.WriteString(desc)
	b.WriteString("\n")
	return b.String()
}
