// tools_assignments.go implements the assignment search and detail tools.
//
// Both tools share the report renderers in internal/format with the CLI, so
// an LLM and a user at the terminal see the same text for the same query.
//
// Design: search_assignments treats per-course failures as part of the
// answer, not as a tool error. A student with one locked course still gets
// results from the others, with the failed course named at the end.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jpl-au/canvas-mcp/internal/format"
	"github.com/jpl-au/canvas-mcp/internal/htmltext"
	"github.com/jpl-au/canvas-mcp/internal/search"
	"github.com/mark3labs/mcp-go/mcp"
)

// errNotFound is reported when Canvas returns an empty assignment body.
var errNotFound = errors.New("assignment not found")

// searchAssignments handles search_assignments tool calls.
func (h *handlers) searchAssignments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts := search.Options{
		Query:            getString(req, "query", search.Wildcard),
		DueBefore:        getString(req, "due_before", ""),
		DueAfter:         getString(req, "due_after", ""),
		IncludeCompleted: getBool(req, "include_completed", false),
		CourseID:         getInt(req, "course_id", 0),
	}

	var err error
	c := begin("search_assignments", "search")
	c.event.Course(opts.CourseID).
		Detail("query", opts.Query).
		Detail("due_before", opts.DueBefore).
		Detail("due_after", opts.DueAfter).
		Detail("include_completed", opts.IncludeCompleted)
	defer func() { c.event.Write(err) }()

	res, err := search.Run(ctx, h.api, opts)
	if err != nil {
		return c.fail("searching assignments", err), nil //nolint:nilerr
	}
	c.event.Detail("courses", res.Courses).
		Detail("count", len(res.Matches)).
		Detail("failures", len(res.Failures))

	return textResult(func(w io.Writer) error { return format.Search(w, res) })
}

// getAssignment handles get_assignment tool calls.
func (h *handlers) getAssignment(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	courseID, bad := requireID(req, "course_id")
	if bad != nil {
		return bad, nil
	}
	assignmentID, bad := requireID(req, "assignment_id")
	if bad != nil {
		return bad, nil
	}
	f, err := htmltext.ParseFormat(getString(req, "format", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil //nolint:nilerr
	}

	c := begin("get_assignment", "read")
	c.event.Course(courseID).Assignment(assignmentID).Detail("format", string(f))
	defer func() { c.event.Write(err) }()

	a, err := h.api.Assignment(ctx, courseID, assignmentID)
	if err == nil && a == nil {
		err = fmt.Errorf("%w: course %d, assignment %d", errNotFound, courseID, assignmentID)
	}
	if err != nil {
		return c.fail("fetching assignment", err), nil //nolint:nilerr
	}

	return textResult(func(w io.Writer) error { return format.Assignment(w, a, courseID, f) })
}
