// tools_courses.go implements the course listing tools.
//
// Separated from tools_assignments.go because these tools make a single
// Canvas call each and carry no arguments beyond an enrollment filter.

package mcp

import (
	"context"
	"io"

	"github.com/jpl-au/canvas-mcp/internal/canvas"
	"github.com/jpl-au/canvas-mcp/internal/format"
	"github.com/mark3labs/mcp-go/mcp"
)

// listCourses handles list_courses tool calls.
func (h *handlers) listCourses(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state := canvas.Active
	if getBool(req, "include_ended", false) {
		state = canvas.All
	}

	var err error
	c := begin("list_courses", "list")
	c.event.Detail("state", string(state))
	defer func() { c.event.Write(err) }()

	courses, err := h.api.Courses(ctx, state)
	if err != nil {
		return c.fail("fetching courses", err), nil //nolint:nilerr
	}
	c.event.Detail("count", len(courses))

	return textResult(func(w io.Writer) error { return format.Courses(w, courses) })
}

// listDashboard handles list_dashboard tool calls.
func (h *handlers) listDashboard(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var err error
	c := begin("list_dashboard", "list")
	defer func() { c.event.Write(err) }()

	cards, err := h.api.DashboardCards(ctx)
	if err != nil {
		return c.fail("fetching dashboard", err), nil //nolint:nilerr
	}
	c.event.Detail("count", len(cards))

	return textResult(func(w io.Writer) error { return format.Dashboard(w, cards) })
}
