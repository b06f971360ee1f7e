// resources.go implements MCP resource handlers for assignment access.
//
// MCP resources provide read-only access via URI schemes, letting an LLM
// client load an assignment brief as context without calling a tool. The
// document is shorter than get_assignment's report: title, due date, points
// and the description as Markdown.
//
// Design: Resource URIs follow the pattern
// canvas://courses/{courseId}/assignments/{assignmentId}. Unlike tools,
// resource failures are returned as Go errors; mcp-go turns them into
// JSON-RPC errors for the client.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jpl-au/canvas-mcp/internal/format"
	"github.com/mark3labs/mcp-go/mcp"
)

// ErrInvalidURI indicates a malformed resource URI, helping clients
// debug URI construction issues.
var ErrInvalidURI = errors.New("invalid URI")

const assignmentScheme = "canvas://courses/"

// readAssignment handles canvas://courses/{courseId}/assignments/{assignmentId}
// resource requests.
func (h *handlers) readAssignment(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	courseID, assignmentID, err := parseAssignmentURI(uri)
	if err != nil {
		return nil, err
	}

	c := begin("assignment_resource", "read")
	c.event.Course(courseID).Assignment(assignmentID)
	defer func() { c.event.Write(err) }()

	a, err := h.api.Assignment(ctx, courseID, assignmentID)
	if err == nil && a == nil {
		err = fmt.Errorf("%w: course %d, assignment %d", errNotFound, courseID, assignmentID)
	}
	if err != nil {
		c.logger.Warn("reading assignment resource failed", "uri", uri, "error", err)
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/markdown",
			Text:     format.AssignmentDocument(a),
		},
	}, nil
}

// parseAssignmentURI extracts the course and assignment IDs from an
// assignment resource URI.
func parseAssignmentURI(uri string) (courseID, assignmentID int, err error) {
	rest, ok := strings.CutPrefix(uri, assignmentScheme)
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}

	course, assignment, ok := strings.Cut(rest, "/assignments/")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}

	if courseID, err = parseID(course); err != nil {
		return 0, 0, fmt.Errorf("%w: course id %q", ErrInvalidURI, course)
	}
	if assignmentID, err = parseID(assignment); err != nil {
		return 0, 0, fmt.Errorf("%w: assignment id %q", ErrInvalidURI, assignment)
	}
	return courseID, assignmentID, nil
}

func parseID(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}
