// tools_util.go provides helper functions for MCP tool parameter extraction
// and result construction.
//
// Separated to centralise the boilerplate of extracting typed parameters from
// MCP's generic argument map. These helpers provide safe defaults when
// optional parameters are missing.
//
// Design: We use permissive extraction (return default on error) rather than
// strict validation because MCP tools should be forgiving - an LLM omitting
// an optional parameter shouldn't cause cryptic errors. IDs are the exception:
// a missing course or assignment ID is reported by name.

package mcp

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jpl-au/canvas-mcp/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// getString extracts a string parameter from the MCP request, returning the
// provided default if the parameter is missing or cannot be parsed as a string.
func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// getBool extracts a boolean parameter from the MCP request arguments.
//
// JSON booleans decode as Go bool values, so a simple type assertion
// suffices. Returns the default if the parameter is missing or not a
// boolean, which handles an LLM passing "true" (string) instead of true.
func getBool(req mcp.CallToolRequest, name string, def bool) bool { //nolint:unparam
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	if v, ok := args[name].(bool); ok {
		return v
	}
	return def
}

// getInt extracts an integer parameter from the MCP request arguments.
//
// JSON numbers are decoded as float64, so we type assert to float64 and
// convert. Numeric strings are accepted too: Canvas IDs are often copied out
// of URLs and some clients send them quoted.
func getInt(req mcp.CallToolRequest, name string, def int) int { //nolint:unparam
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	switch v := args[name].(type) {
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

// requireID extracts a positive ID parameter, or an error result naming it.
func requireID(req mcp.CallToolRequest, name string) (int, *mcp.CallToolResult) {
	id := getInt(req, name, 0)
	if id <= 0 {
		return 0, mcp.NewToolResultError(fmt.Sprintf("%s is required and must be a positive number", name))
	}
	return id, nil
}

// call is the per-invocation state shared by every tool handler: an audit
// event and a logger carrying the same request ID.
type call struct {
	event  *log.Builder
	logger *slog.Logger
}

// begin starts an audited tool invocation.
func begin(tool, action string) *call {
	id := uuid.NewString()
	return &call{
		event:  log.Event("mcp:"+tool, action).Request(id),
		logger: slog.With("tool", tool, "request_id", id),
	}
}

// fail logs err and converts it to an error result prefixed with what was
// being attempted. The Canvas message is kept verbatim.
func (c *call) fail(what string, err error) *mcp.CallToolResult {
	c.logger.Warn(what+" failed", "error", err)
	return mcp.NewToolResultError(fmt.Sprintf("Error %s: %v", what, err))
}

// textResult renders a report into a text result.
func textResult(render func(io.Writer) error) (*mcp.CallToolResult, error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(strings.TrimRight(buf.String(), "\n")), nil
}
