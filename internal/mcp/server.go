// Package mcp implements the Model Context Protocol server, exposing Canvas
// LMS course and assignment lookups to LLMs. This lets AI assistants answer
// "what is due this week" without the student copying pages out of Canvas.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/jpl-au/canvas-mcp/internal/canvas"
	"github.com/jpl-au/canvas-mcp/internal/config"
	"github.com/jpl-au/canvas-mcp/internal/log"
	"github.com/jpl-au/canvas-mcp/internal/search"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// API is the part of the Canvas client the handlers use.
type API interface {
	search.Source
	Assignment(ctx context.Context, courseID, assignmentID int) (*canvas.Assignment, error)
	DashboardCards(ctx context.Context) ([]canvas.DashboardCard, error)
	Self(ctx context.Context) (*canvas.User, error)
}

// Serve starts the MCP server over stdio, enabling LLM integration.
// Uses stdio transport for compatibility with Claude Desktop and other MCP clients.
//
// Design: The server starts even when the token or host is missing. Every
// tool then returns the configuration error, which tells the user exactly
// which setting to add, rather than the client showing a dead server.
func Serve(cfg *config.Config) error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if cfg.AuditEnabled() {
		if err := log.Open(); err != nil {
			slog.Warn("audit log unavailable", "path", log.DBPath(), "error", err)
		} else {
			log.SetHost(cfg.Host())
			defer log.Close()
		}
	}

	client := canvas.New(cfg)
	checkAuth(context.Background(), client)

	s := NewServer(client)

	slog.Info("canvas MCP server ready", "version", Version, "transport", "stdio", "host", client.Host())

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// NewServer returns an MCP server with every tool and resource registered
// against api.
func NewServer(api API) *server.MCPServer {
	h := &handlers{api: api}

	s := server.NewMCPServer(
		"canvas-mcp",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)

	registerResources(s, h)
	registerTools(s, h)
	return s
}

// checkAuth logs who the configured token belongs to. A failure is logged
// and otherwise ignored: the server stays up so tools can report the problem.
func checkAuth(ctx context.Context, api API) {
	u, err := api.Self(ctx)
	l := log.Event("mcp:serve", "auth")
	defer func() { l.Write(err) }()

	if err != nil {
		if errors.Is(err, canvas.ErrConfiguration) {
			slog.Warn("canvas not configured", "error", err)
			return
		}
		slog.Warn("canvas authentication check failed", "status", canvas.StatusCode(err), "error", err)
		return
	}
	if u == nil {
		return
	}
	slog.Info("authenticated with canvas", "user", u.Name, "user_id", u.ID)
}

// handlers provides MCP request handlers with access to Canvas.
type handlers struct {
	api API
}

// registerResources adds URI-based access to assignment descriptions.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"canvas://courses/{courseId}/assignments/{assignmentId}",
			"Assignment",
			mcp.WithTemplateDescription("Assignment title, due date, points and description as Markdown"),
			mcp.WithTemplateMIMEType("text/markdown"),
		),
		h.readAssignment,
	)
}

// registerTools exposes Canvas lookups as MCP tools for LLM invocation.
func registerTools(s *server.MCPServer, h *handlers) {
	// Courses
	s.AddTool(
		mcp.NewTool("list_courses",
			mcp.WithDescription("List the courses you are enrolled in, with their IDs, codes and terms"),
			mcp.WithBoolean("include_ended", mcp.Description("Include concluded and inactive courses (default: active only)")),
		),
		h.listCourses,
	)

	// Dashboard
	s.AddTool(
		mcp.NewTool("list_dashboard",
			mcp.WithDescription("List the courses shown on your Canvas dashboard"),
		),
		h.listDashboard,
	)

	// Search
	s.AddTool(
		mcp.NewTool("search_assignments",
			mcp.WithDescription("Search assignments across your courses by keyword and due date. Any search term may match the title or description."),
			mcp.WithString("query", mcp.Description("Search terms, separated by spaces (default: * for all assignments)")),
			mcp.WithString("due_before", mcp.Description("Only assignments due on or before this date (YYYY-MM-DD)")),
			mcp.WithString("due_after", mcp.Description("Only assignments due on or after this date (YYYY-MM-DD)")),
			mcp.WithBoolean("include_completed", mcp.Description("Also search concluded courses")),
			mcp.WithNumber("course_id", mcp.Description("Only search this course")),
		),
		h.searchAssignments,
	)

	// Assignment detail
	s.AddTool(
		mcp.NewTool("get_assignment",
			mcp.WithDescription("Get full details of an assignment: dates, points, submission rules, rubric and description"),
			mcp.WithNumber("course_id", mcp.Required(), mcp.Description("Course ID")),
			mcp.WithNumber("assignment_id", mcp.Required(), mcp.Description("Assignment ID")),
			mcp.WithString("format", mcp.Description("Description format: markdown, text or html (default: markdown)")),
		),
		h.getAssignment,
	)
}
