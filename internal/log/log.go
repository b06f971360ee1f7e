// Package log provides centralised audit logging for canvas-mcp operations.
// Logs are stored in ~/.canvas-mcp/log/canvas-mcp-log.db and record every
// CLI command and MCP tool invocation: what was asked, of which course, and
// whether it worked. Canvas response data is never recorded.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("mcp:get_assignment", "read").
//		Request(id).
//		Course(courseID).
//		Assignment(assignmentID).
//		Write(err)
//
//	log.Event("cli:search", "search").
//		Detail("query", query).
//		Detail("count", len(res.Matches)).
//		Write(err)
//
// The source parameter follows the format "cli:{command}" for CLI commands
// or "mcp:{tool}" for MCP tools.
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source     string // e.g., "cli:courses", "mcp:search_assignments"
	Action     string // verb: list, search, read
	RequestID  string // correlates an entry with stderr diagnostics
	Course     int    // input: course ID, 0 if none
	Assignment int    // input: assignment ID, 0 if none

	// Timing
	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool           // whether operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write]
// to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
//
// The source identifies where the operation originated:
//   - CLI commands: "cli:{command}" (e.g., "cli:courses")
//   - MCP tools: "mcp:{tool}" (e.g., "mcp:get_assignment")
//
// The action describes what operation was performed: "list", "search",
// "read", "auth".
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Request sets the invocation's request ID.
func (b *Builder) Request(id string) *Builder {
	b.entry.RequestID = id
	return b
}

// Course sets the course this operation targets.
func (b *Builder) Course(id int) *Builder {
	b.entry.Course = id
	return b
}

// Assignment sets the assignment this operation targets.
func (b *Builder) Assignment(id int) *Builder {
	b.entry.Assignment = id
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
//
// Use for operation-specific data that doesn't fit standard fields: search
// queries, result counts, output formats. Can be called multiple times.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry to the database, deriving success/failure from err.
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetHost sets the Canvas host recorded (hashed) with subsequent entries.
func SetHost(host string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.host = hash(host)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
