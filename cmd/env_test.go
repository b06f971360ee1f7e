// Testing Strategy Design Decision:
//
// The cmd/ package contains CLI integration tests that exercise the full stack:
// command parsing -> extension -> Canvas client -> HTTP, against a fake Canvas
// served by httptest. The binary is built once and run with an isolated HOME,
// so the user's real config and audit log are never touched.
//
// Rendering details are covered by internal/format and internal/htmltext;
// these tests check that each command is wired to the right report.

package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the canvas-mcp binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "canvas-mcp-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "canvas-mcp"
		if os.PathSeparator == '\\' {
			binaryName = "canvas-mcp.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Find project root (parent of cmd/)
		wd := mustGetwd()
		projectRoot := filepath.Dir(wd)

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string
	home   string
	binary string
	env    []string
}

// newTestEnv creates an isolated home and working directory with
// credentials pointing at a fake Canvas.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	srv := httptest.NewServer(fakeCanvas())
	t.Cleanup(srv.Close)

	e := newOfflineEnv(t)
	e.env = append(e.env,
		"CANVAS_API_TOKEN=test-token-1234",
		"CANVAS_DOMAIN=school.test",
		"CANVAS_BASE_URL="+srv.URL,
	)
	return e
}

// newOfflineEnv creates an isolated environment with no Canvas credentials.
func newOfflineEnv(t *testing.T) *testEnv {
	t.Helper()

	home := t.TempDir()
	return &testEnv{
		t:      t,
		dir:    t.TempDir(),
		home:   home,
		binary: buildBinary(t),
		env: append(os.Environ(),
			"HOME="+home,
			"USERPROFILE="+home,
			"CANVAS_API_TOKEN=",
			"CANVAS_DOMAIN=",
			"CANVAS_HOST=",
			"CANVAS_BASE_URL=",
		),
	}
}

// run executes canvas-mcp with the given args and returns stdout.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	stdout, stderr, err := e.exec(args...)
	if err != nil {
		e.t.Fatalf("canvas-mcp %v failed: %v\nstdout: %s\nstderr: %s", args, err, stdout, stderr)
	}
	return stdout
}

// runErr executes canvas-mcp and returns stdout and stderr together, for
// checking error messages, along with any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	stdout, stderr, err := e.exec(args...)
	return stdout + stderr, err
}

// exec executes canvas-mcp and returns stdout and stderr separately.
func (e *testEnv) exec(args ...string) (stdout, stderr string, err error) {
	e.t.Helper()

	var outBuf, errBuf bytes.Buffer
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = e.env
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err = cmd.Run()
	return outBuf.String(), errBuf.String(), err
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// fakeCanvas serves two active courses and one concluded course. Course 2
// refuses assignment listing.
func fakeCanvas() http.Handler {
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}
	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer test-token-1234" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"errors":[{"message":"Invalid access token."}]}`))
				return
			}
			h(w, r)
		}
	}

	mux.HandleFunc("GET /api/v1/courses", authed(func(w http.ResponseWriter, r *http.Request) {
		courses := []map[string]any{
			{"id": 1, "name": "Biology 101", "course_code": "BIO101", "term": map[string]any{"name": "Fall 2024"}},
			{"id": 2, "name": "Chemistry", "course_code": "CHEM"},
		}
		if r.URL.Query().Get("enrollment_state") == "" {
			courses = append(courses, map[string]any{"id": 3, "name": "Ancient History"})
		}
		writeJSON(w, courses)
	}))
	mux.HandleFunc("GET /api/v1/courses/{id}", authed(func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "1" {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, map[string]any{"id": 1, "name": "Biology 101"})
	}))
	mux.HandleFunc("GET /api/v1/courses/{id}/assignments", authed(func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "1" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		writeJSON(w, []map[string]any{
			{"id": 10, "name": "Lab Report", "due_at": "2024-03-01T12:00:00Z", "points_possible": 20},
			{"id": 11, "name": "Cell Essay", "description": "<p>Write about mitochondria</p>", "points_possible": 50},
		})
	}))
	mux.HandleFunc("GET /api/v1/courses/{id}/assignments/{aid}", authed(func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "1" || r.PathValue("aid") != "11" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"errors":[{"message":"The specified resource does not exist."}]}`))
			return
		}
		writeJSON(w, map[string]any{
			"id": 11, "name": "Cell Essay", "points_possible": 50, "published": true,
			"description":      `<p>Write about <a href="https://ex.com/mito">mitochondria</a>.</p>`,
			"submission_types": []string{"online_text_entry"},
		})
	}))
	mux.HandleFunc("GET /api/v1/dashboard/dashboard_cards", authed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, []map[string]any{{"id": 1, "shortName": "Bio", "originalName": "Biology 101"}})
	}))
	mux.HandleFunc("GET /api/v1/users/self", authed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"id": 99, "name": "Sam Student", "login_id": "sam"})
	}))
	return mux
}
