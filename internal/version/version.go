// Package version provides build version information for canvas-mcp.
// Variables are set at build time via ldflags:
//
//	go build -ldflags="-X github.com/jpl-au/canvas-mcp/internal/version.Version=v1.0.0 \
//	  -X github.com/jpl-au/canvas-mcp/internal/version.GitCommit=abc123 \
//	  -X github.com/jpl-au/canvas-mcp/internal/version.BuildTime=2026-01-15T10:30:00Z"
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Build information. Set via ldflags at build time.
var (
	Version   = "dev"     // Version tag (e.g., "v1.0.0")
	GitCommit = "unknown" // Short git commit hash
	BuildTime = "unknown" // RFC3339 build timestamp
)

// Info holds structured version information.
type Info struct {
	BuildTag   string `json:"build_tag"`   // Version tag (e.g., "v1.0.0" or "dev")
	BuildTime  string `json:"build_time"`  // RFC3339 build timestamp
	GitCommit  string `json:"git_commit"`  // Short git commit hash
	GoVersion  string `json:"go_version"`  // Go runtime version
	Platform   string `json:"platform"`    // OS and architecture (e.g., "darwin arm64")
	MCPLibrary string `json:"mcp_library"` // mcp-go module version
}

// Get returns the current version information.
func Get() Info {
	return Info{
		BuildTag:   Version,
		BuildTime:  BuildTime,
		GitCommit:  GitCommit,
		GoVersion:  runtime.Version(),
		Platform:   fmt.Sprintf("%s %s", runtime.GOOS, runtime.GOARCH),
		MCPLibrary: depVersion("github.com/mark3labs/mcp-go"),
	}
}

// depVersion reports the version of a dependency compiled into the binary.
func depVersion(path string) string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, d := range bi.Deps {
		if d.Path == path {
			return d.Version
		}
	}
	return "unknown"
}

// String returns a formatted version string suitable for display.
func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Build Tag:    %s\n", i.BuildTag)
	fmt.Fprintf(&b, "Build Time:   %s\n", i.BuildTime)
	fmt.Fprintf(&b, "Go Version:   %s\n", i.GoVersion)
	fmt.Fprintf(&b, "Platform:     %s\n", i.Platform)
	fmt.Fprintf(&b, "Git Commit:   %s\n", i.GitCommit)
	fmt.Fprintf(&b, "MCP Library:  %s\n", i.MCPLibrary)
	return b.String()
}

// Short returns just the version string (e.g., "v1.0.0" or "dev").
func Short() string {
	return Version
}
