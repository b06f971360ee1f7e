// Package vacuum removes old entries from the audit log. Entries are
// otherwise kept forever, so long-running MCP installs grow the database
// without bound.
package vacuum

import (
	"fmt"
	"io"
	"time"

	"github.com/jpl-au/canvas-mcp/internal/log"
	"github.com/jpl-au/canvas-mcp/internal/progress"
)

// Options configures which entries are removed.
type Options struct {
	OlderThan time.Duration // Entries that started longer ago than this
	DryRun    bool          // Count without deleting
}

// Result reports what was (or would be) deleted.
type Result struct {
	Deleted int64     `json:"deleted"`
	DryRun  bool      `json:"dry_run"`
	Cutoff  time.Time `json:"cutoff"`
}

// Run prunes the audit log. The logger must already be open.
func Run(w io.Writer, opts Options) (Result, error) {
	res := Result{DryRun: opts.DryRun, Cutoff: time.Now().Add(-opts.OlderThan)}

	if opts.DryRun {
		n, err := log.CountBefore(res.Cutoff)
		if err != nil {
			return res, err
		}
		res.Deleted = n
		if w != nil {
			fmt.Fprintf(w, "Would delete %d audit %s older than %s\n", n, entries(n), res.Cutoff.Format(time.DateTime))
		}
		return res, nil
	}

	spin := progress.NewSpinner("Vacuuming audit log")
	spin.Start()
	n, err := log.PruneBefore(res.Cutoff)
	spin.Stop()
	if err != nil {
		return res, err
	}

	res.Deleted = n
	if w != nil {
		if n == 0 {
			fmt.Fprintln(w, "No audit entries to vacuum")
		} else {
			fmt.Fprintf(w, "Vacuumed %d audit %s\n", n, entries(n))
		}
	}
	return res, nil
}

func entries(n int64) string {
	if n == 1 {
		return "entry"
	}
	return "entries"
}
