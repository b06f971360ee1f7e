// audit.go implements "canvas-mcp audit", which reads and prunes the local
// audit log of CLI commands and MCP tool calls.
//
// Design: audit is an offline command. It opens the log itself so entries
// recorded earlier can still be read after audit.enabled is switched off.
// Vacuum is destructive and asks for confirmation unless --force is given.

package core

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jpl-au/canvas-mcp/cmd"
	"github.com/jpl-au/canvas-mcp/extension"
	"github.com/jpl-au/canvas-mcp/internal/duration"
	"github.com/jpl-au/canvas-mcp/internal/log"
	"github.com/jpl-au/canvas-mcp/internal/vacuum"
	"github.com/spf13/cobra"
)

func newAuditCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "audit",
		Short: "Inspect or prune the local audit log",
		Long: `Inspect or prune the local audit log.

The log records which command or tool ran, against which course and
assignment, and whether it succeeded. Canvas data is never stored.

  canvas-mcp audit list                       # last 20 entries
  canvas-mcp audit list --source mcp:get_assignment
  canvas-mcp audit vacuum --older-than 30d    # delete old entries`,
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Show recent audit entries",
		Args:  cobra.NoArgs,
		RunE:  runAuditList,
	}
	list.Flags().IntP(extension.FlagLimit, "n", 20, "Maximum entries to show")
	list.Flags().String(extension.FlagSource, "", "Only entries from this source (e.g. cli:search)")

	vac := &cobra.Command{
		Use:   "vacuum",
		Short: "Permanently delete old audit entries",
		Long: `Permanently delete audit entries older than a duration.

Duration formats: 7d (days), 4w (weeks), 3m (months), or a Go duration like 36h.`,
		Args: cobra.NoArgs,
		RunE: runAuditVacuum,
	}
	vac.Flags().String(extension.FlagOlderThan, "", "Delete entries older than duration (e.g. 30d)")
	vac.Flags().BoolP(extension.FlagDryRun, "n", false, "Show what would be deleted")
	vac.Flags().BoolP(extension.FlagForce, "f", false, "Skip confirmation")
	_ = vac.MarkFlagRequired(extension.FlagOlderThan)

	c.AddCommand(list, vac)
	return c
}

func runAuditList(c *cobra.Command, _ []string) error {
	limit, _ := c.Flags().GetInt(extension.FlagLimit)
	source, _ := c.Flags().GetString(extension.FlagSource)

	if err := log.Open(); err != nil {
		return cmd.PrintJSONError(fmt.Errorf("open audit log: %w", err))
	}
	records, err := log.Recent(limit, source)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("read audit log: %w", err))
	}

	if cmd.JSON() {
		if records == nil {
			records = []log.Record{}
		}
		return cmd.PrintJSON(records)
	}
	if len(records) == 0 {
		fmt.Fprintln(cmd.Out(), "No audit entries.")
		return nil
	}
	for _, r := range records {
		status := "ok  "
		if !r.Success {
			status = "FAIL"
		}
		line := fmt.Sprintf("%s  %s  %-24s %s", r.Start.Format(time.DateTime), status, r.Source, r.Action)
		if r.Course != 0 {
			line += fmt.Sprintf(" course=%d", r.Course)
		}
		if r.Assignment != 0 {
			line += fmt.Sprintf(" assignment=%d", r.Assignment)
		}
		if r.Error != "" {
			line += ": " + firstLine(r.Error)
		}
		fmt.Fprintln(cmd.Out(), line)
	}
	return nil
}

func runAuditVacuum(c *cobra.Command, _ []string) error {
	olderThan, _ := c.Flags().GetString(extension.FlagOlderThan)
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)
	force, _ := c.Flags().GetBool(extension.FlagForce)

	d, err := duration.Parse(olderThan)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("parse duration: %w", err))
	}
	if err := log.Open(); err != nil {
		return cmd.PrintJSONError(fmt.Errorf("open audit log: %w", err))
	}

	opts := vacuum.Options{OlderThan: d, DryRun: dryRun}
	if !dryRun && !force && !cmd.JSON() {
		fmt.Fprintf(cmd.Out(), "Permanently delete audit entries older than %s? [y/N] ", olderThan)
		response, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && response == "" {
			return fmt.Errorf("reading confirmation: %w", err)
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(cmd.Out(), "Cancelled")
			return nil
		}
	}

	w := cmd.Out()
	if cmd.JSON() {
		w = nil
	}
	res, err := vacuum.Run(w, opts)
	log.Event("cli:audit", "vacuum").
		Detail("older_than", olderThan).
		Detail("dry_run", dryRun).
		Detail("count", res.Deleted).
		Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("vacuum: %w", err))
	}
	return cmd.PrintJSON(res)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
