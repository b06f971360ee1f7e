// flags.go defines constants for all CLI flag names.
//
// Using constants instead of string literals prevents typos and enables
// compile-time checking when flag names are used in both Flags().Type()
// definitions and GetType() calls.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "due-before" -> FlagDueBefore).

package extension

// Flag name constants for CLI commands.
const (
	// Boolean flags

	FlagAll       = "all"       // Include concluded courses
	FlagCompleted = "completed" // Search concluded courses too
	FlagDryRun    = "dry-run"   // Preview without deleting
	FlagForce     = "force"     // Skip confirmation prompt
	FlagLocal     = "local"     // Use local config scope
	FlagRaw       = "raw"       // Raw output without terminal rendering
	FlagTable     = "table"     // Aligned column output

	// Value flags

	FlagAfter     = "after"      // Due on or after date
	FlagBefore    = "before"     // Due on or before date
	FlagCourse    = "course"     // Restrict to one course ID
	FlagFormat    = "format"     // Description format
	FlagLimit     = "limit"      // Maximum entries to show
	FlagOlderThan = "older-than" // Retention cutoff duration
	FlagSource    = "source"     // Filter audit entries by source
)
