// flags.go defines constants for CLI flag names shared across extensions.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "dry-run" -> FlagDryRun).

package extension

// Flag name constants for CLI commands.
const (
	FlagDryRun        = "dry-run"        // Preview without making changes
	FlagIncludeHidden = "include-hidden" // Include hidden manifests
	FlagLocal         = "local"          // Use local scope (gitignored)
	FlagShare         = "share"          // Mark as shared (committed)
)
