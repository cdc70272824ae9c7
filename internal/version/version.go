package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/relink/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/relink/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/relink/internal/version.Date={{.Date}}
)

// Info is the one-line build description printed by `relink version`.
func Info() string {
	return "relink " + Version + " (commit " + Commit + ", built " + Date + ")"
}
