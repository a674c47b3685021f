// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"

	"github.com/cultivatedynamics/go-ndagen/internal/fileutil"
)

// InstallCommand reinstalls the CLI from source.
const InstallCommand = "go install github.com/cultivatedynamics/go-ndagen/cmd/ndagen@latest"

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForMissingCapability returns installation guidance when the document
// writer is unusable.
func ForMissingCapability() string {
	return formatHints([]string{
		"run 'ndagen doctor' for details",
		"reinstall with '" + InstallCommand + "'",
	})
}

// ForOutputDirectory returns hints for output write errors.
// Inside a container the working directory is often read-only.
func ForOutputDirectory() string {
	hints := []string{"check parent directory exists and is writable", "or choose another path with --output"}
	if IsInContainer() {
		hints = append(hints, "mount a writable volume for the output directory")
	}
	return formatHints(hints)
}

// ForTemplate returns a hint for a template that fails to load. The template
// is compiled into the binary, so only a rebuild fixes it.
func ForTemplate(available []string) string {
	hints := []string{"the agreement template is embedded at build time; reinstall ndagen"}
	if len(available) > 0 {
		hints = append(hints, "available: "+strings.Join(available, ", "))
	}
	return formatHints(hints)
}

// ForVerify returns a hint for a document that fails verification.
func ForVerify() string {
	return format("regenerate it with 'ndagen generate -o <path>'")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
