package main

import (
	"errors"
	"os"

	ndagen "github.com/cultivatedynamics/go-ndagen"
	"github.com/cultivatedynamics/go-ndagen/internal/hints"
)

// Exit codes for the ndagen CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Document written or check passed
	ExitGeneral = 1 // General error, missing writer capability, failed verification
	ExitUsage   = 2 // Invalid flags or arguments
	ExitIO      = 3 // Output not writable, input not readable
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Missing capability is reported as a general failure
	if errors.Is(err, ndagen.ErrMissingCapability) {
		return ExitGeneral
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ndagen.ErrWriteDocument) ||
		errors.Is(err, ndagen.ErrReadDocument) {
		return ExitIO
	}

	// Usage errors (exit 2)
	if errors.Is(err, ErrUsage) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns the hint appended to an error message, or "".
func hintFor(err error, env *Environment) string {
	switch {
	case errors.Is(err, ndagen.ErrMissingCapability):
		return hints.ForMissingCapability()
	case errors.Is(err, ndagen.ErrWriteDocument):
		return hints.ForOutputDirectory()
	case errors.Is(err, ndagen.ErrTemplate):
		return hints.ForTemplate(env.templateNames())
	}
	return ""
}
