package main

import (
	"errors"
	"os"

	lessonplan "github.com/alnah/go-lessonplan"
	"github.com/alnah/go-lessonplan/internal/assets"
	"github.com/alnah/go-lessonplan/internal/config"
	"github.com/alnah/go-lessonplan/internal/llm"
)

// Exit codes for the lessonplan CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Clean shutdown or successful command
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Address in use, permission denied, unreadable assets
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, llm.ErrUnknownProvider) ||
		errors.Is(err, llm.ErrInvalidEndpoint) ||
		errors.Is(err, lessonplan.ErrInvalidPageFormat) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, ErrUsage) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, assets.ErrAssetRead) ||
		errors.Is(err, ErrListen) {
		return ExitIO
	}

	return ExitGeneral
}
