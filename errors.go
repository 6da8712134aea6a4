package lessonplan

import (
	"errors"
	"strings"
)

// Sentinel errors for generation.
var (
	ErrCredentialMissing = errors.New("credential not configured")
	ErrGeneration        = errors.New("lesson plan generation failed")
	ErrEmptyCompletion   = errors.New("completion returned no content")
)

// Sentinel errors for rendering.
var (
	ErrEmptyHTML          = errors.New("html content cannot be empty")
	ErrInvalidPageFormat  = errors.New("invalid page format")
	ErrBrowserNotFound    = errors.New("could not find a browser executable")
	ErrBrowserConnect     = errors.New("failed to connect to browser")
	ErrPageCreate         = errors.New("failed to create browser page")
	ErrPageLoad           = errors.New("failed to load page")
	ErrPDFGeneration      = errors.New("PDF generation failed")
	ErrDocumentAssembly   = errors.New("document assembly failed")
	ErrFallbackTemplating = errors.New("fallback template rendering failed")
)

// ValidationError reports the required lesson fields that were absent or empty.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}
