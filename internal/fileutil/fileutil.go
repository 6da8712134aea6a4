// Package fileutil holds the temp-file and existence helpers used by the renderer.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// tempPattern prefixes every document written for the browser.
const tempPattern = "lessonplan-*."

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
)

// createTemp is swapped in tests to simulate a full disk.
var createTemp = os.CreateTemp

// WriteTempFile writes content to a new temp file with the given extension.
// The returned cleanup removes the file and is safe to call more than once.
func WriteTempFile(content, extension string) (path string, cleanup func(), err error) {
	if err := ValidateExtension(extension); err != nil {
		return "", nil, err
	}

	tmpFile, err := createTemp("", tempPattern+extension)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}

	path = tmpFile.Name()
	cleanup = func() { _ = os.Remove(path) }

	if _, writeErr := tmpFile.WriteString(content); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", writeErr)
	}
	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp file: %w", closeErr)
	}

	return path, cleanup, nil
}

// ValidateExtension rejects extensions that would escape the temp directory.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// FileExists reports whether path exists and is not a directory.
func FileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// TempDirWritable reports whether the system temp directory accepts new files.
func TempDirWritable() bool {
	path, cleanup, err := WriteTempFile("probe", "tmp")
	if err != nil {
		return false
	}
	defer cleanup()
	return FileExists(path)
}
