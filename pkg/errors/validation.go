package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateSourcePath validates a source file path before it is opened.
//
// The validation rules are intentionally conservative:
//   - No empty paths
//   - No control characters or null bytes
//   - Maximum length of 4096 characters
//
// Existence is checked by the caller so that a missing file can be reported
// with [ErrCodeFileNotFound].
func ValidateSourcePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "source path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "source path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "source path contains invalid characters")
		}
	}
	return nil
}

// IsPythonFile reports whether path has a .py extension (case-insensitive).
func IsPythonFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".py")
}

// ValidateOutputPath validates an output path against the requested format.
// An empty path is valid (the caller derives a default). A path whose
// extension names a different known format is rejected so that, for example,
// PNG bytes are never written to "chart.svg".
func ValidateOutputPath(path, format string) error {
	if path == "" {
		return nil
	}
	for _, r := range path {
		if r == '\x00' {
			return New(ErrCodeInvalidPath, "output path contains a null byte")
		}
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "png", "svg", "pdf":
		if ext != format {
			return New(ErrCodeInvalidPath, "output path %q does not match format %q", path, format)
		}
	}
	return nil
}
