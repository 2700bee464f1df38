package errors

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// ValidateDescriptorID validates a descriptor id supplied on the command line
// or in a render request.
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - No control characters
//   - Maximum length of 128 characters
func ValidateDescriptorID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "descriptor id cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "descriptor id too long (max 128 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "descriptor id contains invalid control characters")
		}
	}
	return nil
}

// ValidateOutputPath validates a file path an artifact will be written to.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "output path must name a file, not a directory")
	}

	return nil
}

// artifactNameRegex matches characters that are safe in generated file names.
var artifactNameRegex = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SafeFileName reduces an arbitrary descriptor id to a string that is safe
// to embed in a file name. Runs of unsafe characters collapse to "_".
func SafeFileName(id string) string {
	s := artifactNameRegex.ReplaceAllString(id, "_")
	s = strings.Trim(s, "._")
	if s == "" {
		return "untitled"
	}
	return s
}
