package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateCourseID validates an opaque course identifier.
// IDs come from scraped catalog data, so the rules are intentionally
// conservative rather than format-specific:
//   - No empty IDs
//   - No control characters or null bytes
//   - Maximum length of 128 characters
func ValidateCourseID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidCourse, "course id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidCourse, "course id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidCourse, "course id contains invalid control characters")
		}
	}

	return nil
}

// courseCodeRegex matches human-readable course codes such as "CSE 214" or
// "AMS101". A department prefix of 2-4 uppercase letters, an optional space,
// a 3-digit number, and an optional trailing letter.
var courseCodeRegex = regexp.MustCompile(`^[A-Z]{2,4} ?\d{3}[A-Z]?$`)

// ValidateCourseCode validates a human-readable course code.
func ValidateCourseCode(code string) error {
	if code == "" {
		return New(ErrCodeInvalidCourse, "course code cannot be empty")
	}

	if !courseCodeRegex.MatchString(code) {
		return New(ErrCodeInvalidCourse, "invalid course code: %q", code)
	}

	return nil
}

// ValidateCatalogPath validates a catalog file path for safety.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidateCatalogPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
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

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}
