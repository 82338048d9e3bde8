package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxIDLength bounds block, page and chapter identifiers.
const maxIDLength = 128

// ValidateID validates an identifier supplied by an external collaborator
// (imported documents, API requests, generated blocks).
//
// The rules are intentionally conservative:
//   - No empty ids
//   - No control characters or null bytes
//   - No whitespace
//   - Maximum length of 128 characters
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "id cannot be empty")
	}

	if len(id) > maxIDLength {
		return New(ErrCodeInvalidInput, "id too long (max %d characters)", maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "id contains invalid control characters")
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "id cannot contain whitespace")
		}
	}

	return nil
}

// ValidateDocumentPath validates a path to a worksheet or workbook file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Extension must be .json
func ValidateDocumentPath(path string) error {
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

	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return New(ErrCodeInvalidPath, "document must be a .json file: %q", path)
	}

	return nil
}
