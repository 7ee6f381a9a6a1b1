package common

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidatePath validates that a path is absolute
func ValidatePath(path string) error {
	if !filepath.IsAbs(path) {
		return fmt.Errorf("path must be absolute: %s", path)
	}
	return nil
}

// ValidateNotEmpty validates that a string is not empty
func ValidateNotEmpty(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("value cannot be empty")
	}
	return nil
}

// ValidateNameComponent validates a prefix or suffix that becomes part of a
// single file or directory name. Empty is allowed.
func ValidateNameComponent(value string) error {
	if strings.ContainsAny(value, `/\`) {
		return fmt.Errorf("name component cannot contain path separators: %s", value)
	}
	if strings.ContainsRune(value, 0) {
		return fmt.Errorf("name component cannot contain NUL bytes: %q", value)
	}
	return nil
}

// ValidateExtension validates a file extension, with or without its leading
// dot. Empty is allowed.
func ValidateExtension(ext string) error {
	if err := ValidateNameComponent(ext); err != nil {
		return fmt.Errorf("invalid extension: %w", err)
	}

	trimmed := strings.TrimSpace(ext)
	if trimmed != "" && strings.Trim(trimmed, ".") == "" {
		return fmt.Errorf("extension cannot consist of dots only: %s", ext)
	}

	return nil
}
