// Package validation contains input validation rules for account fields.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"flick/internal/models"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	pinRegex      = regexp.MustCompile(`^[0-9]+$`)
)

// ValidateUsername checks if a username meets requirements
func ValidateUsername(username string) error {
	if len(username) < 3 {
		return fmt.Errorf("username must be at least 3 characters long")
	}

	if len(username) > 30 {
		return fmt.Errorf("username must not exceed 30 characters")
	}

	// Only allow alphanumeric, underscores and hyphens
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username can only contain letters, numbers, underscores, and hyphens")
	}

	if username[0] == '_' || username[0] == '-' || username[len(username)-1] == '_' || username[len(username)-1] == '-' {
		return fmt.Errorf("username cannot start or end with underscore or hyphen")
	}

	return nil
}

// ValidatePIN checks if a PIN meets requirements. PINs are numeric,
// 4-8 digits.
func ValidatePIN(pin string) error {
	if len(pin) < 4 {
		return fmt.Errorf("PIN must be at least 4 digits long")
	}

	if len(pin) > 8 {
		return fmt.Errorf("PIN must not exceed 8 digits")
	}

	if !pinRegex.MatchString(pin) {
		return fmt.Errorf("PIN can only contain digits")
	}

	return nil
}

// ValidateGroupName checks a group name after trimming. The caller is
// expected to persist the trimmed form.
func ValidateGroupName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("group name is required")
	}

	if len(trimmed) > models.MaxGroupNameLength {
		return fmt.Errorf("group name must not exceed %d characters", models.MaxGroupNameLength)
	}

	return nil
}
