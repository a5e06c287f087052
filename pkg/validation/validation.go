// Package validation provides range checks and identifier sanitization for
// configuration values and player commands.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Identifier and level limits
const (
	MaxIdentifierLen = 32
	MinLevel         = 1
)

// Identifiers are lowercase snake_case: difficulty names, power-up ids.
var validIdentifier = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ValidatePositive rejects zero, negative and non-finite values
func ValidatePositive(field string, value float64) error {
	if err := ValidateFinite(field, value); err != nil {
		return err
	}
	if value <= 0 {
		return fmt.Errorf("%s must be positive: %g", field, value)
	}
	return nil
}

// ValidateNonNegative rejects negative and non-finite values
func ValidateNonNegative(field string, value float64) error {
	if err := ValidateFinite(field, value); err != nil {
		return err
	}
	if value < 0 {
		return fmt.Errorf("%s cannot be negative: %g", field, value)
	}
	return nil
}

// ValidateFinite rejects NaN and infinities
func ValidateFinite(field string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%s must be a finite number", field)
	}
	return nil
}

// ValidateFraction accepts values in (0, 1]. Damping factors use this range.
func ValidateFraction(field string, value float64) error {
	if err := ValidateFinite(field, value); err != nil {
		return err
	}
	if value <= 0 || value > 1 {
		return fmt.Errorf("%s must be in (0, 1]: %g", field, value)
	}
	return nil
}

// ValidateRange accepts values in [min, max]
func ValidateRange(field string, value, min, max float64) error {
	if err := ValidateFinite(field, value); err != nil {
		return err
	}
	if value < min || value > max {
		return fmt.Errorf("%s out of range: %g (must be %g-%g)", field, value, min, max)
	}
	return nil
}

// ValidateCount accepts integers in [min, max]
func ValidateCount(field string, value, min, max int) error {
	if value < min || value > max {
		return fmt.Errorf("%s out of range: %d (must be %d-%d)", field, value, min, max)
	}
	return nil
}

// ValidateLevel checks a level number against the game's last level
func ValidateLevel(level, maxLevel int) error {
	if level < MinLevel {
		return fmt.Errorf("invalid level: %d (must be at least %d)", level, MinLevel)
	}
	if level > maxLevel {
		return fmt.Errorf("invalid level: %d (last level is %d)", level, maxLevel)
	}
	return nil
}

// ValidateIdentifier normalizes and checks a snake_case identifier such as a
// difficulty name or a power-up id. Surrounding whitespace is trimmed and the
// value is lowercased before checking.
func ValidateIdentifier(kind, value string) (string, error) {
	if !utf8.ValidString(value) {
		return "", fmt.Errorf("%s contains invalid UTF-8 characters", kind)
	}

	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return "", fmt.Errorf("%s cannot be empty", kind)
	}
	if len(trimmed) > MaxIdentifierLen {
		return "", fmt.Errorf("%s too long: %d characters (max %d)", kind, len(trimmed), MaxIdentifierLen)
	}

	for _, r := range trimmed {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("%s contains control characters", kind)
		}
	}

	if !validIdentifier.MatchString(trimmed) {
		return "", fmt.Errorf("%s contains invalid characters: %q", kind, trimmed)
	}

	return trimmed, nil
}

// ValidateOneOf normalizes value with ValidateIdentifier and requires it to be in allowed
func ValidateOneOf(kind, value string, allowed []string) (string, error) {
	id, err := ValidateIdentifier(kind, value)
	if err != nil {
		return "", err
	}
	for _, a := range allowed {
		if a == id {
			return id, nil
		}
	}
	return "", fmt.Errorf("unknown %s: %q (must be one of %s)", kind, id, strings.Join(allowed, ", "))
}
