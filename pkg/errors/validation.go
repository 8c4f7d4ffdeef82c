package errors

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Year bounds accepted at the UI boundary. The lookup client itself performs
// no validation; these only guard user input.
const (
	MinYear = 1000
	MaxYear = 9999
)

// ParseYear parses a four-digit model year from user input.
func ParseYear(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, New(ErrCodeInvalidYear, "year cannot be empty")
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, New(ErrCodeInvalidYear, "year must be a number: %q", raw)
	}
	if err := ValidateYear(year); err != nil {
		return 0, err
	}
	return year, nil
}

// ValidateYear checks that year has four digits.
func ValidateYear(year int) error {
	if year < MinYear || year > MaxYear {
		return New(ErrCodeInvalidYear, "year must have four digits, got %d", year)
	}
	return nil
}

// ValidateMake validates a make name supplied by a user.
//
// The rules are intentionally loose since make names come from the remote
// API ("Mercedes-Benz", "Rolls Royce"):
//   - No empty or whitespace-only names
//   - No control characters
//   - Maximum length of 128 characters
func ValidateMake(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidMake, "make cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidMake, "make too long (max 128 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidMake, "make contains invalid control characters")
		}
	}
	return nil
}

var profileRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidateProfile validates a selection profile name.
// Profile names end up in file names and storage keys, so only
// letters, digits, '-' and '_' are allowed (max 64 characters).
func ValidateProfile(name string) error {
	if name == "" {
		return New(ErrCodeInvalidProfile, "profile name cannot be empty")
	}
	if !profileRegex.MatchString(name) {
		return New(ErrCodeInvalidProfile, "invalid profile name: %q", name)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
