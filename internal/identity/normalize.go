// Package identity holds the pure claim normalization rules shared by the
// authentication paths. Nothing here performs I/O.
package identity

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	uuid "github.com/google/uuid"
)

// MaxDisplayNameLength bounds display names after whitespace normalization.
const MaxDisplayNameLength = 25

var (
	// ErrInvalidExternalID indicates the value is not a canonical v4 identifier.
	ErrInvalidExternalID = errors.New("external id is not a canonical v4 identifier")
	// ErrInvalidUUID indicates the value cannot be normalized into a Minecraft UUID.
	ErrInvalidUUID = errors.New("invalid minecraft uuid")
	// ErrNameTooLong indicates the normalized display name exceeds the length bound.
	ErrNameTooLong = errors.New("display name too long")
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// ValidateExternalID checks that raw is a canonical random (v4-style)
// identifier and returns its lower-case form.
func ValidateExternalID(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) != 36 {
		return "", fmt.Errorf("%w: %q", ErrInvalidExternalID, raw)
	}
	parsed, err := uuid.Parse(trimmed)
	if err != nil || parsed.Version() != 4 {
		return "", fmt.Errorf("%w: %q", ErrInvalidExternalID, raw)
	}
	return parsed.String(), nil
}

// NormalizeMinecraftUUID accepts hyphenated or bare 32-hex input and returns
// the canonical hyphenated lower-case form.
func NormalizeMinecraftUUID(raw string) (string, error) {
	bare := strings.ReplaceAll(strings.TrimSpace(raw), "-", "")
	if len(bare) != 32 {
		return "", fmt.Errorf("%w: %q", ErrInvalidUUID, raw)
	}
	parsed, err := uuid.Parse(bare)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidUUID, raw)
	}
	return parsed.String(), nil
}

// NormalizeDisplayName collapses whitespace runs to a single space and trims.
// Blank input yields the empty string, meaning "not set".
func NormalizeDisplayName(raw string) (string, error) {
	name := strings.TrimSpace(whitespaceRun.ReplaceAllString(raw, " "))
	if name == "" {
		return "", nil
	}
	if utf8.RuneCountInString(name) > MaxDisplayNameLength {
		return "", fmt.Errorf("%w: %q", ErrNameTooLong, name)
	}
	return name, nil
}
