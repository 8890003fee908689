package errors

import (
	"strings"
	"unicode"
)

// maxParticipantNameLength bounds a participant display name in runes.
const maxParticipantNameLength = 128

// ValidateParticipantName validates a participant display name.
//
// The generator treats names as opaque identifiers, so the rules only
// reject values that cannot be shown or compared sensibly:
//   - No empty or whitespace-only names
//   - No control characters
//   - No leading or trailing whitespace
//   - Maximum length of 128 characters
//
// Duplicate detection is the caller's concern.
func ValidateParticipantName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidParticipant, "participant name cannot be empty")
	}

	if len([]rune(name)) > maxParticipantNameLength {
		return New(ErrCodeInvalidParticipant, "participant name too long (max %d characters)", maxParticipantNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidParticipant, "participant name %q contains control characters", name)
		}
	}

	if strings.TrimSpace(name) != name {
		return New(ErrCodeInvalidParticipant, "participant name %q has surrounding whitespace", name)
	}

	return nil
}

// ValidateParticipants validates every name and rejects exact duplicates.
func ValidateParticipants(names []string) error {
	if len(names) == 0 {
		return New(ErrCodeEmptyParticipants, "at least one participant is required")
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if err := ValidateParticipantName(n); err != nil {
			return err
		}
		if seen[n] {
			return New(ErrCodeInvalidParticipant, "duplicate participant %q", n)
		}
		seen[n] = true
	}
	return nil
}

// ValidatePath validates a request or output file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
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

	return nil
}
