package validation

import "github.com/google/uuid"

const canonicalIDLength = 36

// IsValidID reports whether s is a UUID in canonical 8-4-4-4-12 form.
// Hex digits may be upper or lower case; braced, URN and undashed forms are rejected.
func IsValidID(s string) bool {
	if len(s) != canonicalIDLength {
		return false
	}
	return uuid.Validate(s) == nil
}
