// Package normalize provides utilities for normalizing submitted form data
// before it is persisted.
package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Name cleans a submitted display name: unicode composition, whitespace
// collapsed to single spaces, leading/trailing whitespace removed.
// "  Ada   Lovelace " -> "Ada Lovelace".
func Name(s string) string {
	s = norm.NFC.String(s)
	return strings.Join(strings.Fields(s), " ")
}

// Email trims surrounding whitespace from a submitted email address.
// Case is preserved; use EmailKey for the uniqueness lookup form.
func Email(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// EmailKey returns the canonical form used for the unique email index:
// trimmed and lowercased. Two addresses differing only in case are the
// same sign-up.
func EmailKey(s string) string {
	return strings.ToLower(Email(s))
}
