package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already clean", "Jane Doe", "Jane Doe"},
		{"surrounding whitespace", "  Jane Doe ", "Jane Doe"},
		{"internal runs", "Jane    Doe", "Jane Doe"},
		{"tabs and newlines", "Jane\tDoe\n", "Jane Doe"},
		{"empty", "", ""},
		{"only whitespace", "   ", ""},
		// e + combining acute composes to a single rune.
		{"nfc composition", "José", "José"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Name(tt.input))
		})
	}
}

func TestEmail(t *testing.T) {
	assert.Equal(t, "Jane@Example.com", Email(" Jane@Example.com "))
	assert.Equal(t, "jane@example.com", Email("jane@example.com"))
}

func TestEmailKey(t *testing.T) {
	// Case differences collapse to one key; the display form is untouched.
	assert.Equal(t, "jane@example.com", EmailKey("JANE@Example.COM"))
	assert.Equal(t, EmailKey("jane@example.com"), EmailKey(" Jane@EXAMPLE.com "))
}
