package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/courselaunch/waitlist-server/internal/domain"
)

func TestValidateName(t *testing.T) {
	v := New()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"valid", "Jane Doe", ""},
		{"minimum length", "Jo", ""},
		{"empty", "", "Name is required"},
		{"too short", "J", "Name must be at least 2 characters"},
		{"too long", strings.Repeat("a", 101), "Name must be less than 100 characters"},
		{"exactly 100", strings.Repeat("a", 100), ""},
		{"unicode", "José García", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.ValidateName(tt.input))
		})
	}
}

func TestValidateEmail(t *testing.T) {
	v := New()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"valid", "jane@example.com", ""},
		{"subdomain", "jane@mail.example.co.uk", ""},
		{"plus address", "jane+waitlist@example.com", ""},
		{"empty", "", "Email is required"},
		{"no at sign", "janeexample.com", "Please enter a valid email address"},
		{"no domain dot", "jane@example", "Please enter a valid email address"},
		{"whitespace inside", "jane doe@example.com", "Please enter a valid email address"},
		{"double at", "jane@@example.com", "Please enter a valid email address"},
		{"too long", strings.Repeat("a", 250) + "@example.com", "Email must be less than 255 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.ValidateEmail(tt.input))
		})
	}
}

func TestValidateSubmission(t *testing.T) {
	v := New()

	t.Run("valid", func(t *testing.T) {
		errs := v.ValidateSubmission(domain.Submission{Name: "Jane Doe", Email: "jane@example.com"})
		assert.Empty(t, errs)
	})

	t.Run("both invalid", func(t *testing.T) {
		errs := v.ValidateSubmission(domain.Submission{Name: "J", Email: "nope"})
		assert.Len(t, errs, 2)
		assert.Equal(t, "Name must be at least 2 characters", errs["name"])
		assert.Equal(t, "Please enter a valid email address", errs["email"])
	})

	t.Run("only email invalid", func(t *testing.T) {
		errs := v.ValidateSubmission(domain.Submission{Name: "Jane Doe", Email: ""})
		assert.Len(t, errs, 1)
		assert.Equal(t, "Email is required", errs["email"])
	})

	t.Run("checkboxes never fail", func(t *testing.T) {
		errs := v.ValidateSubmission(domain.Submission{
			Name:                "Jane Doe",
			Email:               "jane@example.com",
			SubscribeNewsletter: true,
			SubscribeUpdates:    true,
			SubscribeReleases:   true,
		})
		assert.Empty(t, errs)
	})
}

func TestValidateEvent(t *testing.T) {
	v := New()

	t.Run("valid", func(t *testing.T) {
		errs := v.ValidateEvent(domain.Event{Name: "form_submit", Category: "form_interaction"})
		assert.Empty(t, errs)
	})

	t.Run("missing name", func(t *testing.T) {
		errs := v.ValidateEvent(domain.Event{Category: "form_interaction"})
		assert.Equal(t, "is required", errs["name"])
	})

	t.Run("label too long", func(t *testing.T) {
		errs := v.ValidateEvent(domain.Event{Name: "form_submit", Label: strings.Repeat("x", 256)})
		assert.Equal(t, "must not exceed 255 characters", errs["label"])
	})
}
