// Package validation provides form validation for waitlist submissions using
// the validator/v10 library, with the exact user-facing messages the landing
// page shows next to each field.
package validation

import (
	"errors"
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/courselaunch/waitlist-server/internal/domain"
)

// leadEmailPattern is intentionally loose: anything shaped like
// local@domain.tld is accepted and the backend's unique index is the final
// arbiter. Stricter RFC checks reject addresses real users type.
var leadEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldErrors maps a field name ("name", "email", or "general") to the
// message shown under that field. An empty map means the input is valid.
type FieldErrors map[string]string

// Validator wraps go-playground/validator configured for the waitlist form.
type Validator struct {
	v *validator.Validate
}

// New creates a validator for waitlist submissions.
func New() *Validator {
	v := validator.New()

	// Use JSON tag names so errors key on "email", not "Email".
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		for i := range len(name) {
			if name[i] == ',' {
				return name[:i]
			}
		}
		return name
	})

	// Custom email check matching the landing page's pattern.
	_ = v.RegisterValidation("lead_email", func(fl validator.FieldLevel) bool {
		return leadEmailPattern.MatchString(fl.Field().String())
	})

	return &Validator{v: v}
}

// ValidateName returns the message for an invalid name, or "" when valid.
func (v *Validator) ValidateName(name string) string {
	if err := v.v.Var(name, "required,min=2,max=100"); err != nil {
		return nameMessage(firstTag(err))
	}
	return ""
}

// ValidateEmail returns the message for an invalid email, or "" when valid.
func (v *Validator) ValidateEmail(email string) string {
	if err := v.v.Var(email, "required,lead_email,max=255"); err != nil {
		return emailMessage(firstTag(err))
	}
	return ""
}

// ValidateSubmission checks the two validated fields of a submission and
// returns only the failing ones. It has no side effects.
func (v *Validator) ValidateSubmission(sub domain.Submission) FieldErrors {
	errs := FieldErrors{}
	if msg := v.ValidateName(sub.Name); msg != "" {
		errs["name"] = msg
	}
	if msg := v.ValidateEmail(sub.Email); msg != "" {
		errs["email"] = msg
	}
	return errs
}

// ValidateEvent checks an analytics event payload via its struct tags.
// Returns a per-field message map, empty when valid.
func (v *Validator) ValidateEvent(evt domain.Event) FieldErrors {
	errs := FieldErrors{}
	err := v.v.Struct(evt)
	if err == nil {
		return errs
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["general"] = "invalid event"
		return errs
	}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			errs[fe.Field()] = "is required"
		case "max":
			errs[fe.Field()] = "must not exceed " + fe.Param() + " characters"
		default:
			errs[fe.Field()] = "is invalid"
		}
	}
	return errs
}

// firstTag extracts the first failing tag from a Var/Struct error.
func firstTag(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Tag()
	}
	return ""
}

func nameMessage(tag string) string {
	switch tag {
	case "required":
		return "Name is required"
	case "min":
		return "Name must be at least 2 characters"
	case "max":
		return "Name must be less than 100 characters"
	default:
		return "Name is invalid"
	}
}

func emailMessage(tag string) string {
	switch tag {
	case "required":
		return "Email is required"
	case "lead_email":
		return "Please enter a valid email address"
	case "max":
		return "Email must be less than 255 characters"
	default:
		return "Please enter a valid email address"
	}
}
