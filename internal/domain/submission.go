// Package domain contains the core types shared across the waitlist server.
package domain

import "time"

// Submission is a single waitlist sign-up record.
// It is written once and never mutated after a successful insert.
type Submission struct {
	ID                  string    `json:"id,omitempty"`
	Name                string    `json:"name" validate:"required,min=2,max=100"`
	Email               string    `json:"email" validate:"required,lead_email,max=255"`
	SubscribeNewsletter bool      `json:"subscribe_newsletter"`
	SubscribeUpdates    bool      `json:"subscribe_updates"`
	SubscribeReleases   bool      `json:"subscribe_releases"`
	CreatedAt           time.Time `json:"created_at,omitzero"`
}

// IsEmpty reports whether the submission carries no user input.
// Used by the auto-save loop to skip snapshotting blank forms.
func (s Submission) IsEmpty() bool {
	return s.Name == "" && s.Email == "" &&
		!s.SubscribeNewsletter && !s.SubscribeUpdates && !s.SubscribeReleases
}
