package domain

import "time"

// Event is a single analytics event as reported by the landing page client.
// Events are best effort: they are recorded when possible and dropped when not.
type Event struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name" validate:"required,max=64"`
	Category  string    `json:"category" validate:"max=64"`
	Label     string    `json:"label" validate:"max=255"`
	Value     int       `json:"value"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}
