// Package domain contains the core record types for the Activity Logbook.
// This package depends only on uuid and is imported by every other
// internal package (codec, repo, service, calendar, handler).
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Activity is a completed activity the user logged.
// DescriptionText is nil when no description was given; an empty string is
// a distinct, stored value.
type Activity struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	DescriptionText *string   `json:"descriptionText"`
	Date            time.Time `json:"date"`
}

// NewActivity builds an Activity with a freshly generated ID.
// Name is not checked here; the input layer rejects empty names.
func NewActivity(name string, description *string, date time.Time) Activity {
	return Activity{
		ID:              uuid.New(),
		Name:            name,
		DescriptionText: description,
		Date:            date,
	}
}

// Validate reports whether the wire-required fields are present.
// It is run on every decoded record, so data written before a required
// field existed fails here instead of loading half-empty.
func (a Activity) Validate() error {
	if a.ID == uuid.Nil {
		return fmt.Errorf("activity: missing id")
	}
	if a.Date.IsZero() {
		return fmt.Errorf("activity %s: missing date", a.ID)
	}
	return nil
}
