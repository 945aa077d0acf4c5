package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BookedActivity is an activity scheduled for a future moment.
// Date is also the start of any calendar event created for it; the end is
// derived by the calendar, never stored.
type BookedActivity struct {
	ID           uuid.UUID `json:"id"`
	ActivityName string    `json:"activityName"`
	Date         time.Time `json:"date"`
	Notes        *string   `json:"notes"` // nil when no notes were given
}

// NewBookedActivity builds a BookedActivity with a freshly generated ID.
func NewBookedActivity(name string, date time.Time, notes *string) BookedActivity {
	return BookedActivity{
		ID:           uuid.New(),
		ActivityName: name,
		Date:         date,
		Notes:        notes,
	}
}

// Validate reports whether the wire-required fields are present.
func (b BookedActivity) Validate() error {
	if b.ID == uuid.Nil {
		return fmt.Errorf("booked activity: missing id")
	}
	if b.Date.IsZero() {
		return fmt.Errorf("booked activity %s: missing date", b.ID)
	}
	return nil
}
