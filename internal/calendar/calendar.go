// Package calendar mirrors booked activities into an external calendar.
//
// The calendar is a collaborator, not part of the logbook's storage: booking
// succeeds or fails on its own, and a calendar failure is only reported.
package calendar

import (
	"context"
	"time"

	"github.com/pkordes/activity-logbook/internal/domain"
)

// EventDuration is the fixed length of every event created for a booking.
// The event starts at the booking date.
const EventDuration = time.Hour

// Calendar is the contract the booking flow relies on.
// RequestAccess must be called before AddEvent within one booking flow.
type Calendar interface {
	// RequestAccess asks for permission to write events. A denial is
	// granted == false with a nil error; err is reserved for failures to
	// ask at all.
	RequestAccess(ctx context.Context) (granted bool, err error)

	// AddEvent creates an event for the booking. It returns an error wrapping
	// domain.ErrCalendarUnauthorized when access was not granted, or
	// domain.ErrNoDefaultCalendar when there is nowhere to put the event.
	AddEvent(ctx context.Context, booking domain.BookedActivity) error
}

// Status is the authorization state of a calendar.
type Status int

const (
	StatusNotDetermined Status = iota
	StatusAuthorized
	StatusDenied
)

func (s Status) String() string {
	switch s {
	case StatusAuthorized:
		return "authorized"
	case StatusDenied:
		return "denied"
	default:
		return "not_determined"
	}
}

// Event is an event read back from a calendar.
type Event struct {
	UID         string
	Title       string
	Description string
	Start       time.Time
	End         time.Time
}
