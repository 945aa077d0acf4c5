package domain

import "errors"

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. blank activity name, booking without a date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrCalendarUnauthorized is returned by a calendar when an event is added
// before access was granted.
var ErrCalendarUnauthorized = errors.New("calendar access not authorized")

// ErrNoDefaultCalendar is returned by a calendar that has no container to
// write new events into.
var ErrNoDefaultCalendar = errors.New("no default calendar found")
