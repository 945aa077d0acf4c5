package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/activity-logbook/internal/domain"
	"github.com/pkordes/activity-logbook/internal/service"
)

// BookActivityRequest is the body of POST /bookings.
// AddToCalendar defaults to true when omitted, like the booking form's
// calendar switch, which starts out on.
type BookActivityRequest struct {
	ActivityName  string     `json:"activityName"`
	Date          *time.Time `json:"date"`
	Notes         *string    `json:"notes"`
	AddToCalendar *bool      `json:"addToCalendar"`
}

// BookedActivity is the JSON form of domain.BookedActivity.
type BookedActivity struct {
	ID           uuid.UUID `json:"id"`
	ActivityName string    `json:"activityName"`
	Date         time.Time `json:"date"`
	Notes        *string   `json:"notes"`
}

// CalendarOutcome is the JSON form of service.CalendarOutcome.
type CalendarOutcome struct {
	Requested bool    `json:"requested"`
	Granted   bool    `json:"granted"`
	Added     bool    `json:"added"`
	Error     *string `json:"error,omitempty"`
}

// BookingResponse is the body of a successful POST /bookings.
type BookingResponse struct {
	Booking  BookedActivity  `json:"booking"`
	Calendar CalendarOutcome `json:"calendar"`
}

// BookActivity handles POST /bookings.
// The booking is created even when the calendar step fails; the calendar
// outcome is reported alongside it.
func (s *Server) BookActivity(w http.ResponseWriter, r *http.Request) {
	var req BookActivityRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	result, err := s.bookings.Book(r.Context(), service.BookActivityInput{
		Name:          req.ActivityName,
		Date:          req.Date,
		Notes:         req.Notes,
		AddToCalendar: req.AddToCalendar == nil || *req.AddToCalendar,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			s.writeJSON(w, r, http.StatusUnprocessableEntity, validationBody(err))
			return
		}
		s.internalError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusCreated, BookingResponse{
		Booking:  bookingToResponse(result.Booking),
		Calendar: outcomeToResponse(result.Calendar),
	})
}

// ListBookings handles GET /bookings.
// Supports ?on=YYYY-MM-DD to return only the bookings on that day (UTC).
func (s *Server) ListBookings(w http.ResponseWriter, r *http.Request) {
	var on *openapi_types.Date
	if err := runtime.BindQueryParameter("form", true, false, "on", r.URL.Query(), &on); err != nil {
		s.writeJSON(w, r, http.StatusBadRequest, requestBody("invalid format for parameter on: "+err.Error()))
		return
	}

	var (
		bookings []domain.BookedActivity
		err      error
	)
	if on != nil {
		bookings, err = s.bookings.ListOn(r.Context(), on.Time)
	} else {
		bookings, err = s.bookings.List(r.Context())
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	out := make([]BookedActivity, len(bookings))
	for i, b := range bookings {
		out[i] = bookingToResponse(b)
	}
	s.writeJSON(w, r, http.StatusOK, out)
}

func bookingToResponse(b domain.BookedActivity) BookedActivity {
	return BookedActivity{
		ID:           b.ID,
		ActivityName: b.ActivityName,
		Date:         b.Date,
		Notes:        b.Notes,
	}
}

func outcomeToResponse(o service.CalendarOutcome) CalendarOutcome {
	out := CalendarOutcome{Requested: o.Requested, Granted: o.Granted, Added: o.Added}
	if o.Err != nil {
		msg := o.Err.Error()
		out.Error = &msg
	}
	return out
}
