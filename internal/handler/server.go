// Package handler implements the HTTP handlers for the Activity Logbook API.
// All handlers are methods on Server. Methods are split into resource files
// (health.go, activity.go, booking.go, calendar.go) but share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/activity-logbook/internal/domain"
	"github.com/pkordes/activity-logbook/internal/service"
	"github.com/pkordes/activity-logbook/openapi"
)

// ActivityServicer defines the operations the activity handlers depend on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without touching storage.
type ActivityServicer interface {
	Log(ctx context.Context, in service.LogActivityInput) (domain.Activity, error)
	List(ctx context.Context) ([]domain.Activity, error)
}

// BookingServicer defines the operations the booking handlers depend on.
type BookingServicer interface {
	Book(ctx context.Context, in service.BookActivityInput) (service.BookingResult, error)
	List(ctx context.Context) ([]domain.BookedActivity, error)
	ListOn(ctx context.Context, day time.Time) ([]domain.BookedActivity, error)
}

// CalendarExporter returns the raw iCalendar file of booked events.
type CalendarExporter interface {
	Export(ctx context.Context) ([]byte, error)
}

// Server holds the dependencies of every handler.
type Server struct {
	activities ActivityServicer
	bookings   BookingServicer
	calendar   CalendarExporter
	log        *slog.Logger
	now        func() time.Time
}

// NewServer constructs the Server with all its dependencies.
// calendar may be nil, in which case /calendar.ics always returns 404.
func NewServer(activities ActivityServicer, bookings BookingServicer, calendar CalendarExporter, log *slog.Logger) *Server {
	return &Server{
		activities: activities,
		bookings:   bookings,
		calendar:   calendar,
		log:        log,
		now:        time.Now,
	}
}

// Handler returns the routed http.Handler for s.
// Cross-cutting middleware is applied by the caller.
func Handler(s *Server) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", serveOpenAPI)

	r.Route("/activities", func(r chi.Router) {
		r.Get("/", s.ListActivities)
		r.Post("/", s.LogActivity)
	})
	r.Route("/bookings", func(r chi.Router) {
		r.Get("/", s.ListBookings)
		r.Post("/", s.BookActivity)
	})
	r.Get("/calendar.ics", s.GetCalendar)

	return r
}

func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(openapi.Document)
}

// writeJSON encodes v as the response body with the given status.
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.ErrorContext(r.Context(), "failed to encode response", "error", err)
	}
}

// decodeBody decodes the JSON request body into v. On failure it writes the
// response itself and returns false: 413 when the body ran past the size
// limit mid-read, 422 for anything else.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		s.writeJSON(w, r, http.StatusRequestEntityTooLarge, tooLargeBody())
		return false
	}
	s.writeJSON(w, r, http.StatusUnprocessableEntity, requestBody("invalid request body: "+err.Error()))
	return false
}

// internalError logs err and writes a 500 without leaking details.
func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	s.writeJSON(w, r, http.StatusInternalServerError, internalBody())
}
