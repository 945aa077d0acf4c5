package handler

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/pkordes/activity-logbook/internal/domain"
)

// GetCalendar handles GET /calendar.ics.
// It serves the iCalendar file that booked events are written to, so any
// calendar client can subscribe to it.
func (s *Server) GetCalendar(w http.ResponseWriter, r *http.Request) {
	if s.calendar == nil {
		s.writeJSON(w, r, http.StatusNotFound, notFoundBody("no calendar configured"))
		return
	}

	data, err := s.calendar.Export(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoDefaultCalendar):
			s.writeJSON(w, r, http.StatusNotFound, notFoundBody("no calendar configured"))
		case errors.Is(err, fs.ErrNotExist):
			s.writeJSON(w, r, http.StatusNotFound, notFoundBody("no calendar events yet"))
		default:
			s.internalError(w, r, err)
		}
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
