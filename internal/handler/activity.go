package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/activity-logbook/internal/domain"
	"github.com/pkordes/activity-logbook/internal/service"
)

// LogActivityRequest is the body of POST /activities.
// Date defaults to the current time when omitted, like a date picker that
// opens on today.
type LogActivityRequest struct {
	Name            string     `json:"name"`
	DescriptionText *string    `json:"descriptionText"`
	Date            *time.Time `json:"date"`
}

// Activity is the JSON form of domain.Activity.
type Activity struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	DescriptionText *string   `json:"descriptionText"`
	Date            time.Time `json:"date"`
}

// LogActivity handles POST /activities.
func (s *Server) LogActivity(w http.ResponseWriter, r *http.Request) {
	var req LogActivityRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	date := s.now()
	if req.Date != nil {
		date = *req.Date
	}

	created, err := s.activities.Log(r.Context(), service.LogActivityInput{
		Name:        req.Name,
		Description: req.DescriptionText,
		Date:        date,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			s.writeJSON(w, r, http.StatusUnprocessableEntity, validationBody(err))
			return
		}
		s.internalError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusCreated, activityToResponse(created))
}

// ListActivities handles GET /activities. Newest first.
func (s *Server) ListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := s.activities.List(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	out := make([]Activity, len(activities))
	for i, a := range activities {
		out[i] = activityToResponse(a)
	}
	s.writeJSON(w, r, http.StatusOK, out)
}

func activityToResponse(a domain.Activity) Activity {
	return Activity{
		ID:              a.ID,
		Name:            a.Name,
		DescriptionText: a.DescriptionText,
		Date:            a.Date,
	}
}
