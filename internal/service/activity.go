package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pkordes/activity-logbook/internal/domain"
)

// LogActivityInput is what a user supplies to log a completed activity.
type LogActivityInput struct {
	Name        string
	Description *string
	Date        time.Time
}

// ActivityService implements the log-activity and activity-list flows.
type ActivityService struct {
	store *PersistenceService
}

// NewActivityService constructs an ActivityService over the persistence facade.
func NewActivityService(store *PersistenceService) *ActivityService {
	return &ActivityService{store: store}
}

// Log validates the input, appends a new Activity to the stored collection
// and rewrites the collection. A blank description is stored as absent.
// Returns domain.ErrValidation if the name is blank or the date is unset.
func (s *ActivityService) Log(ctx context.Context, in LogActivityInput) (domain.Activity, error) {
	if strings.TrimSpace(in.Name) == "" {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Log: %w: name is required", domain.ErrValidation)
	}
	if in.Date.IsZero() {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Log: %w: date is required", domain.ErrValidation)
	}

	activity := domain.NewActivity(in.Name, blankToNil(in.Description), in.Date)

	activities := s.store.LoadActivities(ctx)
	activities = append(activities, activity)
	s.store.SaveActivities(ctx, activities)

	return activity, nil
}

// List returns every logged activity, newest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ActivityService) List(ctx context.Context) ([]domain.Activity, error) {
	activities := s.store.LoadActivities(ctx)
	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Date.After(activities[j].Date)
	})
	return activities, nil
}

// blankToNil maps untouched optional text to absent.
func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
