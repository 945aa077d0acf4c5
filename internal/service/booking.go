package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/pkordes/activity-logbook/internal/calendar"
	"github.com/pkordes/activity-logbook/internal/domain"
)

// BookActivityInput is what a user supplies to book a future activity.
// Date is a pointer because "no day picked" is a distinct input state.
type BookActivityInput struct {
	Name          string
	Date          *time.Time
	Notes         *string
	AddToCalendar bool
}

// CalendarOutcome reports what happened on the calendar side of a booking.
// Requested is false when the caller did not ask for a calendar event.
type CalendarOutcome struct {
	Requested bool
	Granted   bool
	Added     bool
	Err       error
}

// BookingResult is the persisted booking plus its calendar outcome.
type BookingResult struct {
	Booking  domain.BookedActivity
	Calendar CalendarOutcome
}

// BookingService implements the booking flow.
type BookingService struct {
	store    *PersistenceService
	calendar calendar.Calendar
	log      *slog.Logger
}

// NewBookingService constructs a BookingService. cal may be nil, in which
// case calendar requests are reported as failing with domain.ErrNoDefaultCalendar.
func NewBookingService(store *PersistenceService, cal calendar.Calendar, log *slog.Logger) *BookingService {
	return &BookingService{store: store, calendar: cal, log: log}
}

// Book validates the input, persists the booking, then (if asked) mirrors it
// into the calendar. The booking is saved before the calendar is touched and
// is never rolled back; calendar problems come back in the result, not as err.
// Returns domain.ErrValidation if the name is blank or no date was picked.
func (s *BookingService) Book(ctx context.Context, in BookActivityInput) (BookingResult, error) {
	if strings.TrimSpace(in.Name) == "" {
		return BookingResult{}, fmt.Errorf("service.BookingService.Book: %w: activity name is required", domain.ErrValidation)
	}
	if in.Date == nil || in.Date.IsZero() {
		return BookingResult{}, fmt.Errorf("service.BookingService.Book: %w: date is required", domain.ErrValidation)
	}

	booking := domain.NewBookedActivity(in.Name, *in.Date, blankToNil(in.Notes))

	bookings := s.store.LoadBookedActivities(ctx)
	bookings = append(bookings, booking)
	s.store.SaveBookedActivities(ctx, bookings)

	result := BookingResult{Booking: booking}
	if in.AddToCalendar {
		result.Calendar = s.addToCalendar(ctx, booking)
	}
	return result, nil
}

// addToCalendar sequences the access request and the event creation.
func (s *BookingService) addToCalendar(ctx context.Context, booking domain.BookedActivity) CalendarOutcome {
	out := CalendarOutcome{Requested: true}
	if s.calendar == nil {
		out.Err = domain.ErrNoDefaultCalendar
		return out
	}

	granted, err := s.calendar.RequestAccess(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "calendar access request failed", "booking_id", booking.ID, "error", err)
		out.Err = err
		return out
	}
	out.Granted = granted
	if !granted {
		s.log.InfoContext(ctx, "calendar access denied", "booking_id", booking.ID)
		return out
	}

	if err := s.calendar.AddEvent(ctx, booking); err != nil {
		s.log.WarnContext(ctx, "failed to add calendar event", "booking_id", booking.ID, "error", err)
		out.Err = err
		return out
	}
	out.Added = true
	return out
}

// List returns every booking, soonest first.
func (s *BookingService) List(ctx context.Context) ([]domain.BookedActivity, error) {
	bookings := s.store.LoadBookedActivities(ctx)
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].Date.Before(bookings[j].Date)
	})
	return bookings, nil
}

// ListOn returns the bookings that fall on the same calendar day as day,
// judged in day's location, soonest first.
func (s *BookingService) ListOn(ctx context.Context, day time.Time) ([]domain.BookedActivity, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	y, m, d := day.Date()
	out := make([]domain.BookedActivity, 0)
	for _, b := range all {
		by, bm, bd := b.Date.In(day.Location()).Date()
		if by == y && bm == m && bd == d {
			out = append(out, b)
		}
	}
	return out, nil
}
