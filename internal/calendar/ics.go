package calendar

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/pkordes/activity-logbook/internal/domain"
)

// ICSCalendar keeps events in a single iCalendar file.
// The file is the default event container; an empty path means there is none.
// Whether access is granted is decided up front by the owner, standing in
// for the user's answer to a permission prompt.
type ICSCalendar struct {
	path  string
	grant bool
	now   func() time.Time

	mu     sync.Mutex
	status Status
}

// NewICSCalendar constructs an ICSCalendar writing to path.
// grant is the answer RequestAccess will give.
func NewICSCalendar(path string, grant bool) *ICSCalendar {
	return &ICSCalendar{path: path, grant: grant, now: time.Now}
}

// RequestAccess records and returns the configured access decision.
func (c *ICSCalendar) RequestAccess(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("calendar.ICSCalendar.RequestAccess: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.grant {
		c.status = StatusAuthorized
	} else {
		c.status = StatusDenied
	}
	return c.grant, nil
}

// AuthorizationStatus reports the outcome of the last RequestAccess call.
func (c *ICSCalendar) AuthorizationStatus() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// AddEvent appends a one-hour event for booking to the calendar file.
func (c *ICSCalendar) AddEvent(ctx context.Context, booking domain.BookedActivity) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("calendar.ICSCalendar.AddEvent: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != StatusAuthorized {
		return fmt.Errorf("calendar.ICSCalendar.AddEvent: %w", domain.ErrCalendarUnauthorized)
	}
	if c.path == "" {
		return fmt.Errorf("calendar.ICSCalendar.AddEvent: %w", domain.ErrNoDefaultCalendar)
	}

	cal, err := c.readLocked()
	if err != nil {
		return fmt.Errorf("calendar.ICSCalendar.AddEvent: %w", err)
	}

	ev := cal.AddEvent(booking.ID.String())
	ev.SetDtStampTime(c.now())
	ev.SetStartAt(booking.Date)
	ev.SetEndAt(booking.Date.Add(EventDuration))
	ev.SetSummary(booking.ActivityName)
	if booking.Notes != nil {
		ev.SetDescription(*booking.Notes)
	}

	if err := c.writeLocked(cal); err != nil {
		return fmt.Errorf("calendar.ICSCalendar.AddEvent: %w", err)
	}
	return nil
}

// Events parses the calendar file and returns its events in file order.
// A file that has not been written yet yields no events.
func (c *ICSCalendar) Events(ctx context.Context) ([]Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("calendar.ICSCalendar.Events: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.path == "" {
		return nil, fmt.Errorf("calendar.ICSCalendar.Events: %w", domain.ErrNoDefaultCalendar)
	}
	cal, err := c.readLocked()
	if err != nil {
		return nil, fmt.Errorf("calendar.ICSCalendar.Events: %w", err)
	}

	events := make([]Event, 0, len(cal.Events()))
	for _, ve := range cal.Events() {
		e := Event{UID: ve.Id()}
		if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
			e.Title = p.Value
		}
		if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
			e.Description = p.Value
		}
		e.Start, _ = ve.GetStartAt()
		e.End, _ = ve.GetEndAt()
		events = append(events, e)
	}
	return events, nil
}

// Export returns the raw iCalendar file. It returns an error wrapping
// fs.ErrNotExist when no event has been written yet.
func (c *ICSCalendar) Export(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("calendar.ICSCalendar.Export: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.path == "" {
		return nil, fmt.Errorf("calendar.ICSCalendar.Export: %w", domain.ErrNoDefaultCalendar)
	}
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("calendar.ICSCalendar.Export: %w", err)
	}
	return data, nil
}

// readLocked loads the calendar file, or starts a new calendar if the file
// does not exist. c.mu must be held.
func (c *ICSCalendar) readLocked() (*ical.Calendar, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cal := ical.NewCalendarFor("activity-logbook")
			cal.SetMethod(ical.MethodPublish)
			return cal, nil
		}
		return nil, fmt.Errorf("read %s: %w", c.path, err)
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", c.path, err)
	}
	return cal, nil
}

// writeLocked replaces the calendar file via a temp file and rename so a
// crash mid-write never leaves a truncated calendar. c.mu must be held.
func (c *ICSCalendar) writeLocked(cal *ical.Calendar) error {
	if dir := filepath.Dir(c.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir %s: %w", dir, err)
		}
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(cal.Serialize()), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
