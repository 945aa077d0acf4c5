package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/activity-logbook/internal/domain"
	"github.com/pkordes/activity-logbook/internal/handler"
	"github.com/pkordes/activity-logbook/internal/service"
)

// mockActivityServicer is a test double for handler.ActivityServicer.
// Set only the method fields your test needs.
type mockActivityServicer struct {
	log  func(ctx context.Context, in service.LogActivityInput) (domain.Activity, error)
	list func(ctx context.Context) ([]domain.Activity, error)
}

func (m *mockActivityServicer) Log(ctx context.Context, in service.LogActivityInput) (domain.Activity, error) {
	return m.log(ctx, in)
}
func (m *mockActivityServicer) List(ctx context.Context) ([]domain.Activity, error) {
	return m.list(ctx)
}

// mockBookingServicer is a test double for handler.BookingServicer.
type mockBookingServicer struct {
	book   func(ctx context.Context, in service.BookActivityInput) (service.BookingResult, error)
	list   func(ctx context.Context) ([]domain.BookedActivity, error)
	listOn func(ctx context.Context, day time.Time) ([]domain.BookedActivity, error)
}

func (m *mockBookingServicer) Book(ctx context.Context, in service.BookActivityInput) (service.BookingResult, error) {
	return m.book(ctx, in)
}
func (m *mockBookingServicer) List(ctx context.Context) ([]domain.BookedActivity, error) {
	return m.list(ctx)
}
func (m *mockBookingServicer) ListOn(ctx context.Context, day time.Time) ([]domain.BookedActivity, error) {
	return m.listOn(ctx, day)
}

// mockCalendarExporter is a test double for handler.CalendarExporter.
type mockCalendarExporter struct {
	export func(ctx context.Context) ([]byte, error)
}

func (m *mockCalendarExporter) Export(ctx context.Context) ([]byte, error) {
	return m.export(ctx)
}

// compile-time checks: mocks must satisfy the handler interfaces.
var (
	_ handler.ActivityServicer = (*mockActivityServicer)(nil)
	_ handler.BookingServicer  = (*mockBookingServicer)(nil)
	_ handler.CalendarExporter = (*mockCalendarExporter)(nil)
)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given mocks into the chi router,
// the same way main.go wires it in production. Nil mocks stay nil interfaces.
func newHTTPHandler(activities *mockActivityServicer, bookings *mockBookingServicer, cal *mockCalendarExporter) http.Handler {
	var (
		a handler.ActivityServicer
		b handler.BookingServicer
		c handler.CalendarExporter
	)
	if activities != nil {
		a = activities
	}
	if bookings != nil {
		b = bookings
	}
	if cal != nil {
		c = cal
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return handler.Handler(handler.NewServer(a, b, c, logger))
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeError(t *testing.T, body io.Reader) handler.ErrorResponse {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}

func strPtr(s string) *string { return &s }
