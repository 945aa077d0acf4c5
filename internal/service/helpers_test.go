package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/activity-logbook/internal/domain"
	"github.com/pkordes/activity-logbook/internal/repo"
	"github.com/pkordes/activity-logbook/internal/service"
)

// mockKVStore is a hand-written test double for repo.KVStore.
// Each method is a function field; set only the ones your test needs.
type mockKVStore struct {
	put func(ctx context.Context, key string, value []byte) error
	get func(ctx context.Context, key string) ([]byte, bool, error)
}

func (m *mockKVStore) Put(ctx context.Context, key string, value []byte) error {
	return m.put(ctx, key, value)
}
func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return m.get(ctx, key)
}

// compile-time check: mockKVStore must satisfy repo.KVStore.
var _ repo.KVStore = (*mockKVStore)(nil)

// mockCalendar is a hand-written test double for calendar.Calendar.
type mockCalendar struct {
	requestAccess func(ctx context.Context) (bool, error)
	addEvent      func(ctx context.Context, b domain.BookedActivity) error
}

func (m *mockCalendar) RequestAccess(ctx context.Context) (bool, error) {
	return m.requestAccess(ctx)
}
func (m *mockCalendar) AddEvent(ctx context.Context, b domain.BookedActivity) error {
	return m.addEvent(ctx, b)
}

var errStore = errors.New("disk on fire")

// ---- helpers ---------------------------------------------------------------

// newLogger returns a JSON logger writing into buf, so tests can assert on
// what was reported.
func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// newPersistence returns a facade over a fresh in-memory store plus the store
// itself, for tests that need to poke at raw bytes.
func newPersistence(t *testing.T) (*service.PersistenceService, repo.KVStore, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	store := repo.NewMemoryKVStore()
	return service.NewPersistenceService(store, newLogger(&buf)), store, &buf
}

// logMessages decodes every JSON log line in buf and returns their "msg" values.
func logMessages(t *testing.T, buf *bytes.Buffer) []string {
	t.Helper()
	var msgs []string
	dec := json.NewDecoder(bytes.NewReader(buf.Bytes()))
	for dec.More() {
		var entry map[string]any
		require.NoError(t, dec.Decode(&entry))
		msgs = append(msgs, entry["msg"].(string))
	}
	return msgs
}

func strPtr(s string) *string { return &s }
