// Package service contains the business logic for the Activity Logbook.
// Services validate inputs, enforce business rules, and orchestrate storage
// calls. No storage details live here; services depend on repo.KVStore.
package service

import (
	"context"
	"log/slog"

	"github.com/pkordes/activity-logbook/internal/codec"
	"github.com/pkordes/activity-logbook/internal/domain"
	"github.com/pkordes/activity-logbook/internal/repo"
)

// Storage keys, one per record collection.
const (
	ActivitiesKey       = "userActivities"
	BookedActivitiesKey = "userBookedActivities"
)

// PersistenceService saves and loads whole record collections.
//
// Nothing it does returns an error: a failed save is logged and skipped,
// leaving the stored value untouched, and a failed load is logged and reads
// as an empty collection. Callers cannot tell "empty" from "corrupt" without
// the logs.
type PersistenceService struct {
	store repo.KVStore
	log   *slog.Logger
}

// NewPersistenceService constructs a PersistenceService over the given store.
func NewPersistenceService(store repo.KVStore, log *slog.Logger) *PersistenceService {
	return &PersistenceService{store: store, log: log}
}

// SaveActivities overwrites the stored activity collection.
func (s *PersistenceService) SaveActivities(ctx context.Context, activities []domain.Activity) {
	save(ctx, s, ActivitiesKey, activities)
}

// LoadActivities returns the stored activity collection, or an empty one.
func (s *PersistenceService) LoadActivities(ctx context.Context) []domain.Activity {
	return load[domain.Activity](ctx, s, ActivitiesKey)
}

// SaveBookedActivities overwrites the stored booked activity collection.
func (s *PersistenceService) SaveBookedActivities(ctx context.Context, bookings []domain.BookedActivity) {
	save(ctx, s, BookedActivitiesKey, bookings)
}

// LoadBookedActivities returns the stored booked activity collection, or an empty one.
func (s *PersistenceService) LoadBookedActivities(ctx context.Context) []domain.BookedActivity {
	return load[domain.BookedActivity](ctx, s, BookedActivitiesKey)
}

func save[T codec.Record](ctx context.Context, s *PersistenceService, key string, records []T) {
	data, err := codec.Encode(records)
	if err != nil {
		s.log.ErrorContext(ctx, "failed to encode collection", "key", key, "error", err)
		return
	}
	if err := s.store.Put(ctx, key, data); err != nil {
		s.log.ErrorContext(ctx, "failed to write collection", "key", key, "error", err)
		return
	}
	s.log.DebugContext(ctx, "collection saved", "key", key, "count", len(records))
}

func load[T codec.Record](ctx context.Context, s *PersistenceService, key string) []T {
	data, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.log.ErrorContext(ctx, "failed to read collection", "key", key, "error", err)
		return []T{}
	}
	if !ok {
		return []T{}
	}
	records, err := codec.Decode[T](data)
	if err != nil {
		s.log.ErrorContext(ctx, "failed to decode collection", "key", key, "error", err)
		return []T{}
	}
	return records
}
