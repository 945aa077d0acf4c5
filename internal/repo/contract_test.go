package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/activity-logbook/internal/repo"
)

// runKVStoreContract exercises the behavior every KVStore backend must share.
// newStore must return an empty store isolated from other subtests.
func runKVStoreContract(t *testing.T, newStore func(t *testing.T) repo.KVStore) {
	t.Helper()

	t.Run("get never written key is absent", func(t *testing.T) {
		s := newStore(t)

		v, ok, err := s.Get(context.Background(), "userActivities")

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, v)
	})

	t.Run("put then get returns value", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Put(ctx, "userActivities", []byte(`[{"a":1}]`)))
		v, ok, err := s.Get(ctx, "userActivities")

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte(`[{"a":1}]`), v)
	})

	t.Run("empty value is present, not absent", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Put(ctx, "userBookedActivities", []byte{}))
		v, ok, err := s.Get(ctx, "userBookedActivities")

		require.NoError(t, err)
		assert.True(t, ok, "written-empty must not read back as never-written")
		assert.Empty(t, v)
	})

	t.Run("last write wins", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Put(ctx, "userActivities", []byte("first")))
		require.NoError(t, s.Put(ctx, "userActivities", []byte("second")))
		v, _, err := s.Get(ctx, "userActivities")

		require.NoError(t, err)
		assert.Equal(t, []byte("second"), v)
	})

	t.Run("keys are independent", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Put(ctx, "userActivities", []byte("a")))

		_, ok, err := s.Get(ctx, "userBookedActivities")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("caller mutation does not leak into store", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		buf := []byte("abc")
		require.NoError(t, s.Put(ctx, "userActivities", buf))
		buf[0] = 'z'

		v, _, err := s.Get(ctx, "userActivities")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), v)
	})
}
