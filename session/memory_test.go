package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

	store := NewMemoryStore(time.Hour)
	store.now = func() time.Time { return now }

	_, err := store.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, Snapshot{ID: "a"}))
	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID)

	now = now.Add(2 * time.Hour)
	_, err = store.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreSweepsExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

	store := NewMemoryStore(time.Hour)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Put(ctx, Snapshot{ID: "old"}))
	now = now.Add(2 * time.Hour)
	require.NoError(t, store.Put(ctx, Snapshot{ID: "new"}))

	assert.Len(t, store.entries, 1)
	assert.Contains(t, store.entries, "new")
}
