package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localconnect/localconnect-backend/internal/app/model"
)

func newTestStore() *Store {
	return NewStore(NewMemoryStore(), time.Hour)
}

func TestStore_BusinessesRoundTrip(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	// Empty before any write.
	assert.Empty(t, store.GetBusinesses(ctx, "s1"))

	businesses := []model.Business{
		{ID: "1", Name: "Sophie's Artisan Bakery", Category: model.CategoryFood, Rating: 4.8, ReviewCount: 42},
		{ID: "user-3", Name: "Urban Bike Repair", Category: model.CategoryServices},
	}
	require.NoError(t, store.SetBusinesses(ctx, "s1", businesses))

	got := store.GetBusinesses(ctx, "s1")
	require.Len(t, got, 2)
	assert.Equal(t, "Sophie's Artisan Bakery", got[0].Name)
	assert.Equal(t, model.CategoryServices, got[1].Category)

	// Other sessions are isolated.
	assert.Empty(t, store.GetBusinesses(ctx, "s2"))
}

func TestStore_UnparsableEntryReadsAsEmpty(t *testing.T) {
	kv := NewMemoryStore()
	store := NewStore(kv, time.Hour)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, sessionKey("s1", keyReviews), []byte("{not json"), 0))

	assert.Empty(t, store.GetReviews(ctx, "s1"))
}

func TestStore_SetOverwritesWholeCollection(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	require.NoError(t, store.SetReviews(ctx, "s1", []model.Review{
		{ID: "r1", BusinessID: "1", Rating: 5},
		{ID: "r2", BusinessID: "1", Rating: 4},
	}))
	require.NoError(t, store.SetReviews(ctx, "s1", []model.Review{
		{ID: "r3", BusinessID: "2", Rating: 3},
	}))

	got := store.GetReviews(ctx, "s1")
	require.Len(t, got, 1)
	assert.Equal(t, "r3", got[0].ID)
}

func TestStore_ToggleFavorite(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	// First toggle adds, second removes.
	added, err := store.ToggleFavorite(ctx, "s1", "biz-1")
	require.NoError(t, err)
	assert.True(t, added)
	assert.True(t, store.IsFavorite(ctx, "s1", "biz-1"))

	removed, err := store.ToggleFavorite(ctx, "s1", "biz-1")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.False(t, store.IsFavorite(ctx, "s1", "biz-1"))
}

func TestStore_ToggleFavoritePreservesOthers(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	store.ToggleFavorite(ctx, "s1", "a")
	store.ToggleFavorite(ctx, "s1", "b")
	store.ToggleFavorite(ctx, "s1", "c")
	store.ToggleFavorite(ctx, "s1", "b")

	assert.ElementsMatch(t, []string{"a", "c"}, store.GetFavorites(ctx, "s1"))
}

func TestStore_Clear(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	store.SetBusinesses(ctx, "s1", []model.Business{{ID: "1"}})
	store.ToggleFavorite(ctx, "s1", "1")
	require.NoError(t, store.Clear(ctx, "s1"))

	assert.Empty(t, store.GetBusinesses(ctx, "s1"))
	assert.Empty(t, store.GetFavorites(ctx, "s1"))
}

func TestMemoryStore_TTLExpiry(t *testing.T) {
	kv := NewMemoryStore()
	ctx := context.Background()

	now := time.Now()
	kv.now = func() time.Time { return now }

	require.NoError(t, kv.Set(ctx, "k", []byte("v"), time.Minute))

	val, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), val)

	now = now.Add(2 * time.Minute)

	val, err = kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestMemoryStore_ExpiredKeys(t *testing.T) {
	kv := NewMemoryStore()
	ctx := context.Background()

	now := time.Now()
	kv.now = func() time.Time { return now }

	kv.Set(ctx, "session:a:businesses", []byte("[]"), time.Minute)
	kv.Set(ctx, "session:b:businesses", []byte("[]"), time.Hour)
	kv.Set(ctx, "other:key", []byte("x"), time.Minute)

	now = now.Add(10 * time.Minute)

	expired, err := kv.ExpiredKeys(ctx, "session:")
	require.NoError(t, err)
	assert.Equal(t, []string{"session:a:businesses"}, expired)
}
