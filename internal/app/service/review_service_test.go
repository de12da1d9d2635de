package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localconnect/localconnect-backend/internal/app/model"
	"github.com/localconnect/localconnect-backend/internal/cache"
)

type stubBusinessService struct {
	businesses map[string]model.Business
	cached     []model.Business
}

func (s *stubBusinessService) Nearby(ctx context.Context, sessionID string, lat, lng float64, category string) ([]model.Business, error) {
	return nil, nil
}

func (s *stubBusinessService) Cached(ctx context.Context, sessionID string) []model.Business {
	return s.cached
}

func (s *stubBusinessService) Get(ctx context.Context, sessionID, businessID string) (*model.Business, error) {
	if b, ok := s.businesses[businessID]; ok {
		return &b, nil
	}
	return nil, ErrBusinessNotFound
}

func setupReviewService(t *testing.T) (ReviewService, *cache.Store) {
	t.Helper()
	store := cache.NewStore(cache.NewMemoryStore(), 0)
	biz := &stubBusinessService{businesses: map[string]model.Business{
		"b1": {ID: "b1", Name: "Sophie's Artisan Bakery"},
	}}
	return NewReviewService(store, biz), store
}

func seedBusiness(t *testing.T, store *cache.Store, sessionID string) {
	t.Helper()
	err := store.SetBusinesses(context.Background(), sessionID, []model.Business{
		{ID: "b1", Name: "Sophie's Artisan Bakery", Rating: 4.8, ReviewCount: 42},
	})
	require.NoError(t, err)
}

func TestReviewService_AddRecomputesRating(t *testing.T) {
	svc, store := setupReviewService(t)
	ctx := context.Background()
	seedBusiness(t, store, "s1")

	_, err := svc.AddReview(ctx, "s1", AddReviewInput{
		BusinessID: "b1", UserName: "alice", Rating: 5, Comment: "Great croissants",
	})
	require.NoError(t, err)
	_, err = svc.AddReview(ctx, "s1", AddReviewInput{
		BusinessID: "b1", UserName: "bob", Rating: 4, Comment: "Solid",
	})
	require.NoError(t, err)

	businesses := store.GetBusinesses(ctx, "s1")
	require.Len(t, businesses, 1)
	assert.Equal(t, 4.5, businesses[0].Rating)
	assert.Equal(t, 2, businesses[0].ReviewCount)

	// A third review pulls the mean to 4.0 exactly.
	_, err = svc.AddReview(ctx, "s1", AddReviewInput{
		BusinessID: "b1", UserName: "carol", Rating: 3, Comment: "Busy at noon",
	})
	require.NoError(t, err)

	businesses = store.GetBusinesses(ctx, "s1")
	assert.Equal(t, 4.0, businesses[0].Rating)
	assert.Equal(t, 3, businesses[0].ReviewCount)
}

func TestReviewService_RatingRoundsToOneDecimal(t *testing.T) {
	svc, store := setupReviewService(t)
	ctx := context.Background()
	seedBusiness(t, store, "s1")

	// 5 + 4 + 4 = 13/3 = 4.333... -> 4.3
	for _, r := range []struct {
		user   string
		rating int
	}{{"a", 5}, {"b", 4}, {"c", 4}} {
		_, err := svc.AddReview(ctx, "s1", AddReviewInput{
			BusinessID: "b1", UserName: r.user, Rating: r.rating, Comment: "ok",
		})
		require.NoError(t, err)
	}

	businesses := store.GetBusinesses(ctx, "s1")
	assert.Equal(t, 4.3, businesses[0].Rating)
}

func TestReviewService_DeleteRecomputesAndResets(t *testing.T) {
	svc, store := setupReviewService(t)
	ctx := context.Background()
	seedBusiness(t, store, "s1")

	r1, err := svc.AddReview(ctx, "s1", AddReviewInput{
		BusinessID: "b1", UserName: "alice", Rating: 5, Comment: "Great",
	})
	require.NoError(t, err)
	r2, err := svc.AddReview(ctx, "s1", AddReviewInput{
		BusinessID: "b1", UserName: "bob", Rating: 4, Comment: "Good",
	})
	require.NoError(t, err)
	r3, err := svc.AddReview(ctx, "s1", AddReviewInput{
		BusinessID: "b1", UserName: "carol", Rating: 3, Comment: "Fine",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteReview(ctx, "s1", r3.ID, "carol"))
	businesses := store.GetBusinesses(ctx, "s1")
	assert.Equal(t, 4.5, businesses[0].Rating)
	assert.Equal(t, 2, businesses[0].ReviewCount)

	require.NoError(t, svc.DeleteReview(ctx, "s1", r2.ID, "bob"))
	require.NoError(t, svc.DeleteReview(ctx, "s1", r1.ID, "alice"))

	businesses = store.GetBusinesses(ctx, "s1")
	assert.Equal(t, 0.0, businesses[0].Rating)
	assert.Equal(t, 0, businesses[0].ReviewCount)
}

func TestReviewService_DeleteRequiresAuthor(t *testing.T) {
	svc, store := setupReviewService(t)
	ctx := context.Background()
	seedBusiness(t, store, "s1")

	review, err := svc.AddReview(ctx, "s1", AddReviewInput{
		BusinessID: "b1", UserName: "alice", Rating: 5, Comment: "Great",
	})
	require.NoError(t, err)

	err = svc.DeleteReview(ctx, "s1", review.ID, "mallory")
	assert.ErrorIs(t, err, ErrNotReviewAuthor)

	// The review and aggregates are untouched.
	assert.Len(t, svc.BusinessReviews(ctx, "s1", "b1"), 1)
	assert.Equal(t, 1, store.GetBusinesses(ctx, "s1")[0].ReviewCount)
}

func TestReviewService_DeleteMissingReview(t *testing.T) {
	svc, _ := setupReviewService(t)

	err := svc.DeleteReview(context.Background(), "s1", "nope", "alice")
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestReviewService_ValidatesInput(t *testing.T) {
	svc, store := setupReviewService(t)
	ctx := context.Background()
	seedBusiness(t, store, "s1")

	_, err := svc.AddReview(ctx, "s1", AddReviewInput{BusinessID: "b1", UserName: "a", Rating: 0, Comment: "x"})
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = svc.AddReview(ctx, "s1", AddReviewInput{BusinessID: "b1", UserName: "a", Rating: 6, Comment: "x"})
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = svc.AddReview(ctx, "s1", AddReviewInput{BusinessID: "b1", UserName: "a", Rating: 4, Comment: "   "})
	assert.ErrorIs(t, err, ErrEmptyComment)

	_, err = svc.AddReview(ctx, "s1", AddReviewInput{BusinessID: "b1", UserName: "", Rating: 4, Comment: "x"})
	assert.ErrorIs(t, err, ErrEmptyUserName)

	_, err = svc.AddReview(ctx, "s1", AddReviewInput{BusinessID: "missing", UserName: "a", Rating: 4, Comment: "x"})
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestReviewService_ReviewsAreSessionScoped(t *testing.T) {
	svc, store := setupReviewService(t)
	ctx := context.Background()
	seedBusiness(t, store, "s1")
	seedBusiness(t, store, "s2")

	_, err := svc.AddReview(ctx, "s1", AddReviewInput{
		BusinessID: "b1", UserName: "alice", Rating: 5, Comment: "Great",
	})
	require.NoError(t, err)

	assert.Len(t, svc.BusinessReviews(ctx, "s1", "b1"), 1)
	assert.Empty(t, svc.BusinessReviews(ctx, "s2", "b1"))
	assert.Equal(t, 42, store.GetBusinesses(ctx, "s2")[0].ReviewCount)
}

func TestReviewService_UserReviews(t *testing.T) {
	svc, store := setupReviewService(t)
	ctx := context.Background()
	seedBusiness(t, store, "s1")

	_, err := svc.AddReview(ctx, "s1", AddReviewInput{
		BusinessID: "b1", UserName: "alice", Rating: 5, Comment: "Great",
	})
	require.NoError(t, err)
	_, err = svc.AddReview(ctx, "s1", AddReviewInput{
		BusinessID: "b1", UserName: "bob", Rating: 4, Comment: "Good",
	})
	require.NoError(t, err)

	mine := svc.UserReviews(ctx, "s1", "alice")
	require.Len(t, mine, 1)
	assert.Equal(t, "alice", mine[0].UserName)
}
