package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/localconnect/localconnect-backend/internal/app/model"
	"github.com/localconnect/localconnect-backend/internal/cache"
	"github.com/localconnect/localconnect-backend/pkg/logger"
)

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrNotReviewAuthor = errors.New("only the review author may delete it")
	ErrInvalidRating   = errors.New("rating must be an integer between 1 and 5")
	ErrEmptyComment    = errors.New("review comment must not be empty")
	ErrEmptyUserName   = errors.New("review user name must not be empty")
)

// AddReviewInput is a review submission.
type AddReviewInput struct {
	BusinessID string `json:"business_id" binding:"required"`
	UserName   string `json:"user_name" binding:"required"`
	Rating     int    `json:"rating" binding:"required"`
	Comment    string `json:"comment" binding:"required"`
	Verified   bool   `json:"verified"`
}

// ReviewService owns the review collection and keeps each business's
// rating/review-count aggregates in sync with it. Reviews are never
// edited in place; deletion plus re-creation is the edit path.
type ReviewService interface {
	AddReview(ctx context.Context, sessionID string, input AddReviewInput) (*model.Review, error)
	DeleteReview(ctx context.Context, sessionID, reviewID, userName string) error
	BusinessReviews(ctx context.Context, sessionID, businessID string) []model.Review
	UserReviews(ctx context.Context, sessionID, userName string) []model.Review
}

type reviewService struct {
	store           *cache.Store
	businessService BusinessService
}

func NewReviewService(store *cache.Store, businessService BusinessService) ReviewService {
	return &reviewService{
		store:           store,
		businessService: businessService,
	}
}

// AddReview appends the review and recomputes the owning business's
// aggregates under the session's write lock, so no other mutation of the
// same session can interleave with the read-recompute-write cycle.
func (s *reviewService) AddReview(ctx context.Context, sessionID string, input AddReviewInput) (*model.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}
	if strings.TrimSpace(input.Comment) == "" {
		return nil, ErrEmptyComment
	}
	if strings.TrimSpace(input.UserName) == "" {
		return nil, ErrEmptyUserName
	}

	if _, err := s.businessService.Get(ctx, sessionID, input.BusinessID); err != nil {
		return nil, err
	}

	review := model.Review{
		ID:         uuid.NewString(),
		BusinessID: input.BusinessID,
		UserName:   input.UserName,
		Rating:     input.Rating,
		Comment:    input.Comment,
		Date:       time.Now().Format("2006-01-02"),
		Verified:   input.Verified,
	}

	err := s.store.WithLock(sessionID, func() error {
		reviews := append(s.store.GetReviews(ctx, sessionID), review)
		if err := s.store.SetReviews(ctx, sessionID, reviews); err != nil {
			return err
		}
		return s.recomputeAggregates(ctx, sessionID, input.BusinessID, reviews)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Review added", map[string]interface{}{
		"session_id":  sessionID,
		"business_id": input.BusinessID,
		"rating":      input.Rating,
	})
	return &review, nil
}

// DeleteReview removes the review and recomputes aggregates. Ownership
// is matched on user name; real identity lives with the external auth
// provider, this is the UI-level guard the app relies on.
func (s *reviewService) DeleteReview(ctx context.Context, sessionID, reviewID, userName string) error {
	err := s.store.WithLock(sessionID, func() error {
		reviews := s.store.GetReviews(ctx, sessionID)

		index := -1
		for i, r := range reviews {
			if r.ID == reviewID {
				index = i
				break
			}
		}
		if index == -1 {
			return ErrReviewNotFound
		}
		if reviews[index].UserName != userName {
			return ErrNotReviewAuthor
		}

		businessID := reviews[index].BusinessID
		reviews = append(reviews[:index], reviews[index+1:]...)
		if err := s.store.SetReviews(ctx, sessionID, reviews); err != nil {
			return err
		}
		return s.recomputeAggregates(ctx, sessionID, businessID, reviews)
	})
	if err != nil {
		return err
	}

	logger.Info("Review deleted", map[string]interface{}{
		"session_id": sessionID,
		"review_id":  reviewID,
	})
	return nil
}

// BusinessReviews lists the session's reviews for one business.
func (s *reviewService) BusinessReviews(ctx context.Context, sessionID, businessID string) []model.Review {
	var matched []model.Review
	for _, r := range s.store.GetReviews(ctx, sessionID) {
		if r.BusinessID == businessID {
			matched = append(matched, r)
		}
	}
	return matched
}

// UserReviews lists the session's reviews written by one user.
func (s *reviewService) UserReviews(ctx context.Context, sessionID, userName string) []model.Review {
	var matched []model.Review
	for _, r := range s.store.GetReviews(ctx, sessionID) {
		if r.UserName == userName {
			matched = append(matched, r)
		}
	}
	return matched
}

// recomputeAggregates rewrites the business's rating and review count
// from the full review set. Zero reviews resets both to zero rather than
// leaving stale values. Callers must hold the session lock.
func (s *reviewService) recomputeAggregates(ctx context.Context, sessionID, businessID string, reviews []model.Review) error {
	businesses := s.store.GetBusinesses(ctx, sessionID)

	index := -1
	for i, b := range businesses {
		if b.ID == businessID {
			index = i
			break
		}
	}
	if index == -1 {
		// Business not in the session cache (e.g. a listing nobody has
		// browsed yet); nothing to update.
		return nil
	}

	var sum, count int
	for _, r := range reviews {
		if r.BusinessID == businessID {
			sum += r.Rating
			count++
		}
	}

	if count == 0 {
		businesses[index].Rating = 0
		businesses[index].ReviewCount = 0
	} else {
		mean := float64(sum) / float64(count)
		businesses[index].Rating = math.Round(mean*10) / 10
		businesses[index].ReviewCount = count
	}

	return s.store.SetBusinesses(ctx, sessionID, businesses)
}
