package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/localconnect/localconnect-backend/internal/apperr"
	"github.com/localconnect/localconnect-backend/internal/app/service"
	"github.com/localconnect/localconnect-backend/internal/middleware"
)

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

// Create adds a review to a business.
// POST /api/v1/reviews
func (ctrl *ReviewController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	var input service.AddReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperr.BadRequest(c, apperr.ValidationInvalidInput, "Invalid review payload")
		return
	}

	// Authenticated users review under their token name, not an
	// arbitrary one.
	if name, ok := middleware.GetUserName(c); ok {
		input.UserName = name
	}

	review, err := ctrl.reviewService.AddReview(c.Request.Context(), sessionID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRating):
			apperr.BadRequest(c, apperr.ValidationInvalidRating, "Rating must be between 1 and 5")
		case errors.Is(err, service.ErrEmptyComment), errors.Is(err, service.ErrEmptyUserName):
			apperr.BadRequest(c, apperr.ValidationMissingField, err.Error())
		case errors.Is(err, service.ErrBusinessNotFound):
			apperr.NotFound(c, apperr.BusinessNotFound, "Business not found")
		default:
			log.Error("Failed to add review", err, nil)
			apperr.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"review": review})
}

// Delete removes the caller's own review.
// DELETE /api/v1/reviews/:id
func (ctrl *ReviewController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	userName, _ := middleware.GetUserName(c)
	if userName == "" {
		userName = c.Query("user_name")
	}
	if userName == "" {
		apperr.BadRequest(c, apperr.ValidationMissingField, "user_name is required")
		return
	}

	err := ctrl.reviewService.DeleteReview(c.Request.Context(), sessionID, c.Param("id"), userName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			apperr.NotFound(c, apperr.ReviewNotFound, "Review not found")
		case errors.Is(err, service.ErrNotReviewAuthor):
			apperr.Forbidden(c, apperr.AuthOwnerOnly, "You can only delete your own reviews")
		default:
			log.Error("Failed to delete review", err, nil)
			apperr.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}

// ForBusiness lists the session's reviews for one business.
// GET /api/v1/businesses/:id/reviews
func (ctrl *ReviewController) ForBusiness(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	reviews := ctrl.reviewService.BusinessReviews(c.Request.Context(), sessionID, c.Param("id"))

	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

// Mine lists the caller's reviews across businesses.
// GET /api/v1/reviews/mine
func (ctrl *ReviewController) Mine(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	userName, _ := middleware.GetUserName(c)
	if userName == "" {
		userName = c.Query("user_name")
	}

	reviews := ctrl.reviewService.UserReviews(c.Request.Context(), sessionID, userName)
	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
		"count":   len(reviews),
	})
}
