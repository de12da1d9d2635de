package controller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/localconnect/localconnect-backend/internal/apperr"
	"github.com/localconnect/localconnect-backend/internal/app/service"
	"github.com/localconnect/localconnect-backend/internal/middleware"
)

type ListingController struct {
	listingService service.ListingService
	reviewService  service.ReviewService
}

func NewListingController(
	listingService service.ListingService,
	reviewService service.ReviewService,
) *ListingController {
	return &ListingController{
		listingService: listingService,
		reviewService:  reviewService,
	}
}

// Create registers a user-submitted listing.
// POST /api/v1/listings
func (ctrl *ListingController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		apperr.Unauthorized(c, "")
		return
	}

	var input service.CreateListingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperr.BadRequest(c, apperr.ValidationInvalidInput, "Invalid listing payload")
		return
	}

	listing, err := ctrl.listingService.Create(c.Request.Context(), ownerID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingField):
			apperr.BadRequest(c, apperr.ValidationMissingField, err.Error())
		case errors.Is(err, service.ErrInvalidCategory):
			apperr.BadRequest(c, apperr.ValidationInvalidInput, "unknown category")
		case errors.Is(err, service.ErrMalformedCoordinate):
			apperr.BadRequest(c, apperr.ValidationMalformedCoordinate, "latitude/longitude out of range")
		default:
			log.Error("Failed to create listing", err, nil)
			apperr.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"listing": listing})
}

// List returns all user-submitted listings.
// GET /api/v1/listings
func (ctrl *ListingController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	listings, err := ctrl.listingService.All(c.Request.Context())
	if err != nil {
		log.Error("Failed to list listings", err, nil)
		apperr.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"listings": listings,
		"count":    len(listings),
	})
}

// Mine returns the caller's listings.
// GET /api/v1/listings/mine
func (ctrl *ListingController) Mine(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		apperr.Unauthorized(c, "")
		return
	}

	listings, err := ctrl.listingService.Mine(c.Request.Context(), ownerID)
	if err != nil {
		log.Error("Failed to list own listings", err, nil)
		apperr.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"listings": listings,
		"count":    len(listings),
	})
}

// Delete removes the caller's listing.
// DELETE /api/v1/listings/:id
func (ctrl *ListingController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		apperr.Unauthorized(c, "")
		return
	}

	err := ctrl.listingService.Delete(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrListingNotFound):
			apperr.NotFound(c, apperr.ListingNotFound, "Listing not found")
		case errors.Is(err, service.ErrNotListingOwner):
			apperr.Forbidden(c, apperr.AuthOwnerOnly, "You can only delete your own listings")
		default:
			log.Error("Failed to delete listing", err, nil)
			apperr.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Listing deleted"})
}

// ExportReviews streams an xlsx of the reviews on the caller's listings.
// GET /api/v1/listings/reviews/export
func (ctrl *ListingController) ExportReviews(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		apperr.Unauthorized(c, "")
		return
	}

	f, err := ctrl.listingService.ExportReviews(c.Request.Context(), sessionID, ownerID, ctrl.reviewService)
	if err != nil {
		log.Error("Failed to export reviews", err, nil)
		apperr.InternalError(c, "")
		return
	}

	filename := fmt.Sprintf("reviews-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		log.Error("Failed to stream export", err, nil)
	}
}
