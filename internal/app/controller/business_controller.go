package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/localconnect/localconnect-backend/internal/apperr"
	"github.com/localconnect/localconnect-backend/internal/app/service"
	"github.com/localconnect/localconnect-backend/internal/middleware"
	"github.com/localconnect/localconnect-backend/internal/provider/yelp"
)

type BusinessController struct {
	businessService service.BusinessService
	favoriteService service.FavoriteService
}

func NewBusinessController(
	businessService service.BusinessService,
	favoriteService service.FavoriteService,
) *BusinessController {
	return &BusinessController{
		businessService: businessService,
		favoriteService: favoriteService,
	}
}

// Nearby aggregates businesses around a coordinate.
// GET /api/v1/businesses/nearby?lat=..&lng=..&category=..
func (ctrl *BusinessController) Nearby(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		apperr.BadRequest(c, apperr.ValidationMalformedCoordinate, "lat must be a number")
		return
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		apperr.BadRequest(c, apperr.ValidationMalformedCoordinate, "lng must be a number")
		return
	}

	businesses, err := ctrl.businessService.Nearby(c.Request.Context(), sessionID, lat, lng, c.Query("category"))
	if err != nil {
		ctrl.respondNearbyError(c, err)
		return
	}

	log.Info("Nearby businesses served", map[string]interface{}{
		"count": len(businesses),
	})
	c.JSON(http.StatusOK, gin.H{
		"businesses": businesses,
		"count":      len(businesses),
	})
}

func (ctrl *BusinessController) respondNearbyError(c *gin.Context, err error) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrMalformedCoordinate):
		apperr.BadRequest(c, apperr.ValidationMalformedCoordinate, "latitude/longitude out of range")
	case errors.Is(err, service.ErrInvalidCategory):
		apperr.BadRequest(c, apperr.ValidationInvalidInput, "unknown category")
	case errors.Is(err, yelp.ErrMissingAPIKey):
		log.Error("Provider credential not configured", err, nil)
		apperr.BadGateway(c, apperr.FetchMissingCredential, "Business listings are unavailable")
	default:
		var statusErr *yelp.StatusError
		if errors.As(err, &statusErr) {
			log.Error("Provider rejected request", err, map[string]interface{}{
				"status": statusErr.Code,
			})
			apperr.BadGateway(c, apperr.FetchNonSuccessStatus, "Business listings are unavailable")
			return
		}
		log.Error("Nearby aggregation failed", err, nil)
		apperr.InternalError(c, "")
	}
}

// List returns the session's current business collection.
// GET /api/v1/businesses
func (ctrl *BusinessController) List(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	businesses := ctrl.businessService.Cached(c.Request.Context(), sessionID)

	c.JSON(http.StatusOK, gin.H{
		"businesses": businesses,
		"count":      len(businesses),
	})
}

// Get returns one business with its favorite state.
// GET /api/v1/businesses/:id
func (ctrl *BusinessController) Get(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	businessID := c.Param("id")

	business, err := ctrl.businessService.Get(c.Request.Context(), sessionID, businessID)
	if err != nil {
		apperr.NotFound(c, apperr.BusinessNotFound, "Business not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"business":    business,
		"is_favorite": ctrl.favoriteService.IsFavorite(c.Request.Context(), sessionID, businessID),
	})
}
