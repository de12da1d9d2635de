package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/localconnect/localconnect-backend/internal/apperr"
	"github.com/localconnect/localconnect-backend/internal/app/service"
	"github.com/localconnect/localconnect-backend/internal/middleware"
)

type FavoriteController struct {
	favoriteService service.FavoriteService
}

func NewFavoriteController(favoriteService service.FavoriteService) *FavoriteController {
	return &FavoriteController{favoriteService: favoriteService}
}

// Toggle flips favorite membership for a business.
// POST /api/v1/favorites/:id/toggle
func (ctrl *FavoriteController) Toggle(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)
	businessID := c.Param("id")

	favorited, err := ctrl.favoriteService.Toggle(c.Request.Context(), sessionID, businessID)
	if err != nil {
		if errors.Is(err, service.ErrBusinessNotFound) {
			apperr.NotFound(c, apperr.BusinessNotFound, "Business not found")
			return
		}
		log.Error("Failed to toggle favorite", err, map[string]interface{}{
			"business_id": businessID,
		})
		apperr.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"business_id": businessID,
		"is_favorite": favorited,
	})
}

// List returns the session's favorited businesses.
// GET /api/v1/favorites
func (ctrl *FavoriteController) List(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	favorites := ctrl.favoriteService.List(c.Request.Context(), sessionID)

	c.JSON(http.StatusOK, gin.H{
		"favorites": favorites,
		"count":     len(favorites),
	})
}
