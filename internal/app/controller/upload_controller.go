package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/localconnect/localconnect-backend/internal/apperr"
	"github.com/localconnect/localconnect-backend/internal/middleware"
	"github.com/localconnect/localconnect-backend/internal/storage"
)

type UploadController struct {
	storage *storage.S3Storage
}

func NewUploadController(s3 *storage.S3Storage) *UploadController {
	return &UploadController{storage: s3}
}

type presignRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Size        int64  `json:"size" binding:"required,gt=0"`
}

// PresignListingImage returns a presigned PUT URL for a listing photo.
// POST /api/v1/uploads/listing-image
func (ctrl *UploadController) PresignListingImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if _, ok := middleware.GetUserID(c); !ok {
		apperr.Unauthorized(c, "")
		return
	}

	var req presignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, apperr.ValidationInvalidInput, "filename, content_type and size are required")
		return
	}

	upload, err := ctrl.storage.PresignImageUpload(c.Request.Context(), req.Filename, req.ContentType, req.Size)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrFileTooLarge):
			apperr.BadRequest(c, apperr.UploadFileTooLarge, "Image exceeds the 5 MiB limit")
		case errors.Is(err, storage.ErrUnsupportedType):
			apperr.BadRequest(c, apperr.UploadInvalidFileType, "Only JPEG, PNG and WebP images are accepted")
		default:
			log.Error("Failed to presign upload", err, nil)
			apperr.Respond(c, http.StatusInternalServerError, apperr.UploadFailed, "Could not prepare upload")
		}
		return
	}

	c.JSON(http.StatusOK, upload)
}
