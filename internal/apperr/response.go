package apperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error   string `json:"error"`   // machine-readable code (codes.go)
	Message string `json:"message"` // human-readable message
}

// Respond writes a JSON error response.
func Respond(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// Shorthand helpers for the common cases.

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	Respond(c, http.StatusUnauthorized, AuthUnauthorized, message)
}

func Forbidden(c *gin.Context, errorCode, message string) {
	Respond(c, http.StatusForbidden, errorCode, message)
}

func BadRequest(c *gin.Context, errorCode, message string) {
	Respond(c, http.StatusBadRequest, errorCode, message)
}

func NotFound(c *gin.Context, errorCode, message string) {
	Respond(c, http.StatusNotFound, errorCode, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Something went wrong. Please try again later"
	}
	Respond(c, http.StatusInternalServerError, InternalServerError, message)
}

// BadGateway reports an upstream provider failure that we could not fall
// back from.
func BadGateway(c *gin.Context, errorCode, message string) {
	Respond(c, http.StatusBadGateway, errorCode, message)
}
