package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"audiovault/internal/model"
)

// handleError maps service errors to HTTP responses. The body carries a
// single "detail" field.
func handleError(c *gin.Context, err error) {
	var upstream *model.UpstreamError
	if errors.As(err, &upstream) {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"detail": upstream.Error()})
		return
	}

	var status int
	switch {
	case errors.Is(err, model.ErrSelfDeletion), errors.Is(err, model.ErrInvalidFile):
		status = http.StatusBadRequest
	case errors.Is(err, model.ErrMissingToken), errors.Is(err, model.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, model.ErrInvalidToken),
		errors.Is(err, model.ErrPermissionDenied),
		errors.Is(err, model.ErrIdentityTaken),
		errors.Is(err, model.ErrIdentityLinked):
		status = http.StatusForbidden
	case errors.Is(err, model.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrEmailTaken):
		status = http.StatusConflict
	case errors.Is(err, model.ErrNotConfigured):
		status = http.StatusNotImplemented
	default:
		c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
		return
	}

	c.AbortWithStatusJSON(status, gin.H{"detail": err.Error()})
}
