package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"audiovault/internal/model"
)

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "self deletion", err: model.ErrSelfDeletion, status: http.StatusBadRequest},
		{name: "invalid file", err: fmt.Errorf("%w: bad extension", model.ErrInvalidFile), status: http.StatusBadRequest},
		{name: "missing token", err: model.ErrMissingToken, status: http.StatusUnauthorized},
		{name: "invalid credentials", err: model.ErrInvalidCredentials, status: http.StatusUnauthorized},
		{name: "invalid token", err: model.ErrInvalidToken, status: http.StatusForbidden},
		{name: "permission denied", err: model.ErrPermissionDenied, status: http.StatusForbidden},
		{name: "identity taken", err: model.ErrIdentityTaken, status: http.StatusForbidden},
		{name: "identity linked", err: model.ErrIdentityLinked, status: http.StatusForbidden},
		{name: "not found", err: model.ErrNotFound, status: http.StatusNotFound},
		{name: "email taken", err: model.ErrEmailTaken, status: http.StatusConflict},
		{name: "not configured", err: model.ErrNotConfigured, status: http.StatusNotImplemented},
		{name: "upstream", err: &model.UpstreamError{Status: 400, Body: "nope"}, status: http.StatusBadGateway},
		{name: "wrapped upstream", err: fmt.Errorf("exchange: %w", &model.UpstreamError{Status: 500}), status: http.StatusBadGateway},
		{name: "unknown", err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			handleError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), "detail")
		})
	}
}
