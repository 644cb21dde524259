package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"audiovault/internal/api/rest/middleware"
	"audiovault/internal/logger"
	"audiovault/internal/model"
)

// OAuthService drives the provider authorization flow.
type OAuthService interface {
	Enabled() bool
	AuthURL(callerUID *uuid.UUID) (string, error)
	Authorize(ctx context.Context, code string, callerUID *uuid.UUID) (model.User, error)
}

// OAuth handles the provider login and account linking endpoints.
type OAuth struct {
	oauthService OAuthService
	tokenService TokenService
	logger       *logger.Logger
}

// NewOAuth creates a new OAuth handler.
func NewOAuth(oauthService OAuthService, tokenService TokenService, logger *logger.Logger) *OAuth {
	return &OAuth{
		oauthService: oauthService,
		tokenService: tokenService,
		logger:       logger,
	}
}

// callerUID returns the authenticated caller's uid when the optional
// authentication middleware resolved one.
func callerUID(c *gin.Context) *uuid.UUID {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil
	}

	uid := user.UID
	return &uid
}

// Start redirects the browser to the provider's authorization page. An
// authenticated caller is carried through the flow as state, turning the
// callback into a link rather than a login.
func (h *OAuth) Start(c *gin.Context) {
	authURL, err := h.oauthService.AuthURL(callerUID(c))
	if err != nil {
		handleError(c, err)
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// Callback finishes the flow: exchanges the code, logs in or links the
// account, and installs token cookies.
func (h *OAuth) Callback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "missing authorization code"})
		return
	}

	caller := callerUID(c)
	if caller == nil {
		if state := c.Query("state"); state != "" {
			uid, err := uuid.Parse(state)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "invalid state"})
				return
			}
			caller = &uid
		}
	}

	user, err := h.oauthService.Authorize(c.Request.Context(), code, caller)
	if err != nil {
		handleError(c, err)
		return
	}

	pair, err := h.tokenService.Issue(user.UID)
	if err != nil {
		handleError(c, err)
		return
	}

	h.logger.Info("oauth authorization completed", "uid", user.UID)

	setTokenCookies(c, pair)
	c.JSON(http.StatusOK, pair)
}
