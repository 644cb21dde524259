// Package handler contains the REST endpoint handlers.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"audiovault/internal/logger"
	"audiovault/internal/model"
)

// AuthService verifies login credentials.
type AuthService interface {
	VerifyLogin(ctx context.Context, email, password string) (model.User, error)
}

// TokenService issues and refreshes token pairs.
type TokenService interface {
	Issue(uid uuid.UUID) (model.TokenPair, error)
	Refresh(presentedRefresh string) (model.TokenPair, error)
}

// Auth handles login, refresh and logout endpoints.
type Auth struct {
	authService  AuthService
	tokenService TokenService
	logger       *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, tokenService TokenService, logger *logger.Logger) *Auth {
	return &Auth{
		authService:  authService,
		tokenService: tokenService,
		logger:       logger,
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and returns a token pair, additionally set as
// cookies.
func (h *Auth) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	user, err := h.authService.VerifyLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Debug("login failed", "email", req.Email, "error", err)
		handleError(c, err)
		return
	}

	pair, err := h.tokenService.Issue(user.UID)
	if err != nil {
		handleError(c, err)
		return
	}

	h.logger.Info("user logged in", "uid", user.UID)

	setTokenCookies(c, pair)
	c.JSON(http.StatusOK, pair)
}

// Refresh exchanges a valid refresh token for a fresh pair. The token is
// read from the refresh cookie.
func (h *Auth) Refresh(c *gin.Context) {
	presented := refreshTokenFromRequest(c)
	if presented == "" {
		handleError(c, model.ErrMissingToken)
		return
	}

	pair, err := h.tokenService.Refresh(presented)
	if err != nil {
		handleError(c, err)
		return
	}

	setTokenCookies(c, pair)
	c.JSON(http.StatusOK, pair)
}

// Logout clears the token cookies. Tokens themselves stay valid until they
// expire.
func (h *Auth) Logout(c *gin.Context) {
	clearTokenCookies(c)
	c.JSON(http.StatusOK, gin.H{"detail": "logged out"})
}
