// Package middleware contains gin middleware shared by the REST routes.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"audiovault/internal/logger"
	"audiovault/internal/model"
)

const userContextKey = "currentUser"

// Access tokens ride either in the Authorization header or in a cookie set
// at login.
const accessCookieName = "access_token_cookie"

// UserResolver resolves the authenticated user behind an access token.
type UserResolver interface {
	ResolveUser(ctx context.Context, accessToken string) (model.User, error)
}

// Authenticate validates access tokens and injects the user into the
// request context.
type Authenticate struct {
	resolver UserResolver
	logger   *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(resolver UserResolver, logger *logger.Logger) *Authenticate {
	return &Authenticate{resolver: resolver, logger: logger}
}

func tokenFromRequest(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); auth != "" {
		return strings.TrimPrefix(auth, "Bearer ")
	}

	token, err := c.Cookie(accessCookieName)
	if err != nil {
		return ""
	}

	return token
}

// Required rejects requests without a valid access token.
func (m *Authenticate) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := m.resolver.ResolveUser(c.Request.Context(), tokenFromRequest(c))
		if err != nil {
			m.reject(c, err)
			return
		}

		SetCurrentUser(c, user)
		c.Next()
	}
}

// reject answers a failed resolution. A missing credential, an invalid
// token and a token naming no user are distinct failures; anything else is
// a server fault.
func (m *Authenticate) reject(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, model.ErrMissingToken):
		status = http.StatusUnauthorized
	case errors.Is(err, model.ErrInvalidToken):
		status = http.StatusForbidden
	case errors.Is(err, model.ErrNotFound):
		status = http.StatusNotFound
	default:
		m.logger.Error("failed to resolve user", "path", c.FullPath(), "error", err.Error())
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
		return
	}

	m.logger.Debug("request rejected", "path", c.FullPath(), "error", err)
	c.AbortWithStatusJSON(status, gin.H{"detail": err.Error()})
}

// Optional resolves the user when a valid token is present and lets the
// request through either way.
func (m *Authenticate) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.Next()
			return
		}

		user, err := m.resolver.ResolveUser(c.Request.Context(), token)
		if err == nil {
			SetCurrentUser(c, user)
		}

		c.Next()
	}
}

// SetCurrentUser stores the authenticated user on the request context.
func SetCurrentUser(c *gin.Context, user model.User) {
	c.Set(userContextKey, user)
}

// CurrentUser returns the user set by Authenticate, if any.
func CurrentUser(c *gin.Context) (model.User, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return model.User{}, false
	}

	user, ok := v.(model.User)
	return user, ok
}
