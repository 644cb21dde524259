package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"audiovault/internal/model"
)

const (
	accessCookieName  = "access_token_cookie"
	refreshCookieName = "refresh_token_cookie"
)

// setTokenCookies installs both tokens as secure HTTP-only session cookies.
func setTokenCookies(c *gin.Context, pair model.TokenPair) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     accessCookieName,
		Value:    pair.AccessToken,
		Path:     "/",
		Secure:   true,
		HttpOnly: true,
	})
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     refreshCookieName,
		Value:    pair.RefreshToken,
		Path:     "/",
		Secure:   true,
		HttpOnly: true,
	})
}

// clearTokenCookies expires both token cookies.
func clearTokenCookies(c *gin.Context) {
	for _, name := range []string{accessCookieName, refreshCookieName} {
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Secure:   true,
			HttpOnly: true,
		})
	}
}

// refreshTokenFromRequest reads the refresh token cookie, empty when absent.
func refreshTokenFromRequest(c *gin.Context) string {
	token, err := c.Cookie(refreshCookieName)
	if err != nil {
		return ""
	}

	return token
}
