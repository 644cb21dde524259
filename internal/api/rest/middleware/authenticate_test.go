package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audiovault/internal/model"
	"audiovault/internal/testutil"
)

type fakeResolver struct {
	user model.User
	err  error

	gotToken string
}

func (f *fakeResolver) ResolveUser(_ context.Context, accessToken string) (model.User, error) {
	f.gotToken = accessToken
	if f.err != nil {
		return model.User{}, f.err
	}
	if accessToken == "" {
		return model.User{}, model.ErrMissingToken
	}
	return f.user, nil
}

func newTestRouter(m *Authenticate, required bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	guard := m.Optional()
	if required {
		guard = m.Required()
	}

	engine.GET("/probe", guard, func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"user": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user.Email})
	})

	return engine
}

func TestAuthenticate_Required(t *testing.T) {
	user := model.User{Email: "anna@example.com"}

	t.Run("bearer header", func(t *testing.T) {
		resolver := &fakeResolver{user: user}
		engine := newTestRouter(NewAuthenticate(resolver, testutil.MakeNoopLogger()), true)

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer the-token")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "the-token", resolver.gotToken)
		assert.Contains(t, w.Body.String(), "anna@example.com")
	})

	t.Run("cookie fallback", func(t *testing.T) {
		resolver := &fakeResolver{user: user}
		engine := newTestRouter(NewAuthenticate(resolver, testutil.MakeNoopLogger()), true)

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.AddCookie(&http.Cookie{Name: accessCookieName, Value: "cookie-token"})
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "cookie-token", resolver.gotToken)
	})

	t.Run("header wins over cookie", func(t *testing.T) {
		resolver := &fakeResolver{user: user}
		engine := newTestRouter(NewAuthenticate(resolver, testutil.MakeNoopLogger()), true)

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer header-token")
		req.AddCookie(&http.Cookie{Name: accessCookieName, Value: "cookie-token"})
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "header-token", resolver.gotToken)
	})

	t.Run("missing token", func(t *testing.T) {
		resolver := &fakeResolver{user: user}
		engine := newTestRouter(NewAuthenticate(resolver, testutil.MakeNoopLogger()), true)

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		resolver := &fakeResolver{err: model.ErrInvalidToken}
		engine := newTestRouter(NewAuthenticate(resolver, testutil.MakeNoopLogger()), true)

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer bad")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "could not validate credentials")
	})

	t.Run("token names no user", func(t *testing.T) {
		resolver := &fakeResolver{err: model.ErrNotFound}
		engine := newTestRouter(NewAuthenticate(resolver, testutil.MakeNoopLogger()), true)

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer stale")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "not found")
	})

	t.Run("store failure", func(t *testing.T) {
		resolver := &fakeResolver{err: errors.New("connection reset")}
		engine := newTestRouter(NewAuthenticate(resolver, testutil.MakeNoopLogger()), true)

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer good")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "internal server error")
	})
}

func TestAuthenticate_Optional(t *testing.T) {
	t.Run("anonymous passes", func(t *testing.T) {
		resolver := &fakeResolver{}
		engine := newTestRouter(NewAuthenticate(resolver, testutil.MakeNoopLogger()), false)

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "null")
	})

	t.Run("invalid token still passes", func(t *testing.T) {
		resolver := &fakeResolver{err: model.ErrInvalidToken}
		engine := newTestRouter(NewAuthenticate(resolver, testutil.MakeNoopLogger()), false)

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer bad")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "null")
	})

	t.Run("valid token resolves user", func(t *testing.T) {
		resolver := &fakeResolver{user: model.User{Email: "anna@example.com"}}
		engine := newTestRouter(NewAuthenticate(resolver, testutil.MakeNoopLogger()), false)

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer good")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "anna@example.com")
	})
}
