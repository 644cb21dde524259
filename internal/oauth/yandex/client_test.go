package yandex

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audiovault/internal/model"
)

func TestClient_ExchangeCode(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "app-id", r.PostForm.Get("client_id"))
			assert.Equal(t, "app-secret", r.PostForm.Get("client_secret"))
			assert.Equal(t, "https://verification_code/", r.PostForm.Get("redirect_uri"))
			assert.Equal(t, "the-code", r.PostForm.Get("code"))
			assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"provider-token","expires_in":3600}`))
		}))
		defer srv.Close()

		client := NewClient("app-id", "app-secret", "https://verification_code/")
		client.TokenURL = srv.URL

		token, err := client.ExchangeCode(context.Background(), "the-code")
		require.NoError(t, err)
		assert.Equal(t, "provider-token", token)
	})

	t.Run("provider error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"invalid_grant"}`))
		}))
		defer srv.Close()

		client := NewClient("app-id", "app-secret", "https://verification_code/")
		client.TokenURL = srv.URL

		_, err := client.ExchangeCode(context.Background(), "stale-code")
		require.Error(t, err)

		var upstream *model.UpstreamError
		require.True(t, errors.As(err, &upstream))
		assert.Equal(t, http.StatusBadRequest, upstream.Status)
		assert.Contains(t, upstream.Body, "invalid_grant")
	})

	t.Run("empty access token", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		client := NewClient("app-id", "app-secret", "https://verification_code/")
		client.TokenURL = srv.URL

		_, err := client.ExchangeCode(context.Background(), "the-code")
		require.Error(t, err)
	})
}

func TestClient_FetchUserInfo(t *testing.T) {
	t.Run("success with numeric id", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "OAuth provider-token", r.Header.Get("Authorization"))
			assert.Equal(t, "json", r.URL.Query().Get("format"))

			w.Write([]byte(`{"id":123456,"default_email":"user@yandex.ru","first_name":"Anna"}`))
		}))
		defer srv.Close()

		client := NewClient("app-id", "app-secret", "https://verification_code/")
		client.UserInfoURL = srv.URL

		profile, err := client.FetchUserInfo(context.Background(), "provider-token")
		require.NoError(t, err)
		assert.Equal(t, "123456", profile.ID)
		assert.Equal(t, "user@yandex.ru", profile.Email)
		assert.Equal(t, "Anna", profile.Username)
	})

	t.Run("string id", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"id":"987654","default_email":"boris@yandex.ru","first_name":"Boris"}`))
		}))
		defer srv.Close()

		client := NewClient("app-id", "app-secret", "https://verification_code/")
		client.UserInfoURL = srv.URL

		profile, err := client.FetchUserInfo(context.Background(), "provider-token")
		require.NoError(t, err)
		assert.Equal(t, "987654", profile.ID)
	})

	t.Run("unauthorized", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		client := NewClient("app-id", "app-secret", "https://verification_code/")
		client.UserInfoURL = srv.URL

		_, err := client.FetchUserInfo(context.Background(), "expired-token")

		var upstream *model.UpstreamError
		require.True(t, errors.As(err, &upstream))
		assert.Equal(t, http.StatusUnauthorized, upstream.Status)
	})
}
