// Package yandex talks to the Yandex OAuth token and userinfo endpoints.
package yandex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"audiovault/internal/model"
)

const (
	defaultTokenURL    = "https://oauth.yandex.ru/token"
	defaultUserInfoURL = "https://login.yandex.ru/info"
	requestTimeout     = 10 * time.Second
)

var _ model.OAuthProvider = (*Client)(nil)

// Client exchanges authorization codes and fetches profiles. TokenURL and
// UserInfoURL default to the production endpoints and are overridable for
// tests.
type Client struct {
	appID        string
	clientSecret string
	redirectURI  string
	httpClient   *http.Client

	TokenURL    string
	UserInfoURL string
}

// NewClient creates a provider client with the application credentials.
func NewClient(appID, clientSecret, redirectURI string) *Client {
	return &Client{
		appID:        appID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		httpClient:   &http.Client{Timeout: requestTimeout},
		TokenURL:     defaultTokenURL,
		UserInfoURL:  defaultUserInfoURL,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// flexID tolerates the provider serializing the subject id as either a JSON
// string or a bare number.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("unexpected id value %s", b)
	}
	*f = flexID(n.String())

	return nil
}

// userInfo is the subset of the Yandex profile the service reads.
type userInfo struct {
	ID           flexID `json:"id"`
	DefaultEmail string `json:"default_email"`
	FirstName    string `json:"first_name"`
}

// ExchangeCode trades an authorization code for a provider access token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("client_id", c.appID)
	form.Set("client_secret", c.clientSecret)
	form.Set("redirect_uri", c.redirectURI)
	form.Set("code", code)
	form.Set("grant_type", "authorization_code")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var tr tokenResponse
	if err := c.do(req, &tr); err != nil {
		return "", err
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("token response carries no access token")
	}

	return tr.AccessToken, nil
}

// FetchUserInfo loads the profile behind a provider access token.
func (c *Client) FetchUserInfo(ctx context.Context, accessToken string) (model.OAuthProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.UserInfoURL+"?format=json", nil)
	if err != nil {
		return model.OAuthProfile{}, fmt.Errorf("failed to build userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+accessToken)

	var info userInfo
	if err := c.do(req, &info); err != nil {
		return model.OAuthProfile{}, err
	}

	return model.OAuthProfile{
		ID:       string(info.ID),
		Email:    info.DefaultEmail,
		Username: info.FirstName,
	}, nil
}

// do runs the request and decodes the JSON body. A non-2xx response is an
// UpstreamError carrying the provider's raw body.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read provider response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &model.UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode provider response: %w", err)
	}

	return nil
}
