package model

import "context"

// OAuthProvider exchanges an authorization code for a provider access token
// and fetches the profile tied to it.
type OAuthProvider interface {
	ExchangeCode(ctx context.Context, code string) (string, error)
	FetchUserInfo(ctx context.Context, accessToken string) (OAuthProfile, error)
}

// OAuthProfile is the subset of a provider profile the service stores.
// Username is best-effort and may be empty.
type OAuthProfile struct {
	ID       string
	Email    string
	Username string
}
