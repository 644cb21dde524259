package model

import "github.com/google/uuid"

// TokenManager generates and validates access/refresh tokens. The subject of
// every token is the user's public uid; validity is a function of signature
// and embedded expiry only, nothing is persisted.
type TokenManager interface {
	GenerateAccessToken(uid uuid.UUID) (string, error)
	GenerateRefreshToken(uid uuid.UUID) (string, error)
	ParseAccessToken(token string) (uuid.UUID, error)
	ParseRefreshToken(token string) (uuid.UUID, error)
}

// TokenPair is an issued access/refresh token pair.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}
