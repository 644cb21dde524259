package service

import (
	"fmt"

	"github.com/google/uuid"

	"audiovault/internal/logger"
	"audiovault/internal/model"
)

// TokenService issues and refreshes access/refresh token pairs. Refresh is
// rolling: a valid refresh token yields a brand-new pair for the same
// subject, and nothing is persisted — a token stays valid until its own
// expiry.
type TokenService struct {
	manager model.TokenManager
	logger  *logger.Logger
}

func NewTokenService(manager model.TokenManager, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, logger: logger}
}

const tokenTypeBearer = "bearer"

// Issue creates a fresh pair for the given subject uid.
func (s *TokenService) Issue(uid uuid.UUID) (model.TokenPair, error) {
	access, err := s.manager.GenerateAccessToken(uid)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("issue access: %w", err)
	}

	refresh, err := s.manager.GenerateRefreshToken(uid)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("issue refresh: %w", err)
	}

	return model.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    tokenTypeBearer,
	}, nil
}

// Refresh validates the presented refresh token and re-issues both tokens
// with the same subject.
func (s *TokenService) Refresh(presentedRefresh string) (model.TokenPair, error) {
	uid, err := s.manager.ParseRefreshToken(presentedRefresh)
	if err != nil {
		s.logger.Debug("Token service: refresh token rejected", "error", err.Error())
		return model.TokenPair{}, model.ErrInvalidToken
	}

	return s.Issue(uid)
}

// GetUserUID extracts the subject uid from a verified access token.
func (s *TokenService) GetUserUID(accessToken string) (uuid.UUID, error) {
	return s.manager.ParseAccessToken(accessToken)
}
