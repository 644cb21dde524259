package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"audiovault/internal/logger"
	"audiovault/internal/model"
)

const yandexAuthBaseURL = "https://oauth.yandex.ru/authorize"

// OAuth handles federation with the Yandex identity provider: building the
// authorize URL and turning a callback code into a local user, either by
// linking, by logging in an already federated account, or by registering a
// new one.
type OAuth struct {
	users    model.UserStore
	provider model.OAuthProvider
	appID    string
	logger   *logger.Logger
}

func NewOAuth(users model.UserStore, provider model.OAuthProvider, appID string, logger *logger.Logger) *OAuth {
	return &OAuth{
		users:    users,
		provider: provider,
		appID:    appID,
		logger:   logger,
	}
}

// Enabled reports whether the provider integration is configured.
func (s *OAuth) Enabled() bool {
	return s.appID != ""
}

// AuthURL builds the provider authorize URL. The caller's uid, when
// present, rides along as opaque state so the callback can tell a linking
// request from an anonymous one.
func (s *OAuth) AuthURL(callerUID *uuid.UUID) (string, error) {
	if !s.Enabled() {
		return "", model.ErrNotConfigured
	}

	q := url.Values{}
	q.Set("client_id", s.appID)
	q.Set("display", "page")
	q.Set("scope", "login:email login:info")
	q.Set("response_type", "code")
	if callerUID != nil {
		q.Set("state", callerUID.String())
	}

	return yandexAuthBaseURL + "?" + q.Encode(), nil
}

// Authorize exchanges the callback code for a provider profile and resolves
// it to a local user. With a caller uid the profile is linked to that
// account; without one it is a login for a known identity or a
// registration for an unseen one.
func (s *OAuth) Authorize(ctx context.Context, code string, callerUID *uuid.UUID) (model.User, error) {
	if !s.Enabled() {
		return model.User{}, model.ErrNotConfigured
	}

	providerToken, err := s.provider.ExchangeCode(ctx, code)
	if err != nil {
		s.logger.Error("OAuth service: code exchange failed", "error", err.Error())
		return model.User{}, err
	}

	profile, err := s.provider.FetchUserInfo(ctx, providerToken)
	if err != nil {
		s.logger.Error("OAuth service: profile fetch failed", "error", err.Error())
		return model.User{}, err
	}

	if callerUID != nil {
		return s.link(ctx, profile, *callerUID)
	}

	return s.loginOrRegister(ctx, profile)
}

// link attaches the provider identity to the caller's account. The identity
// must not belong to anyone else, and the caller must not already carry a
// different one.
func (s *OAuth) link(ctx context.Context, profile model.OAuthProfile, callerUID uuid.UUID) (model.User, error) {
	caller, err := s.users.GetRefByUID(ctx, callerUID)
	if err != nil {
		return model.User{}, err
	}

	owner, err := s.users.GetByYandexID(ctx, profile.ID)
	switch {
	case err == nil:
		if owner.UID == caller.UID {
			// Already linked to this very account, nothing to do.
			return owner, nil
		}
		s.logger.Info("OAuth service: identity owned by another account",
			"caller", callerUID,
			"owner", owner.UID)
		return model.User{}, model.ErrIdentityTaken
	case !errors.Is(err, model.ErrNotFound):
		return model.User{}, fmt.Errorf("failed to check identity ownership: %w", err)
	}

	if caller.YandexID != nil {
		return model.User{}, model.ErrIdentityLinked
	}

	linked, err := s.users.Update(ctx, callerUID, model.UserUpdate{YandexID: &profile.ID})
	if err != nil {
		return model.User{}, err
	}

	s.logger.Info("OAuth service: identity linked", "uid", callerUID)

	return linked, nil
}

// loginOrRegister resolves an anonymous callback: a known identity is a
// login, an unseen one creates a local account with no password.
func (s *OAuth) loginOrRegister(ctx context.Context, profile model.OAuthProfile) (model.User, error) {
	existing, err := s.users.GetByYandexID(ctx, profile.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.User{}, fmt.Errorf("failed to look up identity: %w", err)
	}

	now := time.Now()
	user, err := s.users.Create(ctx, model.User{
		UID:       uuid.New(),
		YandexID:  &profile.ID,
		Username:  profile.Username,
		Email:     profile.Email,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.logger.Error("OAuth service: failed to register federated user",
			"error", err.Error())
		return model.User{}, err
	}

	s.logger.Info("OAuth service: federated user registered", "uid", user.UID)

	return user, nil
}
