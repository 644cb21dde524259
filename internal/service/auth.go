package service

import (
	"context"
	"time"

	"audiovault/internal/logger"
	"audiovault/internal/model"
)

// onlineWindow is how long a recorded visit stays fresh; repeated resolves
// inside the window do not touch storage.
const onlineWindow = 5 * time.Minute

// Auth resolves request credentials to user records and verifies password
// logins.
type Auth struct {
	users   model.UserStore
	manager model.TokenManager
	logger  *logger.Logger
	now     func() time.Time
}

func NewAuth(users model.UserStore, manager model.TokenManager, logger *logger.Logger) *Auth {
	return &Auth{
		users:   users,
		manager: manager,
		logger:  logger,
		now:     time.Now,
	}
}

// ResolveUser maps an access token credential to the user it names. A
// missing credential, an invalid token and an unknown subject are three
// distinct failures; the last-visited touch is best-effort and can never
// fail the resolution.
func (a *Auth) ResolveUser(ctx context.Context, accessToken string) (model.User, error) {
	if accessToken == "" {
		return model.User{}, model.ErrMissingToken
	}

	uid, err := a.manager.ParseAccessToken(accessToken)
	if err != nil {
		a.logger.Debug("Auth service: access token rejected", "error", err.Error())
		return model.User{}, model.ErrInvalidToken
	}

	user, err := a.users.GetByUID(ctx, uid)
	if err != nil {
		return model.User{}, err
	}

	a.touchLastVisited(ctx, user)

	return user, nil
}

// VerifyLogin checks an email/password pair. Accounts without a password
// hash (OAuth-only) never verify.
func (a *Auth) VerifyLogin(ctx context.Context, email, password string) (model.User, error) {
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		return model.User{}, err
	}

	if user.HashedPassword == nil || !CheckPassword(password, *user.HashedPassword) {
		a.logger.Info("Auth service: password mismatch", "email", email)
		return model.User{}, model.ErrInvalidCredentials
	}

	return user, nil
}

// touchLastVisited records the visit if none is recorded yet, or if the
// previous one fell outside the online window. Failures are logged and
// swallowed.
func (a *Auth) touchLastVisited(ctx context.Context, user model.User) {
	now := a.now()

	if user.LastVisitedAt != nil && now.Sub(*user.LastVisitedAt) <= onlineWindow {
		return
	}

	if err := a.users.TouchLastVisited(ctx, user.UID, now); err != nil {
		a.logger.Error("Auth service: failed to update last visited",
			"uid", user.UID,
			"error", err.Error())
	}
}
