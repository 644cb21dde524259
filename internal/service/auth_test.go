package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"audiovault/internal/mocks"
	"audiovault/internal/model"
	"audiovault/internal/testutil"
)

func TestAuth_ResolveUser_MissingToken(t *testing.T) {
	svc := NewAuth(&mocks.UserStore{}, &mocks.TokenManager{}, testutil.MakeNoopLogger())

	_, err := svc.ResolveUser(context.Background(), "")
	require.ErrorIs(t, err, model.ErrMissingToken)
}

func TestAuth_ResolveUser_InvalidToken(t *testing.T) {
	manager := &mocks.TokenManager{}
	manager.On("ParseAccessToken", "garbage").Return(uuid.Nil, assert.AnError).Once()

	svc := NewAuth(&mocks.UserStore{}, manager, testutil.MakeNoopLogger())

	_, err := svc.ResolveUser(context.Background(), "garbage")
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestAuth_ResolveUser_UnknownSubject(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()

	manager := &mocks.TokenManager{}
	manager.On("ParseAccessToken", "access").Return(uid, nil).Once()
	users := &mocks.UserStore{}
	users.On("GetByUID", ctx, uid).Return(model.User{}, model.ErrNotFound).Once()

	svc := NewAuth(users, manager, testutil.MakeNoopLogger())

	_, err := svc.ResolveUser(ctx, "access")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestAuth_ResolveUser_TouchesFirstVisit(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()
	user := model.User{ID: 1, UID: uid, Email: "a@example.com"}

	manager := &mocks.TokenManager{}
	manager.On("ParseAccessToken", "access").Return(uid, nil).Once()
	users := &mocks.UserStore{}
	users.On("GetByUID", ctx, uid).Return(user, nil).Once()
	users.On("TouchLastVisited", ctx, uid, mock.Anything).Return(nil).Once()

	svc := NewAuth(users, manager, testutil.MakeNoopLogger())

	got, err := svc.ResolveUser(ctx, "access")
	require.NoError(t, err)
	assert.Equal(t, user, got)
	users.AssertExpectations(t)
}

func TestAuth_ResolveUser_SkipsTouchInsideWindow(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()
	now := time.Now()
	recent := now.Add(-time.Minute)
	user := model.User{ID: 1, UID: uid, LastVisitedAt: &recent}

	manager := &mocks.TokenManager{}
	manager.On("ParseAccessToken", "access").Return(uid, nil).Once()
	users := &mocks.UserStore{}
	users.On("GetByUID", ctx, uid).Return(user, nil).Once()

	svc := NewAuth(users, manager, testutil.MakeNoopLogger())
	svc.now = func() time.Time { return now }

	_, err := svc.ResolveUser(ctx, "access")
	require.NoError(t, err)
	users.AssertNotCalled(t, "TouchLastVisited", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuth_ResolveUser_TouchesOutsideWindow(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()
	now := time.Now()
	stale := now.Add(-6 * time.Minute)
	user := model.User{ID: 1, UID: uid, LastVisitedAt: &stale}

	manager := &mocks.TokenManager{}
	manager.On("ParseAccessToken", "access").Return(uid, nil).Once()
	users := &mocks.UserStore{}
	users.On("GetByUID", ctx, uid).Return(user, nil).Once()
	users.On("TouchLastVisited", ctx, uid, now).Return(nil).Once()

	svc := NewAuth(users, manager, testutil.MakeNoopLogger())
	svc.now = func() time.Time { return now }

	_, err := svc.ResolveUser(ctx, "access")
	require.NoError(t, err)
	users.AssertExpectations(t)
}

func TestAuth_ResolveUser_TouchFailureSwallowed(t *testing.T) {
	ctx := context.Background()
	uid := uuid.New()
	user := model.User{ID: 1, UID: uid}

	manager := &mocks.TokenManager{}
	manager.On("ParseAccessToken", "access").Return(uid, nil).Once()
	users := &mocks.UserStore{}
	users.On("GetByUID", ctx, uid).Return(user, nil).Once()
	users.On("TouchLastVisited", ctx, uid, mock.Anything).Return(assert.AnError).Once()

	svc := NewAuth(users, manager, testutil.MakeNoopLogger())

	got, err := svc.ResolveUser(ctx, "access")
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestAuth_VerifyLogin(t *testing.T) {
	ctx := context.Background()
	hash, err := HashPassword("Passw0rd")
	require.NoError(t, err)
	user := model.User{ID: 1, UID: uuid.New(), Email: "a@example.com", HashedPassword: &hash}

	tests := []struct {
		name     string
		email    string
		password string
		stored   model.User
		storeErr error
		wantErr  error
	}{
		{
			name:     "success",
			email:    "a@example.com",
			password: "Passw0rd",
			stored:   user,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "Passw0rd",
			storeErr: model.ErrNotFound,
			wantErr:  model.ErrNotFound,
		},
		{
			name:     "wrong password",
			email:    "a@example.com",
			password: "wrong",
			stored:   user,
			wantErr:  model.ErrInvalidCredentials,
		},
		{
			name:     "oauth-only account",
			email:    "a@example.com",
			password: "Passw0rd",
			stored:   model.User{ID: 2, UID: uuid.New(), Email: "a@example.com"},
			wantErr:  model.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &mocks.UserStore{}
			users.On("GetByEmail", ctx, tt.email).Return(tt.stored, tt.storeErr).Once()

			svc := NewAuth(users, &mocks.TokenManager{}, testutil.MakeNoopLogger())

			got, err := svc.VerifyLogin(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.stored, got)
		})
	}
}
