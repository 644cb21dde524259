package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"audiovault/internal/logger"
	"audiovault/internal/model"
)

// User orchestrates registration, profile updates and admin-level user
// management.
type User struct {
	users  model.UserStore
	logger *logger.Logger
}

func NewUser(users model.UserStore, logger *logger.Logger) *User {
	return &User{users: users, logger: logger}
}

// RegisterInput carries validated registration data.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// UpdateInput carries a partial profile update. Nil fields are skipped.
type UpdateInput struct {
	Username *string
	Email    *string
	Password *string
}

// Register creates a local account: hashes the password, assigns a fresh
// uid and persists. A taken email is a conflict whether it is caught by the
// pre-check or by the unique index.
func (s *User) Register(ctx context.Context, input RegisterInput) (model.User, error) {
	s.logger.Debug("User service: registering user", "email", input.Email)

	_, err := s.users.GetByEmail(ctx, input.Email)
	if err == nil {
		s.logger.Info("User service: email already registered", "email", input.Email)
		return model.User{}, model.ErrEmailTaken
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.User{}, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return model.User{}, err
	}

	now := time.Now()
	user, err := s.users.Create(ctx, model.User{
		UID:            uuid.New(),
		Username:       input.Username,
		Email:          input.Email,
		HashedPassword: &hash,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		s.logger.Error("User service: failed to create user",
			"email", input.Email,
			"error", err.Error())
		return model.User{}, err
	}

	s.logger.Info("User service: user registered", "uid", user.UID)

	return user, nil
}

// UpdateProfile applies only the explicitly provided fields to the user's
// own record.
func (s *User) UpdateProfile(ctx context.Context, user model.User, input UpdateInput) (model.User, error) {
	update := model.UserUpdate{
		Username: input.Username,
		Email:    input.Email,
	}

	if input.Password != nil {
		hash, err := HashPassword(*input.Password)
		if err != nil {
			return model.User{}, err
		}
		update.HashedPassword = &hash
	}

	updated, err := s.users.Update(ctx, user.UID, update)
	if err != nil {
		s.logger.Error("User service: failed to update profile",
			"uid", user.UID,
			"error", err.Error())
		return model.User{}, err
	}

	return updated, nil
}

// SetSuperuser toggles the superuser flag on the target. Only a superuser
// actor may call it.
func (s *User) SetSuperuser(ctx context.Context, actor model.User, targetUID uuid.UUID, isSuperuser bool) (model.User, error) {
	if !actor.IsSuperuser {
		s.logger.Info("User service: superuser toggle denied", "actor", actor.UID)
		return model.User{}, model.ErrPermissionDenied
	}

	user, err := s.users.SetSuperuser(ctx, targetUID, isSuperuser)
	if err != nil {
		return model.User{}, err
	}

	s.logger.Info("User service: superuser flag set",
		"actor", actor.UID,
		"target", targetUID,
		"is_superuser", isSuperuser)

	return user, nil
}

// Remove deletes the target user and, through the storage cascade, their
// audio files. Self-deletion is rejected regardless of privileges.
func (s *User) Remove(ctx context.Context, actor model.User, targetUID uuid.UUID) error {
	if !actor.IsSuperuser {
		s.logger.Info("User service: deletion denied", "actor", actor.UID)
		return model.ErrPermissionDenied
	}
	if actor.UID == targetUID {
		return model.ErrSelfDeletion
	}

	if _, err := s.users.GetRefByUID(ctx, targetUID); err != nil {
		return err
	}

	removed, err := s.users.DeleteByUID(ctx, targetUID)
	if err != nil {
		s.logger.Error("User service: failed to delete user",
			"target", targetUID,
			"error", err.Error())
		return err
	}
	if !removed {
		return model.ErrNotFound
	}

	s.logger.Info("User service: user deleted", "actor", actor.UID, "target", targetUID)

	return nil
}

// List returns all users.
func (s *User) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// EnsureSuperuser creates a superuser account if the email is not taken
// yet. Used by the seeding command; reports whether a user was created.
func (s *User) EnsureSuperuser(ctx context.Context, username, email, password string) (bool, error) {
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return false, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return false, err
	}

	now := time.Now()
	_, err = s.users.Create(ctx, model.User{
		UID:            uuid.New(),
		Username:       username,
		Email:          email,
		HashedPassword: &hash,
		IsSuperuser:    true,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return false, err
	}

	return true, nil
}
