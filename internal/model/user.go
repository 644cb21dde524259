package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByUID(ctx context.Context, uid uuid.UUID) (User, error)
	GetRefByUID(ctx context.Context, uid uuid.UUID) (UserRef, error)
	GetByYandexID(ctx context.Context, yandexID string) (User, error)
	Update(ctx context.Context, uid uuid.UUID, update UserUpdate) (User, error)
	SetSuperuser(ctx context.Context, uid uuid.UUID, isSuperuser bool) (User, error)
	DeleteByUID(ctx context.Context, uid uuid.UUID) (bool, error)
	List(ctx context.Context) ([]User, error)
	TouchLastVisited(ctx context.Context, uid uuid.UUID, at time.Time) error
}

// User represents a stored user account. ID is the internal storage key and
// never leaves the service; UID is the public identifier carried in tokens
// and API responses. HashedPassword is nil for accounts created through an
// OAuth provider.
type User struct {
	ID             int64
	UID            uuid.UUID
	YandexID       *string
	Username       string
	Email          string
	HashedPassword *string
	IsSuperuser    bool
	LastVisitedAt  *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// UserRef is a minimal projection of a user, loaded where only an
// authorization check is needed and the full row would be wasted.
type UserRef struct {
	ID          int64
	UID         uuid.UUID
	YandexID    *string
	IsSuperuser bool
}

// UserUpdate carries a partial update. Nil fields are left untouched.
type UserUpdate struct {
	Username       *string
	Email          *string
	HashedPassword *string
	YandexID       *string
}
