package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"audiovault/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

const userColumns = `id, uid, yandex_id, username, email, hashed_password, is_superuser, last_visited_at, created_at, updated_at`

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (uid, yandex_id, username, email, hashed_password, is_superuser, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING ` + userColumns

	saved, err := r.scanUser(r.db.QueryRow(ctx, query,
		user.UID, user.YandexID, user.Username, user.Email, user.HashedPassword, user.IsSuperuser,
		user.CreatedAt, user.UpdatedAt,
	))
	if err != nil {
		if conflictErr := mapUniqueViolation(err); conflictErr != nil {
			return model.User{}, conflictErr
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return saved, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := r.scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByUID(ctx context.Context, uid uuid.UUID) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE uid = $1`

	user, err := r.scanUser(r.db.QueryRow(ctx, query, uid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by uid: %w", err)
	}

	return user, nil
}

// GetRefByUID loads a minimal projection of the user for authorization
// checks.
func (r *UserRepository) GetRefByUID(ctx context.Context, uid uuid.UUID) (model.UserRef, error) {
	var ref model.UserRef
	query := `SELECT id, uid, yandex_id, is_superuser FROM users WHERE uid = $1`

	err := r.db.QueryRow(ctx, query, uid).Scan(&ref.ID, &ref.UID, &ref.YandexID, &ref.IsSuperuser)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.UserRef{}, model.ErrNotFound
		}
		return model.UserRef{}, fmt.Errorf("failed to get user ref by uid: %w", err)
	}

	return ref, nil
}

func (r *UserRepository) GetByYandexID(ctx context.Context, yandexID string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE yandex_id = $1`

	user, err := r.scanUser(r.db.QueryRow(ctx, query, yandexID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by yandex id: %w", err)
	}

	return user, nil
}

// Update applies the set fields of update to the user identified by uid in a
// single statement.
func (r *UserRepository) Update(ctx context.Context, uid uuid.UUID, update model.UserUpdate) (model.User, error) {
	sets := make([]string, 0, 5)
	args := make([]any, 0, 6)

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Username != nil {
		add("username", *update.Username)
	}
	if update.Email != nil {
		add("email", *update.Email)
	}
	if update.HashedPassword != nil {
		add("hashed_password", *update.HashedPassword)
	}
	if update.YandexID != nil {
		add("yandex_id", *update.YandexID)
	}
	add("updated_at", time.Now())

	args = append(args, uid)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE uid = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), userColumns)

	user, err := r.scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		if conflictErr := mapUniqueViolation(err); conflictErr != nil {
			return model.User{}, conflictErr
		}
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

func (r *UserRepository) SetSuperuser(ctx context.Context, uid uuid.UUID, isSuperuser bool) (model.User, error) {
	query := `UPDATE users SET is_superuser = $1, updated_at = $2 WHERE uid = $3 RETURNING ` + userColumns

	user, err := r.scanUser(r.db.QueryRow(ctx, query, isSuperuser, time.Now(), uid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to set superuser flag: %w", err)
	}

	return user, nil
}

// DeleteByUID removes the user row; owned audio file rows go with it via
// the foreign key cascade. Returns true iff a row was removed.
func (r *UserRepository) DeleteByUID(ctx context.Context, uid uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE uid = $1`, uid)
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user rows: %w", err)
	}

	return users, nil
}

func (r *UserRepository) TouchLastVisited(ctx context.Context, uid uuid.UUID, at time.Time) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET last_visited_at = $1 WHERE uid = $2`, at, uid)
	if err != nil {
		return fmt.Errorf("failed to touch last visited: %w", err)
	}
	return nil
}

func (r *UserRepository) scanUser(row pgx.Row) (model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.UID, &user.YandexID, &user.Username, &user.Email, &user.HashedPassword,
		&user.IsSuperuser, &user.LastVisitedAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

// mapUniqueViolation translates postgres unique constraint violations into
// domain conflicts. Returns nil for anything else.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}
	if strings.Contains(pgErr.ConstraintName, "yandex_id") {
		return model.ErrIdentityTaken
	}
	return model.ErrEmailTaken
}
