package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/movie-watchlist/internal/model"
)

// UserRepo provides access to rows of the 'users' table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// UserUpdate describes a partial profile update. A nil field is left
// untouched; a non-nil field is written as-is. PasswordHash must
// already be hashed by the caller, the repository never sees a plain
// password.
type UserUpdate struct {
	Username     *string
	Email        *string
	PasswordHash *string
}

// Empty reports whether the update carries no fields at all.
func (u UserUpdate) Empty() bool {
	return u.Username == nil && u.Email == nil && u.PasswordHash == nil
}

// Create inserts a user row and returns its ID. Username and email are
// normalized before insertion; a collision on either unique index is
// reported as ErrUsernameTaken or ErrEmailTaken.
func (r *UserRepo) Create(ctx context.Context, username, email, passwordHash string) (uint64, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash) VALUES (?,?,?)",
		username, email, passwordHash)
	if err != nil {
		return 0, translateDuplicate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches a user by username, including the password
// hash so that the login handler can compare credentials.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	username = strings.TrimSpace(username)
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id,username,email,password_hash,created_at,updated_at FROM users WHERE username=? LIMIT 1",
		username).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id,username,email,password_hash,created_at,updated_at FROM users WHERE user_id=? LIMIT 1",
		id).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// Update applies the supplied fields to a user row. The optional-field
// struct is resolved once into a fixed list of column assignments
// before reaching the database. It returns whether a row was actually
// changed (false when the target id does not exist). Collisions with
// another user's username or email surface as the respective sentinel.
func (r *UserRepo) Update(ctx context.Context, id uint64, upd UserUpdate) (bool, error) {
	if upd.Empty() {
		return false, nil
	}
	cols := make([]string, 0, 3)
	args := make([]interface{}, 0, 4)
	if upd.Username != nil {
		cols = append(cols, "username=?")
		args = append(args, strings.TrimSpace(*upd.Username))
	}
	if upd.Email != nil {
		cols = append(cols, "email=?")
		args = append(args, strings.ToLower(strings.TrimSpace(*upd.Email)))
	}
	if upd.PasswordHash != nil {
		cols = append(cols, "password_hash=?")
		args = append(args, *upd.PasswordHash)
	}
	args = append(args, id)

	query := "UPDATE users SET " + strings.Join(cols, ", ") + ", updated_at=NOW() WHERE user_id=?"
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return false, translateDuplicate(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
