package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/hackhub/hackhub-server/internal/model"
)

// UserRepo provides access to the user directory. Users are keyed by
// the uid issued by the external identity provider, so Create never
// generates an id of its own.
type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a user with the given uid, email and role. When a user
// with the uid already exists the existing record is returned unchanged
// and created reports false; signup is idempotent by design, so this is
// not an error. Invalid roles fail with ErrInvalidRole.
func (r *UserRepo) Create(ctx context.Context, uid, email, role string) (model.User, bool, error) {
	if !model.ValidRole(role) {
		return model.User{}, false, ErrInvalidRole
	}
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := r.GetByUID(ctx, uid)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return model.User{}, false, err
	}

	if _, err := r.db.ExecContext(ctx,
		"INSERT INTO users (uid, email, role) VALUES (?,?,?)",
		uid, email, role); err != nil {
		return model.User{}, false, err
	}
	u, err := r.GetByUID(ctx, uid)
	return u, true, err
}

// CreateWithPassword inserts a user with a bcrypt password hash under a
// server-generated uid. It backs the /auth/signup supplement and fails
// with ErrEmailExists when the email is already registered.
func (r *UserRepo) CreateWithPassword(ctx context.Context, uid, email, hash, role string) (model.User, error) {
	if !model.ValidRole(role) {
		return model.User{}, ErrInvalidRole
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := r.db.ExecContext(ctx,
		"INSERT INTO users (uid, email, password_hash, role) VALUES (?,?,?,?)",
		uid, email, hash, role); err != nil {
		// The users table has a unique key on email.
		if isDuplicateKey(err) {
			return model.User{}, ErrEmailExists
		}
		return model.User{}, err
	}
	return r.GetByUID(ctx, uid)
}

// GetByUID fetches a user by uid, returning ErrNotFound when absent.
func (r *UserRepo) GetByUID(ctx context.Context, uid string) (model.User, error) {
	var u model.User
	var hash sql.NullString
	err := r.db.QueryRowContext(ctx,
		"SELECT uid, email, password_hash, role, created_at FROM users WHERE uid=? LIMIT 1",
		uid).Scan(&u.UID, &u.Email, &hash, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	u.PasswordHash = hash.String
	return u, nil
}

// GetByEmail fetches a user by normalized email for login.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	var hash sql.NullString
	err := r.db.QueryRowContext(ctx,
		"SELECT uid, email, password_hash, role, created_at FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.UID, &u.Email, &hash, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	u.PasswordHash = hash.String
	return u, nil
}
