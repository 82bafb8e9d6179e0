package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"home_inventory/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL        = `INSERT INTO users (id, email, password_hash, created_at) VALUES (?, ?, ?, ?)`
	selectUserByEmailSQL = `SELECT id, email, password_hash, created_at FROM users WHERE email = ?`
)

// Create inserts a new user. The caller passes an already-normalized email and
// a bcrypt hash; plaintext passwords never reach this layer. The UNIQUE
// constraint on email is the authoritative duplicate check.
func (r *UserRepository) Create(ctx context.Context, email, passwordHash string) (*models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	u := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := r.db.ExecContext(ctx, insertUserSQL, u.ID, u.Email, u.PasswordHash, u.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("insert user %q: %w", email, ErrDuplicateEmail)
		}
		return nil, fmt.Errorf("insert user %q: %w", email, storageErr(err))
	}
	return &u, nil
}

// GetByEmail fetches a user by normalized email. Returns (nil, nil) if not found.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var u models.User
	err := r.db.QueryRowContext(ctx, selectUserByEmailSQL, email).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", email, storageErr(err))
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint failure.
// modernc.org/sqlite does not export a typed constraint error, so match on the
// stable message prefix it emits.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
