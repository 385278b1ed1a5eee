// Package accounts stores dashboard users keyed by Telegram id.
package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/danhigham/contestdash/internal/domain"
)

// ErrNotFound is returned when no user has the requested Telegram id.
var ErrNotFound = errors.New("user not found")

type User struct {
	TelegramID int64
	Username   string
	Role       domain.Role
	CreatedAt  time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	telegram_id BIGINT PRIMARY KEY,
	username    TEXT,
	role        TEXT NOT NULL DEFAULT 'user',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

type Repository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewRepository(db *sql.DB, logger *zap.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// EnsureSchema creates the users table if it does not exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

// GetByTelegramID returns ErrNotFound when the user does not exist.
func (r *Repository) GetByTelegramID(ctx context.Context, telegramID int64) (*User, error) {
	query := `
		SELECT telegram_id, username, role, created_at
		FROM users
		WHERE telegram_id = $1
	`

	var u User
	var username sql.NullString
	var role string
	err := r.db.QueryRowContext(ctx, query, telegramID).Scan(&u.TelegramID, &username, &role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	u.Username = username.String
	u.Role = domain.Role(role)
	return &u, nil
}

// Create inserts a new user.
func (r *Repository) Create(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (telegram_id, username, role, created_at)
		VALUES ($1, $2, $3, $4)
	`

	var username sql.NullString
	if u.Username != "" {
		username = sql.NullString{String: u.Username, Valid: true}
	}
	if _, err := r.db.ExecContext(ctx, query, u.TelegramID, username, string(u.Role), u.CreatedAt); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Debug("user created", zap.Int64("telegram_id", u.TelegramID), zap.String("role", string(u.Role)))
	return nil
}

// UpdateUsername replaces the stored username. It returns ErrNotFound when no
// row matched.
func (r *Repository) UpdateUsername(ctx context.Context, telegramID int64, username string) error {
	query := `
		UPDATE users SET username = $2
		WHERE telegram_id = $1
	`

	res, err := r.db.ExecContext(ctx, query, telegramID, username)
	if err != nil {
		return fmt.Errorf("failed to update username: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update username: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
