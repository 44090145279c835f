package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lib/pq"

	"github.com/scrapehub/listings-api/internal/api/domain"
	"github.com/scrapehub/listings-api/internal/api/model"
)

// uniqueViolation is the PostgreSQL error code raised when an insert hits
// a unique constraint.
const uniqueViolation = "23505"

// GetUserByUsername returns the single user with the given username, or
// domain.ErrUserNotFound.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `
		SELECT id, username, password, tasks
		FROM users
		WHERE username = $1
	`

	var user model.User
	err := s.db.GetContext(ctx, &user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// CreateUser inserts a new account and fills in the store-assigned id.
// The users.username unique constraint is the duplicate check; a violation
// surfaces as domain.ErrDuplicateUsername, so two racing creates cannot both
// succeed.
func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (username, password, tasks)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query, user.Username, user.PasswordHash, user.Tasks).Scan(&user.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrDuplicateUsername
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User created",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return nil
}

// UpdateUserTasks replaces the tasks field of one user. A zero-row update
// means the user does not exist.
func (s *Storage) UpdateUserTasks(ctx context.Context, id int64, tasks string) error {
	result, err := s.db.ExecContext(ctx, `UPDATE users SET tasks = $1 WHERE id = $2`, tasks, id)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// DeleteUser permanently removes one user record.
func (s *Storage) DeleteUser(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}

	s.logger.Info("User deleted",
		slog.Int64("user_id", id),
	)

	return nil
}
