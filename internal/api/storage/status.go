package storage

import (
	"context"
	"fmt"
)

// SetScriptStatus updates a script's status row and reports how many rows
// matched. Zero rows is not an error here: callers decide whether a missing
// row matters (the push channel logs it, the mark-running endpoint 404s).
func (s *Storage) SetScriptStatus(ctx context.Context, script, status string) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE scripts_status SET status = $1 WHERE script = $2`,
		status, script,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update script status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows, nil
}
