package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/scrapehub/listings-api/internal/api/domain"
)

// SelectAll returns every row of a registered table as generic mappings.
// The table name is interpolated, but only values from the domain registry
// ever reach this method.
func (s *Storage) SelectAll(ctx context.Context, table domain.Table) ([]map[string]any, error) {
	rows, err := s.db.QueryxContext(ctx, fmt.Sprintf(`SELECT * FROM %s`, table.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to select from %s: %w", table.Name, err)
	}
	defer rows.Close()

	out := []map[string]any{}
	for rows.Next() {
		row := map[string]any{}
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("failed to scan row from %s: %w", table.Name, err)
		}
		// lib/pq hands text columns back as []byte
		for k, v := range row {
			if b, ok := v.([]byte); ok {
				row[k] = string(b)
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows from %s: %w", table.Name, err)
	}

	return out, nil
}

// DeleteRecords removes the keyed records in one transaction: any failing
// delete rolls the whole batch back.
func (s *Storage) DeleteRecords(ctx context.Context, table domain.Table, keys []any) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.Name, table.DeleteKey)
	for _, key := range keys {
		if _, err := tx.ExecContext(ctx, query, key); err != nil {
			s.rollback(tx.Rollback())
			return fmt.Errorf("failed to delete from %s: %w", table.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete batch: %w", err)
	}

	s.logger.Info("Delete batch committed",
		slog.String("table", table.Name),
		slog.Int("records", len(keys)),
	)

	return nil
}

// DeleteByDate removes every record whose date_ran matches the formatted
// date value.
func (s *Storage) DeleteByDate(ctx context.Context, table domain.Table, date string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.Name, domain.DateRanColumn)
	result, err := tx.ExecContext(ctx, query, date)
	if err != nil {
		s.rollback(tx.Rollback())
		return fmt.Errorf("failed to delete from %s by date: %w", table.Name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit date delete: %w", err)
	}

	rows, _ := result.RowsAffected()
	s.logger.Info("Date delete committed",
		slog.String("table", table.Name),
		slog.String("date_ran", date),
		slog.Int64("records", rows),
	)

	return nil
}

func (s *Storage) rollback(err error) {
	if err != nil {
		s.logger.Error("Failed to roll back transaction",
			slog.Any("error", err),
		)
	}
}
