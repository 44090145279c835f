// Package storage holds every database operation behind the API handlers.
package storage

import (
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/scrapehub/listings-api/shared/postgresql"
)

type Storage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewStorage(pg *postgresql.Client, logger *slog.Logger) *Storage {
	return &Storage{
		db:     pg.GetDB(),
		logger: logger,
	}
}
