package handler

import (
	"context"
	"log/slog"

	"github.com/scrapehub/listings-api/internal/api/domain"
	"github.com/scrapehub/listings-api/internal/api/model"
	"github.com/scrapehub/listings-api/internal/config"
	"github.com/scrapehub/listings-api/internal/status"
)

// UserStore is the slice of storage the account and sign-in handlers need.
type UserStore interface {
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
	UpdateUserTasks(ctx context.Context, id int64, tasks string) error
	DeleteUser(ctx context.Context, id int64) error
}

// ListingStore is the slice of storage the table read and bulk-delete
// handlers need.
type ListingStore interface {
	SelectAll(ctx context.Context, table domain.Table) ([]map[string]any, error)
	DeleteRecords(ctx context.Context, table domain.Table, keys []any) error
	DeleteByDate(ctx context.Context, table domain.Table, date string) error
}

// StatusStore persists script statuses for the mark-running endpoint.
type StatusStore interface {
	SetScriptStatus(ctx context.Context, script, status string) (int64, error)
}

// Store is the full storage surface; satisfied by *storage.Storage.
type Store interface {
	UserStore
	ListingStore
	StatusStore
}

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger *slog.Logger
	Store  Store
	Hub    *status.Hub
	Auth   config.AuthConfig
}
