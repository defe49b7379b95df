package repository

import (
	"context"

	"github.com/bnema/medusa/internal/domain/entity"
)

//go:generate mockgen -destination=mocks/mock_history.go -package=mocks github.com/bnema/medusa/internal/domain/repository HistoryRepository

// HistoryRepository defines operations for the visited-link store.
type HistoryRepository interface {
	// Save creates or updates a history entry (upsert on URL).
	Save(ctx context.Context, entry *entity.HistoryEntry) error

	// FindByURL retrieves a history entry by its URL. Returns nil, nil when absent.
	FindByURL(ctx context.Context, url string) (*entity.HistoryEntry, error)

	// GetRecent retrieves recent history entries with pagination.
	GetRecent(ctx context.Context, limit, offset int) ([]*entity.HistoryEntry, error)

	// DeleteAll removes all history entries.
	DeleteAll(ctx context.Context) error

	// GetStats retrieves overall history statistics.
	GetStats(ctx context.Context) (*entity.HistoryStats, error)
}
