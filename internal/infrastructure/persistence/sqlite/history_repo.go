package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/medusa/internal/domain/entity"
	"github.com/bnema/medusa/internal/domain/repository"
	"github.com/bnema/medusa/internal/logging"
)

const logURLMaxLen = 60

// timeLayout is how timestamps are written; timeLayouts are accepted on read.
const timeLayout = "2006-01-02 15:04:05.000"

var timeLayouts = []string{
	timeLayout,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
}

const (
	upsertHistorySQL = `
INSERT INTO history (url, title, visit_count, last_visited, created_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(url) DO UPDATE SET
    title = CASE WHEN excluded.title <> '' THEN excluded.title ELSE history.title END,
    visit_count = excluded.visit_count,
    last_visited = excluded.last_visited
RETURNING id`

	selectHistoryColumns = `SELECT id, url, title, visit_count, last_visited, created_at FROM history`

	findHistorySQL   = selectHistoryColumns + ` WHERE url = ?`
	recentHistorySQL = selectHistoryColumns + ` ORDER BY last_visited DESC, id DESC LIMIT ? OFFSET ?`
	statsHistorySQL  = `SELECT COUNT(*), COALESCE(SUM(visit_count), 0) FROM history`
	deleteHistorySQL = `DELETE FROM history`
)

type historyRepo struct {
	db *sql.DB
}

// NewHistoryRepository creates a new SQLite-backed history repository.
func NewHistoryRepository(db *sql.DB) repository.HistoryRepository {
	return &historyRepo{db: db}
}

func (r *historyRepo) Save(ctx context.Context, entry *entity.HistoryEntry) error {
	log := logging.FromContext(ctx)
	log.Debug().Str("url", logging.TruncateURL(entry.URL, logURLMaxLen)).Msg("saving history entry")

	now := time.Now()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	if entry.LastVisited.IsZero() {
		entry.LastVisited = now
	}
	if entry.VisitCount < 1 {
		entry.VisitCount = 1
	}

	err := r.db.QueryRowContext(ctx, upsertHistorySQL,
		entry.URL,
		entry.Title,
		entry.VisitCount,
		formatTime(entry.LastVisited),
		formatTime(entry.CreatedAt),
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("failed to save history entry: %w", err)
	}
	return nil
}

func (r *historyRepo) FindByURL(ctx context.Context, url string) (*entity.HistoryEntry, error) {
	entry, err := scanHistory(r.db.QueryRowContext(ctx, findHistorySQL, url))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find history entry: %w", err)
	}
	return entry, nil
}

func (r *historyRepo) GetRecent(ctx context.Context, limit, offset int) ([]*entity.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, recentHistorySQL, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	entries := make([]*entity.HistoryEntry, 0, limit)
	for rows.Next() {
		entry, err := scanHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// DeleteAll removes every entry and truncates the WAL so nothing survives
// on disk.
func (r *historyRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, deleteHistorySQL); err != nil {
		return fmt.Errorf("failed to delete history: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		logging.FromContext(ctx).Debug().Err(err).Msg("wal checkpoint after history purge failed")
	}
	return nil
}

func (r *historyRepo) GetStats(ctx context.Context) (*entity.HistoryStats, error) {
	var stats entity.HistoryStats
	if err := r.db.QueryRowContext(ctx, statsHistorySQL).Scan(&stats.TotalEntries, &stats.TotalVisits); err != nil {
		return nil, fmt.Errorf("failed to read history stats: %w", err)
	}
	return &stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHistory(row rowScanner) (*entity.HistoryEntry, error) {
	var (
		entry       entity.HistoryEntry
		lastVisited string
		createdAt   string
	)
	if err := row.Scan(&entry.ID, &entry.URL, &entry.Title, &entry.VisitCount, &lastVisited, &createdAt); err != nil {
		return nil, err
	}
	entry.LastVisited = parseTime(lastVisited)
	entry.CreatedAt = parseTime(createdAt)
	return &entry, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
