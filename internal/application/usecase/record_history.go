package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/bnema/medusa/internal/domain/entity"
	"github.com/bnema/medusa/internal/domain/repository"
	"github.com/bnema/medusa/internal/logging"
)

const (
	// historyQueueSize is the buffer size for the async history queue.
	// If the queue is full, new records are dropped with a warning.
	historyQueueSize = 100

	// historyWorkerFlushInterval coalesces bursts into fewer writes.
	historyWorkerFlushInterval = 100 * time.Millisecond

	// historyDeduplicationWindow merges repeat visits caused by redirects.
	historyDeduplicationWindow = 2 * time.Second
)

// historySkippedSchemes are never written to history.
var historySkippedSchemes = map[string]bool{
	"about": true,
	"data":  true,
	"blob":  true,
}

type historyRecord struct {
	url    string
	visits int
}

// HistoryUseCase records visited pages off the UI thread and serves the
// history commands.
type HistoryUseCase struct {
	repo repository.HistoryRepository

	recentMu       sync.Mutex
	lastRawURL     string
	lastURL        string
	lastRecordedAt time.Time
	now            func() time.Time

	queue     chan historyRecord
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
	ctx       context.Context
}

// NewHistoryUseCase creates the use case and starts its worker. ctx carries
// the worker's logger.
func NewHistoryUseCase(ctx context.Context, repo repository.HistoryRepository) *HistoryUseCase {
	uc := &HistoryUseCase{
		repo:  repo,
		now:   time.Now,
		queue: make(chan historyRecord, historyQueueSize),
		done:  make(chan struct{}),
		ctx:   ctx,
	}
	uc.wg.Add(1)
	go uc.worker()
	return uc
}

// Close stops the worker after persisting anything still queued. Safe to
// call more than once.
func (uc *HistoryUseCase) Close() {
	uc.closeOnce.Do(func() {
		close(uc.done)
		uc.wg.Wait()
	})
}

// RecordVisit queues rawURL without blocking.
func (uc *HistoryUseCase) RecordVisit(ctx context.Context, rawURL string) {
	log := logging.FromContext(ctx)

	canonical := canonicalizeHistoryURL(rawURL)
	if canonical == "" {
		return
	}

	now := uc.now()
	uc.recentMu.Lock()
	if isHashOnlyTransition(uc.lastRawURL, rawURL) {
		uc.lastRawURL = rawURL
		uc.recentMu.Unlock()
		return
	}
	if uc.lastURL == canonical && now.Sub(uc.lastRecordedAt) < historyDeduplicationWindow {
		uc.lastRawURL = rawURL
		uc.recentMu.Unlock()
		return
	}
	uc.lastRawURL = rawURL
	uc.lastURL = canonical
	uc.lastRecordedAt = now
	uc.recentMu.Unlock()

	select {
	case uc.queue <- historyRecord{url: canonical, visits: 1}:
	default:
		log.Warn().Str("url", logging.TruncateURL(canonical, logURLMaxLen)).Msg("history queue full, dropping record")
	}
}

// UpdateTitle sets the title of an existing entry.
func (uc *HistoryUseCase) UpdateTitle(ctx context.Context, rawURL, title string) error {
	canonical := canonicalizeHistoryURL(rawURL)
	if canonical == "" || strings.TrimSpace(title) == "" {
		return nil
	}

	entry, err := uc.repo.FindByURL(ctx, canonical)
	if err != nil {
		return fmt.Errorf("failed to find history entry: %w", err)
	}
	if entry == nil {
		logging.FromContext(ctx).Debug().Str("url", canonical).Msg("no history entry for title update")
		return nil
	}

	entry.Title = title
	if err := uc.repo.Save(ctx, entry); err != nil {
		return fmt.Errorf("failed to update history title: %w", err)
	}
	return nil
}

// Recent lists the most recently visited entries.
func (uc *HistoryUseCase) Recent(ctx context.Context, limit, offset int) ([]*entity.HistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	entries, err := uc.repo.GetRecent(ctx, limit, max(0, offset))
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return entries, nil
}

// Stats summarises the history store.
func (uc *HistoryUseCase) Stats(ctx context.Context) (*entity.HistoryStats, error) {
	stats, err := uc.repo.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read history stats: %w", err)
	}
	return stats, nil
}

// Clear deletes all history.
func (uc *HistoryUseCase) Clear(ctx context.Context) error {
	uc.recentMu.Lock()
	uc.lastRawURL, uc.lastURL = "", ""
	uc.recentMu.Unlock()

	if err := uc.repo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	logging.FromContext(ctx).Info().Msg("history cleared")
	return nil
}

func (uc *HistoryUseCase) worker() {
	defer uc.wg.Done()

	log := logging.FromContext(uc.ctx).With().Str("component", "history-worker").Logger()

	ticker := time.NewTicker(historyWorkerFlushInterval)
	defer ticker.Stop()

	pending := make(map[string]int)
	flush := func() {
		for historyURL, visits := range pending {
			uc.persist(uc.ctx, historyRecord{url: historyURL, visits: visits})
		}
		clear(pending)
	}

	for {
		select {
		case record := <-uc.queue:
			pending[record.url] += record.visits
		case <-ticker.C:
			flush()
		case <-uc.done:
			for drained := false; !drained; {
				select {
				case record := <-uc.queue:
					pending[record.url] += record.visits
				default:
					drained = true
				}
			}
			flush()
			log.Debug().Msg("history worker stopped")
			return
		}
	}
}

func (uc *HistoryUseCase) persist(ctx context.Context, record historyRecord) {
	log := logging.FromContext(ctx)

	entry, err := uc.repo.FindByURL(ctx, record.url)
	if err != nil {
		log.Warn().Err(err).Str("url", record.url).Msg("failed to check history")
		return
	}

	if entry == nil {
		entry = entity.NewHistoryEntry(record.url, "")
		entry.VisitCount = int64(max(1, record.visits))
	} else {
		for range max(1, record.visits) {
			entry.IncrementVisit()
		}
	}

	if err := uc.repo.Save(ctx, entry); err != nil {
		log.Warn().Err(err).Str("url", record.url).Msg("failed to save history")
	}
}

// canonicalizeHistoryURL drops fragments and trailing slashes and lower-cases
// scheme and host. Returns "" for URLs that are not recorded.
func canonicalizeHistoryURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return strings.TrimSuffix(raw, "/")
	}
	parsed.Scheme = strings.ToLower(parsed.Scheme)
	if parsed.Scheme == "" || historySkippedSchemes[parsed.Scheme] {
		return ""
	}
	parsed.Host = strings.ToLower(parsed.Host)
	parsed.Fragment = ""
	parsed.RawFragment = ""
	parsed.Path = trimHistoryPath(parsed.Path)
	parsed.RawPath = ""
	return parsed.String()
}

func trimHistoryPath(path string) string {
	if path == "/" {
		return ""
	}
	return strings.TrimSuffix(path, "/")
}

func isHashOnlyTransition(previous, current string) bool {
	if previous == "" || current == "" || previous == current {
		return false
	}

	prev, prevErr := url.Parse(previous)
	curr, currErr := url.Parse(current)
	if prevErr != nil || currErr != nil {
		return false
	}

	return strings.EqualFold(prev.Scheme, curr.Scheme) &&
		strings.EqualFold(prev.Host, curr.Host) &&
		trimHistoryPath(prev.Path) == trimHistoryPath(curr.Path) &&
		prev.RawQuery == curr.RawQuery &&
		prev.Fragment != curr.Fragment
}
