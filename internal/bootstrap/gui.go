// Package bootstrap prepares everything the browser needs before GTK starts.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bnema/medusa/internal/infrastructure/config"
	"github.com/bnema/medusa/internal/infrastructure/filtering"
	"github.com/bnema/medusa/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/medusa/internal/logging"
)

const dataDirPerm = 0o700

// ParallelInitInput holds the input for parallel initialization.
type ParallelInitInput struct {
	Ctx    context.Context
	Config *config.Config
}

// ParallelInitResult holds what the parallel phase produced. DB and
// BlockLists are nil when they could not be prepared; the browser then runs
// without history or content filtering.
type ParallelInitResult struct {
	WebsiteDataDir string
	CacheDir       string
	FilterStoreDir string

	DB         *sqlite.LazyDB
	BlockLists *filtering.Lists

	Duration time.Duration
}

// Close releases the database handle.
func (r *ParallelInitResult) Close() {
	if r == nil || r.DB == nil {
		return
	}
	_ = r.DB.Close()
}

// RunParallelInit resolves directories, opens the history database and
// parses the block lists concurrently. Only a directory failure is fatal.
func RunParallelInit(input ParallelInitInput) (*ParallelInitResult, error) {
	log := logging.FromContext(input.Ctx)
	start := time.Now()

	result := &ParallelInitResult{}
	g, ctx := errgroup.WithContext(input.Ctx)

	g.Go(func() error {
		dirs, err := resolveDirs()
		if err != nil {
			return fmt.Errorf("resolve directories: %w", err)
		}
		result.WebsiteDataDir = dirs.websiteData
		result.CacheDir = dirs.cache
		result.FilterStoreDir = dirs.filterStore
		return nil
	})

	g.Go(func() error {
		db := sqlite.NewLazyDB(input.Config.Database.Path)
		if _, err := db.DB(ctx); err != nil {
			log.Warn().Err(err).Msg("history database unavailable, visits will not be recorded")
			return nil
		}
		result.DB = db
		return nil
	})

	g.Go(func() error {
		lists, err := filtering.LoadLists(ctx, input.Config.ContentFiltering.ExtraLists)
		if err != nil {
			log.Warn().Err(err).Msg("block lists unavailable")
			return nil
		}
		result.BlockLists = lists
		return nil
	})

	if err := g.Wait(); err != nil {
		result.Close()
		return nil, err
	}
	result.Duration = time.Since(start)
	return result, nil
}

type directories struct {
	websiteData string
	cache       string
	filterStore string
}

// resolveDirs resolves and creates the engine directories.
func resolveDirs() (directories, error) {
	var dirs directories
	var err error

	if dirs.websiteData, err = config.GetWebsiteDataDir(); err != nil {
		return dirs, err
	}
	if dirs.cache, err = config.GetCacheDir(); err != nil {
		return dirs, err
	}
	if dirs.filterStore, err = config.GetFilterStoreDir(); err != nil {
		return dirs, err
	}

	for _, dir := range []string{dirs.websiteData, dirs.cache, dirs.filterStore} {
		if err := os.MkdirAll(dir, dataDirPerm); err != nil {
			return dirs, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return dirs, nil
}
