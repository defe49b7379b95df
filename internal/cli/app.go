// Package cli holds the dependencies shared by the medusa subcommands.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/bnema/medusa/internal/application/usecase"
	"github.com/bnema/medusa/internal/cli/styles"
	"github.com/bnema/medusa/internal/domain/build"
	"github.com/bnema/medusa/internal/infrastructure/config"
	"github.com/bnema/medusa/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/medusa/internal/logging"
)

// App holds CLI dependencies. The history database is opened on first use
// so commands that never touch it stay fast.
type App struct {
	Config        *config.Config
	ConfigManager *config.Manager
	Theme         *styles.Theme
	BuildInfo     build.Info

	ctx     context.Context
	db      *sqlite.LazyDB
	history *usecase.HistoryUseCase
}

// NewApp loads the configuration and builds a quiet logger. CLI output is
// for the user; logs only surface at warn level unless MEDUSA_LOG_LEVEL says
// otherwise.
func NewApp(info build.Info) (*App, error) {
	level := "warn"
	if env := os.Getenv("MEDUSA_LOG_LEVEL"); env != "" {
		level = env
	}
	logger := logging.NewFromConfigValues(level, "console")
	ctx := logging.WithContext(context.Background(), logger)

	manager, err := config.NewManager(config.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	if err := manager.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := manager.Get()

	return &App{
		Config:        cfg,
		ConfigManager: manager,
		Theme:         styles.NewTheme(),
		BuildInfo:     info,
		ctx:           ctx,
		db:            sqlite.NewLazyDB(cfg.Database.Path),
	}, nil
}

// Ctx returns the context carrying the CLI logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// History returns the history use case. The database opens on the first
// query.
func (a *App) History() *usecase.HistoryUseCase {
	if a.history == nil {
		a.history = usecase.NewHistoryUseCase(a.ctx, sqlite.NewLazyHistoryRepository(a.db))
	}
	return a.history
}

// Close stops the history worker and releases the database.
func (a *App) Close() error {
	if a.history != nil {
		a.history.Close()
	}
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
