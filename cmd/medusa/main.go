package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/bnema/medusa/internal/application/usecase"
	"github.com/bnema/medusa/internal/bootstrap"
	"github.com/bnema/medusa/internal/cli/cmd"
	"github.com/bnema/medusa/internal/domain/build"
	"github.com/bnema/medusa/internal/infrastructure/config"
	"github.com/bnema/medusa/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/medusa/internal/infrastructure/tor"
	"github.com/bnema/medusa/internal/logging"
	"github.com/bnema/medusa/internal/ui"
)

// Build-time variables (set via ldflags).
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

const consoleTimeFormat = "15:04:05"

// initialURL holds the URL or search terms to open on startup.
var initialURL string

func main() {
	// Run GUI mode for browse command
	if len(os.Args) > 1 && os.Args[1] == "browse" {
		if len(os.Args) > 2 {
			initialURL = os.Args[2]
		}
		os.Args = os.Args[:1]
		os.Exit(runGUI())
	}

	cmd.SetBuildInfo(buildInfo())
	cmd.Execute()
}

func buildInfo() build.Info {
	return build.Info{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
	}
}

func runGUI() int {
	runtime.LockOSThread()
	timer := bootstrap.NewStartupTimer()

	bootLog := logging.NewFromEnv()
	ctx := logging.WithContext(context.Background(), bootLog)
	disableCoreDumps(ctx)

	cfgManager, err := initConfig(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize configuration: %v\n", err)
		return 1
	}
	cfg := cfgManager.Get()
	timer.Mark("config")

	logger, logCleanup := initLogger(cfg)
	defer logCleanup()
	ctx = logging.WithContext(context.Background(), logger)
	logging.RouteStandardLog(logger)
	defer logging.LogPanic(ctx)
	log := logging.FromContext(ctx)

	log.Info().
		Str("version", version).
		Str("commit", commit).
		Str("build_date", buildDate).
		Msg("starting medusa")
	timer.Mark("logger")

	initResult, err := bootstrap.RunParallelInit(bootstrap.ParallelInitInput{Ctx: ctx, Config: cfg})
	if err != nil {
		log.Error().Err(err).Msg("initialization failed")
		return 1
	}
	defer initResult.Close()
	timer.MarkDuration("parallel_init", initResult.Duration)

	deps := &ui.Dependencies{
		Ctx:            ctx,
		ConfigManager:  cfgManager,
		InitialURL:     initialURL,
		WebsiteDataDir: initResult.WebsiteDataDir,
		CacheDir:       initResult.CacheDir,
		FilterStoreDir: initResult.FilterStoreDir,
		BlockLists:     initResult.BlockLists,
		TorManager:     tor.NewManager(cfg.Tor),
		NavigateUC:     usecase.NewNavigateUseCase(cfgManager),
		PrivacyUC:      usecase.NewApplyPrivacyUseCase(cfgManager),
	}
	if initResult.DB != nil {
		historyCtx := logging.WithComponent(ctx, "history")
		deps.HistoryUC = usecase.NewHistoryUseCase(historyCtx, sqlite.NewLazyHistoryRepository(initResult.DB))
	}

	app, err := ui.New(deps)
	if err != nil {
		log.Error().Err(err).Msg("failed to create application")
		return 1
	}
	timer.Mark("ui_deps")
	timer.Log(ctx)

	setupSignalHandler(ctx, app)

	return app.Run(os.Args)
}

func initConfig(ctx context.Context) (*config.Manager, error) {
	manager, err := config.NewManager(config.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	if err := manager.Load(); err != nil {
		return nil, err
	}
	return manager, nil
}

// initLogger builds the session logger, adding the rotated file when
// logging.enable_file_log is set. With privacy.clear_on_exit the log files
// are removed at exit, and leftovers from earlier sessions are removed when
// file logging is off.
func initLogger(cfg *config.Config) (zerolog.Logger, func()) {
	logCfg := logging.Config{
		Level:      logging.ParseLevel(cfg.Logging.Level),
		Format:     cfg.Logging.Format,
		TimeFormat: consoleTimeFormat,
	}

	logDir, dirErr := config.GetLogDir()
	if !cfg.Logging.EnableFileLog {
		logger := logging.New(logCfg)
		if dirErr == nil && cfg.Privacy.ClearOnExit {
			if err := logging.PurgeLogs(logDir); err != nil {
				logger.Warn().Err(err).Msg("failed to remove old log files")
			}
		}
		return logger, func() {}
	}
	if dirErr != nil {
		logger := logging.New(logCfg)
		logger.Warn().Err(dirErr).Msg("file logging disabled")
		return logger, func() {}
	}

	logger, cleanup, err := logging.NewWithFile(logCfg, logging.FileConfig{
		Dir:        logDir,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   true,
		Ephemeral:  cfg.Privacy.ClearOnExit,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("file logging disabled")
	}
	return logger, cleanup
}

func setupSignalHandler(ctx context.Context, app *ui.App) {
	log := logging.FromContext(ctx)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		signal.Stop(sigCh)
		log.Info().Str("signal", sig.String()).Msg("received interrupt, quitting")
		app.Quit()
	}()
}
