package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/alexanderramin/moodlog/internal/catalog"
	"github.com/alexanderramin/moodlog/internal/cli"
	"github.com/alexanderramin/moodlog/internal/db"
	"github.com/alexanderramin/moodlog/internal/intelligence"
	"github.com/alexanderramin/moodlog/internal/llm"
	"github.com/alexanderramin/moodlog/internal/repository"
	"github.com/alexanderramin/moodlog/internal/service"
	"github.com/alexanderramin/moodlog/internal/telemetry"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	level := zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if strings.EqualFold(os.Getenv("MOODLOG_LOG_LEVEL"), "debug") {
		level.SetLevel(zapcore.DebugLevel)
	}
	logger, err := newLogger(level)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	// Determine DB path: env var or default ~/.moodlog/moodlog.db
	dbPath := os.Getenv("MOODLOG_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".moodlog", "moodlog.db")
	}

	cat, err := loadCatalog(os.Getenv("MOODLOG_RESOURCES"))
	if err != nil {
		return err
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	recorder := newRecorder(ctx, logger)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := recorder.Close(closeCtx); err != nil {
			logger.Warn("flushing metrics", zap.Error(err))
		}
	}()

	records := repository.NewSQLiteTaskRecordRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)
	useCaseObserver := service.NewLogUseCaseObserver(logger)

	// Wire the augmentation gateway only when enabled.
	var narratives intelligence.NarrativeService
	llmCfg := llm.LoadConfig()
	if llmCfg.Enabled {
		observers := llm.MultiObserver{recorder}
		if llmCfg.LogCalls {
			observers = append(observers, llm.NewLogObserver(logger))
		}
		narratives = intelligence.NewNarrativeService(llm.NewClient(llmCfg, observers), logger)
	}

	app := &cli.App{
		Reflect: service.NewReflectionService(records, narratives, cat, recorder, useCaseObserver),
		Tasks:   service.NewTaskLogService(records, uow, recorder, useCaseObserver),
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
		SetVerbose: func(v bool) {
			if v {
				level.SetLevel(zapcore.DebugLevel)
			}
		},
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

func newLogger(level zap.AtomicLevel) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading resources from %s: %w", path, err)
	}
	return cat, nil
}

// newRecorder exports metrics when OTEL is configured and falls back to a
// no-op recorder otherwise.
func newRecorder(ctx context.Context, logger *zap.Logger) telemetry.Recorder {
	cfg := telemetry.LoadConfig()
	if !cfg.Enabled {
		return telemetry.NewNoOpRecorder()
	}
	m, err := telemetry.NewExporter(ctx, cfg)
	if err != nil {
		logger.Warn("metrics export disabled", zap.Error(err))
		return telemetry.NewNoOpRecorder()
	}
	return m
}
