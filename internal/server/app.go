// Package server initializes and runs the step-tracking API server.
// It selects the storage backend, wires the services and the HTTP router,
// starts the optional ledger backup scheduler, and handles graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/steptrack/internal/common"
	"github.com/dmitrijs2005/steptrack/internal/logging"
	"github.com/dmitrijs2005/steptrack/internal/server/backup"
	"github.com/dmitrijs2005/steptrack/internal/server/config"
	"github.com/dmitrijs2005/steptrack/internal/server/repomanager"
	"github.com/dmitrijs2005/steptrack/internal/server/rest"
	"github.com/dmitrijs2005/steptrack/internal/server/steps"
	"github.com/dmitrijs2005/steptrack/internal/server/users"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	manager     repomanager.RepositoryManager
	userService *users.Service
	stepService *steps.Service
}

// NewApp wires the application. A non-empty DatabaseDSN selects the
// Postgres backend and runs migrations; an empty one selects the seeded
// in-memory mock backend.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	s := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(s)

	if err := ensureSecretKey(ctx, cfg, logger); err != nil {
		return nil, fmt.Errorf("secret key init error: %w", err)
	}

	var manager repomanager.RepositoryManager
	var err error

	if cfg.DatabaseDSN != "" {
		manager, err = repomanager.NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		logger.Info(ctx, "using postgres backend")
	} else {
		manager, err = repomanager.NewInMemoryRepositoryManager(ctx, cfg.SnapshotPath)
		if err != nil {
			return nil, fmt.Errorf("mock backend init error: %w", err)
		}
		logger.Info(ctx, "using in-memory mock backend", "snapshot", cfg.SnapshotPath)
	}

	us := users.NewService(manager.Users(), cfg)
	ss := steps.NewService(manager.Steps())

	return &App{
		config:      cfg,
		logger:      logger,
		manager:     manager,
		userService: us,
		stepService: ss,
	}, nil
}

// ensureSecretKey replaces the placeholder signing key with a random one.
// Tokens signed with an ephemeral key do not survive a restart, so the log
// line tells the operator to configure a real key.
func ensureSecretKey(ctx context.Context, cfg *config.Config, logger logging.Logger) error {
	if cfg.SecretKey != config.DefaultSecretKey {
		return nil
	}

	key, err := common.MakeRandHexString(32)
	if err != nil {
		return err
	}

	cfg.SecretKey = key
	logger.Warn(ctx, "no secret key configured, generated an ephemeral one; sessions will not survive a restart")
	return nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	handler := rest.NewHandler(app.userService, app.stepService, app.logger)
	router := rest.NewRouter(handler, []byte(app.config.SecretKey))

	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(shutdownCtx, "http server shutdown error", "error", err.Error())
		}
	}()

	app.logger.Info(ctx, "http server listening", "addr", app.config.EndpointAddr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startBackupScheduler(ctx context.Context) {
	source, ok := app.manager.Steps().(steps.Dumper)
	if !ok {
		app.logger.Warn(ctx, "ledger backend does not support dumps, backup disabled")
		return
	}

	exporter := backup.NewExporter(source, app.config, app.logger)
	exporter.Run(ctx)
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.config.S3Bucket != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startBackupScheduler(ctx)
		}()
	}

	wg.Wait()

	if conn := app.manager.Conn(); conn != nil {
		if err := conn.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err.Error())
		}
	}
}
