// Package server wires the FocusKeeper process together: it opens and
// migrates the database, builds the services, and runs the REST and gRPC
// servers until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/focuskeeper/internal/logging"
	"github.com/dmitrijs2005/focuskeeper/internal/server/config"
	"github.com/dmitrijs2005/focuskeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/focuskeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/focuskeeper/internal/server/services"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/focuskeeper/internal/server/grpc"
)

const readHeaderTimeout = 5 * time.Second

type App struct {
	config       *config.Config
	logger       logging.Logger
	db           *sql.DB
	userService  *services.UserService
	focusService *services.FocusService
}

// NewApp opens the database, applies migrations and builds the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, c.LogFormat, c.LogLevel)

	db, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return &App{
		config:       c,
		logger:       logger,
		db:           db,
		userService:  services.NewUserService(db, rm, c),
		focusService: services.NewFocusService(db, rm),
	}, nil
}

// Run serves until SIGINT/SIGTERM/SIGQUIT or a server failure, then shuts
// everything down and closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	defer func() {
		if err := app.db.Close(); err != nil {
			app.logger.Error(context.Background(), "closing database", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting app...")

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.runHTTPServer(ctx)
	})

	if app.config.EndpointAddrGRPC != "" {
		g.Go(func() error {
			return gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.db.PingContext).Run(ctx)
		})
	}

	err := g.Wait()
	app.logger.Info(context.Background(), "App stopped")
	return err
}

func (app *App) runHTTPServer(ctx context.Context) error {
	metrics := httpapi.NewMetrics()
	metrics.Registry().MustRegister(collectors.NewDBStatsCollector(app.db, "focuskeeper"))

	api := httpapi.New(httpapi.Deps{
		Users:     app.userService,
		Focuses:   app.focusService,
		SecretKey: []byte(app.config.SecretKey),
		Logger:    app.logger.With("module", "http_server"),
		Metrics:   metrics,
		Ping:      app.db.PingContext,
	})

	srv := &http.Server{
		Addr:              app.config.EndpointAddrHTTP,
		Handler:           api.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "Starting HTTP server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return <-errCh
}
