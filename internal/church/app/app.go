package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpapi "github.com/newcreaturechurch/church-api/internal/church/http"
	"github.com/newcreaturechurch/church-api/internal/church/service"
	"github.com/newcreaturechurch/church-api/internal/church/store"
	"github.com/newcreaturechurch/church-api/internal/church/store/drivers/sqlite"
	"github.com/newcreaturechurch/church-api/pkg/jwtx"
	"github.com/newcreaturechurch/church-api/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v1.0.0"
)

// Application encapsulates the church API with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db    store.Store
	codec *jwtx.Codec

	sessionService      *service.SessionService
	userService         *service.UserService
	eventService        *service.EventService
	sermonService       *service.SermonService
	prayerService       *service.PrayerService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "church-api",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	app.codec = jwtx.NewCodec(jwtx.Config{
		AccessSecret:  []byte(cfg.AccessSecret),
		RefreshSecret: []byte(cfg.RefreshSecret),
		AccessTTL:     cfg.AccessTokenTTL,
		RefreshTTL:    cfg.RefreshTokenTTL,
	})

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()

	if err := app.bootstrapAdmin(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initHTTP()

	return app, nil
}

// bootstrapAdmin seeds the configured staff account on first run. A fresh
// database has no path to an admin otherwise, since registration only ever
// creates members.
func (app *Application) bootstrapAdmin() error {
	if app.cfg.AdminEmail == "" && app.cfg.AdminPassword == "" {
		return nil
	}

	bootstrap := &service.BootstrapService{Store: app.db}
	ctx := slogx.WithContext(context.Background(), app.logger)
	if err := bootstrap.EnsureAdmin(ctx, app.cfg.AdminEmail, app.cfg.AdminPassword); err != nil {
		return fmt.Errorf("failed to bootstrap admin account: %w", err)
	}
	return nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("church api starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down church api...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("church api stopped")
	return nil
}

// initDatabase initializes the database and applies migrations.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.sessionService = &service.SessionService{
		Codec: app.codec,
		Store: app.db,
	}
	app.userService = &service.UserService{Store: app.db}
	app.eventService = &service.EventService{Store: app.db}
	app.sermonService = &service.SermonService{Store: app.db}
	app.prayerService = &service.PrayerService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.sessionService, app.logger)
	router.UserService = app.userService
	router.EventService = app.eventService
	router.SermonService = app.sermonService
	router.PrayerService = app.prayerService
	router.ApplyRoutes()

	app.router = router
	app.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.cfg.Port),
		Handler: router,
	}
}
