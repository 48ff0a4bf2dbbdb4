package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/audit"
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/catalog"
	httpapi "github.com/aussiebroadwan/rolepanel/internal/rolepanel/http"
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/roleimport"
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/service"
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/store"
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/store/drivers/postgres"
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/store/drivers/sqlite"
	"github.com/aussiebroadwan/rolepanel/pkg/bus"
	"github.com/aussiebroadwan/rolepanel/pkg/jwtx"
	"github.com/aussiebroadwan/rolepanel/pkg/slogx"
	"github.com/nats-io/nats.go"
)

const (
	// BuildVersion is overridden at build time via ldflags.
	BuildVersion = "v0.1.0"

	auditStream = "ROLEPANEL_AUDIT"
)

// NewLogger builds the process logger from cfg.
func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "rolepanel",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// Core holds the storage and services shared by the server and the CLI.
type Core struct {
	Store store.Store
	Bus   *bus.Bus // nil when NATS_URL is unset

	Roles   *service.RolesService
	Catalog *service.CatalogService
}

// OpenCore opens the configured database, applies migrations, syncs the
// permission catalog and connects to the audit bus when configured.
func OpenCore(ctx context.Context, cfg Config, logger *slog.Logger) (*Core, error) {
	st, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := st.ApplyMigrations(); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}
	logger.Info("database migrations applied successfully", "driver", cfg.DatabaseDriver)

	c := &Core{
		Store:   st,
		Catalog: &service.CatalogService{Store: st},
	}

	cat, err := catalog.Load(cfg.PermissionsFile)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	if err := c.Catalog.Sync(slogx.WithContext(ctx, logger), cat); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to sync permission catalog: %w", err)
	}

	c.Roles = &service.RolesService{
		Store:    st,
		Audit:    &audit.Logger{},
		Importer: roleimport.Sheet{},
		Template: roleimport.Sheet{},
	}

	if cfg.NatsURL != "" {
		b, err := connectBus(cfg, logger)
		if err != nil {
			_ = st.Close()
			return nil, err
		}
		c.Bus = b
		c.Roles.Events = &audit.BusPublisher{Bus: b, Subject: cfg.AuditSubject}
	}

	return c, nil
}

func connectBus(cfg Config, logger *slog.Logger) (*bus.Bus, error) {
	b, err := bus.New(cfg.NatsURL,
		nats.Name("rolepanel"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, err
	}
	if err := b.EnsureStream(auditStream, cfg.AuditSubject+".>"); err != nil {
		b.Close()
		return nil, err
	}
	logger.Info("audit events enabled", "nats_url", cfg.NatsURL, "subject", cfg.AuditSubject)
	return b, nil
}

// OpenStore opens the database selected by cfg.DatabaseDriver without
// migrating it.
func OpenStore(ctx context.Context, cfg Config) (store.Store, error) {
	switch cfg.DatabaseDriver {
	case DriverSQLite, "":
		st, err := sqlite.NewStore(cfg.DatabaseFile)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return st, nil
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL is required for the postgres driver")
		}
		st, err := postgres.NewStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}
}

// Close releases the bus connection and the database.
func (c *Core) Close() error {
	if c.Bus != nil {
		c.Bus.Close()
	}
	return c.Store.Close()
}

// Application encapsulates the role panel service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	core     *Core
	verifier jwtx.Verifier

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(ctx context.Context, cfg Config) (*Application, error) {
	app := &Application{
		cfg:    cfg,
		logger: NewLogger(cfg),
	}

	core, err := OpenCore(ctx, cfg, app.logger)
	if err != nil {
		return nil, err
	}
	app.core = core

	verifier, err := InitTokenVerifier(cfg, app.logger)
	if err != nil {
		_ = core.Close()
		return nil, fmt.Errorf("failed to initialize token verifier: %w", err)
	}
	app.verifier = verifier

	app.initHTTP()
	return app, nil
}

// Handler returns the root HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("role panel starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down role panel...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.core.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("role panel stopped")
	return nil
}

// Close releases the database and bus without touching the HTTP server.
// Use it when the Handler was served by something other than Run.
func (app *Application) Close() error {
	return app.core.Close()
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(app.verifier, BuildVersion, app.core.Store, app.logger)
	router.RolesService = app.core.Roles
	router.ImportMaxBytes = app.cfg.ImportMaxBytes
	if app.core.Bus != nil {
		router.Bus = app.core.Bus
	}
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
