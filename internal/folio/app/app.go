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

	"github.com/aussiebroadwan/folio/internal/folio/catalog"
	httpapi "github.com/aussiebroadwan/folio/internal/folio/http"
	"github.com/aussiebroadwan/folio/internal/folio/service"
	"github.com/aussiebroadwan/folio/internal/folio/store"
	"github.com/aussiebroadwan/folio/internal/folio/store/drivers/sqlite"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the download service together and owns its lifecycle.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db      store.Store
	catalog *catalog.Holder

	linkService         *service.LinkService
	catalogService      *service.CatalogService
	revocationService   *service.RevocationService
	housekeepingService *service.HousekeepingService
	adminGuard          *service.AdminGuard

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "folio",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		catalog: catalog.NewHolder(nil),
	}

	if cfg.SecretIsDefault {
		app.logger.Warn("DOWNLOAD_SECRET not set, signing links with the built-in default secret")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	ctx := slogx.WithContext(context.Background(), app.logger)
	if err := app.initServices(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Handler returns the fully wired HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("folio starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"kid", app.linkService.KID(),
		"resources", app.catalog.Load().Len(),
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		app.housekeepingService.Stop()
		_ = app.db.Close()
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
	app.logger.Info("shutting down folio...")

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

	app.logger.Info("folio stopped")
	return nil
}

// initDatabase opens the database and applies migrations
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(app.cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "file", app.cfg.DatabaseFile)
	return nil
}

// initServices builds the services, seeds the catalog and warms the
// revocation cache.
func (app *Application) initServices(ctx context.Context) error {
	app.catalogService = service.NewCatalogService(app.db, app.catalog)
	if err := app.seedCatalog(ctx); err != nil {
		return err
	}

	previous := make([][]byte, 0, len(app.cfg.PreviousSecrets))
	for _, s := range app.cfg.PreviousSecrets {
		previous = append(previous, []byte(s))
	}

	links, err := service.NewLinkService(service.LinkConfig{
		Secret:          []byte(app.cfg.Secret),
		PreviousSecrets: previous,
		TTL:             app.cfg.LinkTTL,
		Issuer:          app.cfg.Issuer,
		PublicBaseURL:   app.cfg.PublicBaseURL,
		Catalog:         app.catalog,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize link signer: %w", err)
	}

	app.revocationService = service.NewRevocationService(app.db, links, app.cfg.RevocationCacheSize, links.TTL())
	n, err := app.revocationService.Warm(ctx)
	if err != nil {
		return fmt.Errorf("failed to load revocations: %w", err)
	}
	app.logger.Info("revocations loaded", "live", n)

	app.linkService = links.WithRevocations(app.revocationService)
	app.adminGuard = service.NewAdminGuard(app.cfg.AdminToken, app.cfg.AdminTOTPSecret)
	app.housekeepingService = service.NewHousekeepingService(app.db, app.logger, app.cfg.HousekeepingInterval)

	return nil
}

// seedCatalog upserts CATALOG_FILE (or the embedded catalog) into the store
// and publishes the result.
func (app *Application) seedCatalog(ctx context.Context) error {
	var (
		f   catalog.File
		err error
	)
	if app.cfg.CatalogFile != "" {
		f, err = catalog.LoadFile(app.cfg.CatalogFile)
	} else {
		f, err = catalog.Default()
	}
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	resources, downloads := f.Records()
	if err := app.catalogService.Seed(ctx, resources, downloads); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	app.logger.Info("catalog ready",
		"source", catalogSource(app.cfg.CatalogFile),
		"resources", app.catalog.Load().Len(),
	)
	return nil
}

func catalogSource(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)
	router.LinkService = app.linkService
	router.CatalogService = app.catalogService
	router.RevocationService = app.revocationService
	router.AdminGuard = app.adminGuard
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
