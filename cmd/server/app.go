package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/generic-crud/internal/api"
	"github.com/phrazzld/generic-crud/internal/config"
	"github.com/phrazzld/generic-crud/internal/domain"
	"github.com/phrazzld/generic-crud/internal/platform/gormstore"
	"github.com/phrazzld/generic-crud/internal/platform/postgres"
	"github.com/phrazzld/generic-crud/internal/service"
	"github.com/phrazzld/generic-crud/internal/store"
)

// Supported values of database.driver.
const (
	driverPostgres = "postgres"
	driverMySQL    = "mysql"
)

// repositories holds one repository per entity plus the function that
// releases the shared connection pool.
type repositories struct {
	items      store.Repository[*domain.Item]
	categories store.Repository[*domain.Category]
	close      func() error
}

// openRepositories connects to the configured database and builds the
// repositories for the selected backend. Both backends share column names,
// so the Postgres sort mappings serve gorm as well.
func openRepositories(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*repositories, error) {
	switch cfg.Driver {
	case driverPostgres:
		db, err := postgres.Open(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return &repositories{
			items:      postgres.NewRepository(db, postgres.ItemsTable, logger),
			categories: postgres.NewRepository(db, postgres.CategoriesTable, logger),
			close:      db.Close,
		}, nil

	case driverMySQL:
		db, err := gormstore.Open(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database instance: %w", err)
		}
		return &repositories{
			items: gormstore.NewRepository[domain.Item](
				db, postgres.ItemsTable.Entity, postgres.ItemsTable.Sortable, logger),
			categories: gormstore.NewRepository[domain.Category](
				db, postgres.CategoriesTable.Entity, postgres.CategoriesTable.Sortable, logger),
			close: sqlDB.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// application holds the shared dependencies of the server and releases them
// on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	repos  *repositories

	itemService     service.EntityService[*domain.Item]
	categoryService service.EntityService[*domain.Category]
}

// newApplication creates the services on top of repos.
func newApplication(cfg *config.Config, logger *slog.Logger, repos *repositories) (*application, error) {
	if repos == nil {
		return nil, errors.New("repositories cannot be nil")
	}

	app := &application{
		config: cfg,
		logger: logger,
		repos:  repos,
	}

	var err error
	app.itemService, err = service.NewEntityService("item", repos.items, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create item service: %w", err)
	}
	app.categoryService, err = service.NewEntityService("category", repos.categories, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create category service: %w", err)
	}

	logger.Info("application initialized")
	return app, nil
}

// setupRouter mounts one entity handler per collection.
func (app *application) setupRouter() http.Handler {
	pageLimit := api.WithMaxPageSize(app.config.Server.MaxPageSize)
	items := api.NewEntityHandler(app.itemService, app.logger, pageLimit)
	categories := api.NewEntityHandler(app.categoryService, app.logger, pageLimit)

	return api.NewRouter(app.logger, api.RouterOptions{
		RequestTimeout: app.config.Server.RequestTimeout,
		MaxBodyBytes:   app.config.Server.MaxBodyBytes,
		AccessLog:      app.config.Server.LogLevel == "debug",
	},
		api.Resource{Pattern: "/items", Register: items.Register},
		api.Resource{Pattern: "/categories", Register: categories.Register},
	)
}

// Run serves the API until ctx is cancelled or a shutdown signal arrives.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases the database connection.
func (app *application) cleanup() {
	if app.repos != nil && app.repos.close != nil {
		if err := app.repos.close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}
	app.logger.Info("application shutdown completed")
}
