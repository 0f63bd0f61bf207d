// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "user-service/internal/api"
	"user-service/internal/api/handler"
	"user-service/internal/config"
	"user-service/internal/repository"
	"user-service/internal/repository/sqlstore"
	"user-service/internal/service"
	"user-service/internal/util"
	"user-service/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	UserRepository repository.UserRepository

	// Services
	UserService service.UserService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Connect loads the configuration, opens the database and makes sure the
// users table exists. It is the part of Initialize that the migrate command needs.
func (app *Application) Connect(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database
	database, err := db.Open(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.", "driver", database.DriverName())

	// 4. Create the schema if missing
	if err := db.EnsureSchema(ctx, app.DB); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	app.Logger.Info("Database schema ensured.")

	return nil
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	if err := app.Connect(ctx); err != nil {
		return err
	}

	// 5. Initialize Repositories
	app.UserRepository = sqlstore.NewUserRepository(app.DB)

	// 6. Initialize Services
	app.UserService = service.NewUserService(
		app.DB, // This is the DBTxBeginner
		app.DB, // This is the DBExecutor
		app.UserRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)

	// 7. Initialize HTTP Handlers and Router
	userHandler := handler.NewUserHandler(app.UserService, app.Logger)
	app.HTTPHandler = router.NewRouter(userHandler, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	if app.Logger == nil {
		app.Logger = util.GetLogger()
	}
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
