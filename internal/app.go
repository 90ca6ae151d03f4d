// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "eaglebank/internal/api"
	"eaglebank/internal/api/handler"
	"eaglebank/internal/config"
	"eaglebank/internal/repository"
	"eaglebank/internal/repository/postgres"
	"eaglebank/internal/service"
	"eaglebank/internal/util"
	"eaglebank/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	UserRepository        repository.UserRepository
	AccountRepository     repository.AccountRepository
	TransactionRepository repository.TransactionRepository

	// Services
	UserService        service.UserService
	AccountService     service.AccountService
	TransactionService service.TransactionService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	util.InitLogger()
	app.Logger = util.GetLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg
	app.Logger.Info("Application configuration loaded successfully.")

	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	app.UserRepository = postgres.NewUserRepository(app.DB)
	app.AccountRepository = postgres.NewAccountRepository(app.DB)
	app.TransactionRepository = postgres.NewTransactionRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	app.UserService = service.NewUserService(
		app.DB, app.DB,
		app.UserRepository, app.AccountRepository,
		db.BeginTx, db.CommitTx, db.RollbackTx,
	)
	app.AccountService = service.NewAccountService(
		app.DB, app.DB,
		app.UserRepository, app.AccountRepository,
		db.BeginTx, db.CommitTx, db.RollbackTx,
	)
	app.TransactionService = service.NewTransactionService(
		app.DB, app.DB,
		app.UserRepository, app.AccountRepository, app.TransactionRepository,
		db.BeginTx, db.CommitTx, db.RollbackTx,
	)
	app.Logger.Info("Services initialized.")

	authHandler := handler.NewAuthHandler(app.UserService, app.Config.JWTSecret, app.Config.JWTTTL, app.Logger)
	userHandler := handler.NewUserHandler(app.UserService, app.Logger)
	accountHandler := handler.NewAccountHandler(app.AccountService, app.Logger)
	transactionHandler := handler.NewTransactionHandler(app.TransactionService, app.Logger)
	app.HTTPHandler = router.NewRouter(authHandler, userHandler, accountHandler, transactionHandler, app.Config.JWTSecret, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
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
