// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"eaglebank/internal/api/handler"
)

// NewRouter sets up and returns the HTTP router. User creation and login
// are the only unauthenticated endpoints besides the health check.
func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	accountHandler *handler.AccountHandler,
	transactionHandler *handler.TransactionHandler,
	jwtSecret string,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)
		r.Post("/users", userHandler.CreateUser)

		// Everything below requires a valid bearer token.
		r.Group(func(r chi.Router) {
			r.Use(handler.Authenticator(jwtSecret, logger))

			r.Route("/users/{userID}", func(r chi.Router) {
				r.Get("/", userHandler.GetUser)
				r.Patch("/", userHandler.UpdateUser)
				r.Delete("/", userHandler.DeleteUser)
			})

			r.Route("/accounts", func(r chi.Router) {
				r.Post("/", accountHandler.CreateAccount)
				r.Get("/", accountHandler.ListAccounts)
				r.Route("/{accountID}", func(r chi.Router) {
					r.Get("/", accountHandler.GetAccount)
					r.Patch("/", accountHandler.UpdateAccount)
					r.Delete("/", accountHandler.DeleteAccount)
					r.Post("/deposit", accountHandler.Deposit)
					r.Post("/withdraw", accountHandler.Withdraw)
					r.Get("/transactions", transactionHandler.ListTransactionsForAccount)
				})
			})

			r.Route("/transactions", func(r chi.Router) {
				r.Post("/", transactionHandler.CreateTransfer)
				r.Get("/", transactionHandler.ListTransactions)
				r.Get("/{transactionID}", transactionHandler.GetTransaction)
			})
		})
	})

	return r
}
