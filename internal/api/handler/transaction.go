// internal/api/handler/transaction.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"eaglebank/internal/api/types"
	"eaglebank/internal/domain"
	"eaglebank/internal/service"
	"eaglebank/internal/util"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionHandler handles HTTP requests for transfers and their history.
type TransactionHandler struct {
	transactions service.TransactionService
	logger       *slog.Logger
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactions service.TransactionService, logger *slog.Logger) *TransactionHandler {
	return &TransactionHandler{transactions: transactions, logger: logger}
}

// CreateTransferRequest represents the request body for a transfer.
type CreateTransferRequest struct {
	FromAccountID uuid.UUID       `json:"from_account_id"`
	ToAccountID   uuid.UUID       `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
}

// CreateTransfer moves money between two accounts.
// POST /v1/transactions
func (h *TransactionHandler) CreateTransfer(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrForbidden)
		return
	}

	var req CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrValidation)
		return
	}
	if req.FromAccountID == uuid.Nil || req.ToAccountID == uuid.Nil {
		respondWithError(w, h.logger, util.ErrValidation)
		return
	}

	transaction, err := h.transactions.CreateTransfer(r.Context(), req.FromAccountID, req.ToAccountID, req.Amount, principal)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusCreated, transaction)
}

// GetTransaction returns one transfer record the principal is a party to.
// GET /v1/transactions/{transactionID}
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrForbidden)
		return
	}

	transactionID, err := uuid.Parse(chi.URLParam(r, "transactionID"))
	if err != nil {
		respondWithError(w, h.logger, util.ErrValidation)
		return
	}

	transaction, err := h.transactions.GetTransaction(r.Context(), transactionID, principal)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, transaction)
}

// ListTransactions returns the principal's full transfer history.
// GET /v1/transactions
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrForbidden)
		return
	}

	transactions, err := h.transactions.ListTransactions(r.Context(), principal)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, types.ListResponse[domain.Transaction]{Data: transactions})
}

// ListTransactionsForAccount returns one owned account's transfer history.
// GET /v1/accounts/{accountID}/transactions
func (h *TransactionHandler) ListTransactionsForAccount(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrForbidden)
		return
	}

	accountID, err := uuid.Parse(chi.URLParam(r, "accountID"))
	if err != nil {
		respondWithError(w, h.logger, util.ErrValidation)
		return
	}

	transactions, err := h.transactions.ListTransactionsForAccount(r.Context(), accountID, principal)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, types.ListResponse[domain.Transaction]{Data: transactions})
}
