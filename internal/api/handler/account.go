// internal/api/handler/account.go
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

// AccountHandler handles HTTP requests for bank account operations.
type AccountHandler struct {
	accounts service.AccountService
	logger   *slog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accounts service.AccountService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{accounts: accounts, logger: logger}
}

// AccountRequest represents the request body for creating or updating an
// account. Balance is read only on creation.
type AccountRequest struct {
	BankName      string          `json:"bank_name"`
	AccountType   string          `json:"account_type"`
	SortCode      string          `json:"sort_code"`
	AccountNumber string          `json:"account_number"`
	Balance       decimal.Decimal `json:"balance"`
}

func (a AccountRequest) params() service.AccountParams {
	return service.AccountParams{
		BankName:      a.BankName,
		AccountType:   a.AccountType,
		SortCode:      a.SortCode,
		AccountNumber: a.AccountNumber,
	}
}

// CreateAccount opens a new account for the principal.
// POST /v1/accounts
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrValidation)
		return
	}
	if req.BankName == "" || req.AccountType == "" || req.SortCode == "" || req.AccountNumber == "" {
		respondWithError(w, h.logger, util.ErrValidation)
		return
	}

	account, err := h.accounts.CreateAccount(r.Context(), principal, req.params(), req.Balance)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusCreated, account)
}

// ListAccounts returns all accounts owned by the principal.
// GET /v1/accounts
func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	accounts, err := h.accounts.ListAccounts(r.Context(), principal)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, types.ListResponse[domain.BankAccount]{Data: accounts})
}

// GetAccount returns one account owned by the principal.
// GET /v1/accounts/{accountID}
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	accountID, principal, ok := h.requestScope(w, r)
	if !ok {
		return
	}

	account, err := h.accounts.GetAccount(r.Context(), accountID, principal)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, account)
}

// UpdateAccount overwrites the descriptive fields of an owned account.
// PATCH /v1/accounts/{accountID}
func (h *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	accountID, principal, ok := h.requestScope(w, r)
	if !ok {
		return
	}

	var req AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrValidation)
		return
	}
	if req.BankName == "" || req.AccountType == "" || req.SortCode == "" || req.AccountNumber == "" {
		respondWithError(w, h.logger, util.ErrValidation)
		return
	}

	account, err := h.accounts.UpdateAccount(r.Context(), accountID, principal, req.params())
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, account)
}

// DeleteAccount removes an owned account.
// DELETE /v1/accounts/{accountID}
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	accountID, principal, ok := h.requestScope(w, r)
	if !ok {
		return
	}

	if err := h.accounts.DeleteAccount(r.Context(), accountID, principal); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AmountRequest represents the request body for deposit and withdraw.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// Deposit adds money to an owned account.
// POST /v1/accounts/{accountID}/deposit
func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	accountID, principal, ok := h.requestScope(w, r)
	if !ok {
		return
	}

	var req AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrValidation)
		return
	}

	account, err := h.accounts.Deposit(r.Context(), accountID, req.Amount, principal)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, account)
}

// Withdraw removes money from an owned account.
// POST /v1/accounts/{accountID}/withdraw
func (h *AccountHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	accountID, principal, ok := h.requestScope(w, r)
	if !ok {
		return
	}

	var req AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrValidation)
		return
	}

	account, err := h.accounts.Withdraw(r.Context(), accountID, req.Amount, principal)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, account)
}

func (h *AccountHandler) principal(w http.ResponseWriter, r *http.Request) (string, bool) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrForbidden)
		return "", false
	}
	return principal, true
}

func (h *AccountHandler) requestScope(w http.ResponseWriter, r *http.Request) (uuid.UUID, string, bool) {
	accountID, err := uuid.Parse(chi.URLParam(r, "accountID"))
	if err != nil {
		respondWithError(w, h.logger, util.ErrValidation)
		return uuid.Nil, "", false
	}
	principal, ok := h.principal(w, r)
	if !ok {
		return uuid.Nil, "", false
	}
	return accountID, principal, true
}
