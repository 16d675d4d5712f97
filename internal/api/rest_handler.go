package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"bookkeeper/internal/budget"
	"bookkeeper/internal/domain"
	"bookkeeper/internal/ledger"
	"bookkeeper/internal/repository"
	"bookkeeper/pkg/money"
)

type APIHandler struct {
	processor      *ledger.Processor
	accountRepo    repository.AccountRepository
	budgets        *budget.Manager
	logger         *slog.Logger
	requestTimeout time.Duration
}

func NewAPIHandler(
	processor *ledger.Processor,
	accountRepo repository.AccountRepository,
	budgets *budget.Manager,
	logger *slog.Logger,
) *APIHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &APIHandler{
		processor:      processor,
		accountRepo:    accountRepo,
		budgets:        budgets,
		logger:         logger,
		requestTimeout: 30 * time.Second,
	}
}

type PolicyRequest struct {
	Kind       domain.PolicyKind `json:"kind"`
	MinBalance decimal.Decimal   `json:"min_balance"`
	MonthLimit decimal.Decimal   `json:"month_limit"`
}

type CreateAccountRequest struct {
	ID       string          `json:"id"`
	Holder   string          `json:"holder"`
	Password string          `json:"password"`
	Balance  decimal.Decimal `json:"balance"`
	Policy   *PolicyRequest  `json:"policy,omitempty"`
}

type AccountResponse struct {
	ID      string          `json:"id"`
	Holder  string          `json:"holder"`
	Balance decimal.Decimal `json:"balance"`
	Message string          `json:"message"`
}

type CreateTransactionRequest struct {
	Type          domain.TransactionType `json:"type"`
	Amount        decimal.Decimal        `json:"amount"`
	AccountID     string                 `json:"account_id,omitempty"`
	FromAccountID string                 `json:"from_account_id,omitempty"`
	ToAccountID   string                 `json:"to_account_id,omitempty"`
	Description   string                 `json:"description,omitempty"`
}

type TransactionResponse struct {
	ID      string                   `json:"id"`
	Status  domain.TransactionStatus `json:"status"`
	Message string                   `json:"message,omitempty"`
}

type SetBudgetRequest struct {
	Category string          `json:"category"`
	Limit    decimal.Decimal `json:"limit"`
}

type AddBudgetExpenseRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type BudgetExpenseResponse struct {
	Category string          `json:"category"`
	Spent    decimal.Decimal `json:"spent"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (h *APIHandler) CreateAccountHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, "Invalid request body", http.StatusBadRequest, "INVALID_REQUEST")
		return
	}

	if req.ID == "" || req.Holder == "" {
		h.sendError(w, "id and holder are required", http.StatusBadRequest, "VALIDATION_ERROR")
		return
	}
	if req.Balance.Sign() < 0 {
		h.sendError(w, "balance cannot be negative", http.StatusBadRequest, "VALIDATION_ERROR")
		return
	}

	policy, err := buildPolicy(req.Policy)
	if err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest, "VALIDATION_ERROR")
		return
	}

	account := domain.NewAccount(req.ID, req.Holder, req.Password, req.Balance, policy)
	if err := h.accountRepo.Save(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			h.sendError(w, "Account already exists", http.StatusConflict, "DUPLICATE")
			return
		}
		h.sendError(w, "Failed to save account", http.StatusInternalServerError, "SERVER_ERROR")
		return
	}

	h.sendJSON(w, accountResponse(account), http.StatusCreated)
	h.logger.Info("Account created",
		slog.String("account_id", account.ID()),
		slog.String("holder", account.Holder()))
}

func buildPolicy(req *PolicyRequest) (domain.WithdrawalPolicy, error) {
	if req == nil {
		return domain.Unrestricted(), nil
	}

	switch req.Kind {
	case "", domain.PolicyUnrestricted:
		return domain.Unrestricted(), nil
	case domain.PolicyMinimumBalance:
		return domain.MinimumBalance(req.MinBalance), nil
	case domain.PolicyMonthlyLimit:
		return domain.MonthlyLimit(req.MonthLimit), nil
	default:
		return domain.WithdrawalPolicy{}, fmt.Errorf("unknown policy kind: %s", req.Kind)
	}
}

func accountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:      account.ID(),
		Holder:  account.Holder(),
		Balance: account.Balance(),
		Message: money.FormatCurrency(account.Balance()),
	}
}

func (h *APIHandler) CreateTransactionHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, "Invalid request body", http.StatusBadRequest, "INVALID_REQUEST")
		return
	}

	tx, err := buildTransaction(req)
	if err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest, "VALIDATION_ERROR")
		return
	}

	if err := h.processor.Process(ctx, tx); err != nil {
		h.logger.Error("Transaction processing failed",
			slog.String("error", err.Error()),
			slog.String("transaction_id", tx.ID))
		h.sendError(w, fmt.Sprintf("Transaction failed: %v", err), statusForProcessingError(err), "PROCESSING_ERROR")
		return
	}

	response := TransactionResponse{
		ID:      tx.ID,
		Status:  tx.Status,
		Message: "Transaction processed successfully",
	}

	h.sendJSON(w, response, http.StatusCreated)
	h.logger.Info("Transaction processed",
		slog.String("transaction_id", tx.ID),
		slog.String("type", string(tx.Type)))
}

func buildTransaction(req CreateTransactionRequest) (*domain.Transaction, error) {
	switch req.Type {
	case domain.TypeIncome:
		accountID := req.AccountID
		if accountID == "" {
			accountID = req.ToAccountID
		}
		if accountID == "" {
			return nil, fmt.Errorf("account_id is required for income")
		}
		return domain.NewIncome(accountID, req.Amount).WithDescription(req.Description), nil
	case domain.TypeExpense:
		accountID := req.AccountID
		if accountID == "" {
			accountID = req.FromAccountID
		}
		if accountID == "" {
			return nil, fmt.Errorf("account_id is required for expense")
		}
		return domain.NewExpense(accountID, req.Amount).WithDescription(req.Description), nil
	case domain.TypeTransfer:
		if req.FromAccountID == "" || req.ToAccountID == "" {
			return nil, fmt.Errorf("from_account_id and to_account_id are required for transfers")
		}
		return domain.NewTransfer(req.FromAccountID, req.ToAccountID, req.Amount).WithDescription(req.Description), nil
	default:
		return nil, fmt.Errorf("unknown transaction type: %s", req.Type)
	}
}

func statusForProcessingError(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInsufficientBalance),
		errors.Is(err, domain.ErrMinimumBalance),
		errors.Is(err, domain.ErrMonthlyLimit):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *APIHandler) GetTransactionHandler(w http.ResponseWriter, r *http.Request) {
	transactionID := r.URL.Query().Get("id")
	if transactionID == "" {
		h.sendError(w, "Transaction ID is required", http.StatusBadRequest, "MISSING_ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	tx, err := h.processor.GetTransaction(ctx, transactionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.sendError(w, "Transaction not found", http.StatusNotFound, "NOT_FOUND")
		} else {
			h.sendError(w, "Failed to get transaction", http.StatusInternalServerError, "SERVER_ERROR")
		}
		return
	}

	h.sendJSON(w, tx, http.StatusOK)
}

func (h *APIHandler) GetAccountBalanceHandler(w http.ResponseWriter, r *http.Request) {
	accountID := r.PathValue("id")

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	account, err := h.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.sendError(w, "Account not found", http.StatusNotFound, "NOT_FOUND")
		} else {
			h.sendError(w, "Failed to get account", http.StatusInternalServerError, "SERVER_ERROR")
		}
		return
	}

	h.sendJSON(w, accountResponse(account), http.StatusOK)
}

func (h *APIHandler) ResetMonthlyWithdrawalsHandler(w http.ResponseWriter, r *http.Request) {
	accountID := r.PathValue("id")

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	account, err := h.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.sendError(w, "Account not found", http.StatusNotFound, "NOT_FOUND")
		} else {
			h.sendError(w, "Failed to get account", http.StatusInternalServerError, "SERVER_ERROR")
		}
		return
	}

	account.ResetMonthlyWithdrawals()
	h.sendJSON(w, accountResponse(account), http.StatusOK)
	h.logger.Info("Monthly withdrawals reset", slog.String("account_id", accountID))
}

func (h *APIHandler) SetBudgetHandler(w http.ResponseWriter, r *http.Request) {
	var req SetBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, "Invalid request body", http.StatusBadRequest, "INVALID_REQUEST")
		return
	}

	if req.Category == "" {
		h.sendError(w, "category is required", http.StatusBadRequest, "VALIDATION_ERROR")
		return
	}

	h.budgets.SetLimit(req.Category, req.Limit)
	h.sendJSON(w, BudgetExpenseResponse{Category: req.Category, Spent: decimal.Zero}, http.StatusCreated)
}

func (h *APIHandler) AddBudgetExpenseHandler(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")

	var req AddBudgetExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, "Invalid request body", http.StatusBadRequest, "INVALID_REQUEST")
		return
	}

	if err := h.budgets.AddExpense(category, req.Amount); err != nil {
		if errors.Is(err, budget.ErrUnknownCategory) {
			h.sendError(w, "Unknown budget category", http.StatusNotFound, "NOT_FOUND")
			return
		}
		h.sendError(w, "Failed to add expense", http.StatusInternalServerError, "SERVER_ERROR")
		return
	}

	spent, _ := h.budgets.Spent(category)
	h.sendJSON(w, BudgetExpenseResponse{Category: category, Spent: spent}, http.StatusOK)
}

func (h *APIHandler) GetBudgetStatusHandler(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, h.budgets.Status(), http.StatusOK)
}

func (h *APIHandler) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"version":   "1.0.0",
	}
	h.sendJSON(w, response, http.StatusOK)
}

func (h *APIHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", slog.String("error", err.Error()))
	}
}

func (h *APIHandler) sendError(w http.ResponseWriter, message string, statusCode int, code string) {
	errorResponse := ErrorResponse{
		Error: message,
		Code:  code,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(errorResponse)

	h.logger.Warn("API error response",
		slog.String("message", message),
		slog.String("code", code),
		slog.Int("status", statusCode))
}

func (h *APIHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/accounts", h.CreateAccountHandler)
	mux.HandleFunc("GET /api/v1/accounts/{id}/balance", h.GetAccountBalanceHandler)
	mux.HandleFunc("POST /api/v1/accounts/{id}/monthly-reset", h.ResetMonthlyWithdrawalsHandler)
	mux.HandleFunc("POST /api/v1/transactions", h.CreateTransactionHandler)
	mux.HandleFunc("GET /api/v1/transactions", h.GetTransactionHandler)
	mux.HandleFunc("POST /api/v1/budgets", h.SetBudgetHandler)
	mux.HandleFunc("POST /api/v1/budgets/{category}/expenses", h.AddBudgetExpenseHandler)
	mux.HandleFunc("GET /api/v1/budgets", h.GetBudgetStatusHandler)
	mux.HandleFunc("GET /api/health", h.HealthCheckHandler)
}
