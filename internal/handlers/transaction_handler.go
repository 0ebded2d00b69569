package handlers

import (
	"net/http"
	"time"

	"pouparia/internal/dto"
	"pouparia/internal/errors"
	"pouparia/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TransactionHandler handles ledger writes, the transaction list and the monthly statement
type TransactionHandler struct {
	transactions services.TransactionServiceInterface
	statements   services.StatementServiceInterface
	cache        *ResponseCache
	metrics      services.MetricsRecorderInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(
	transactions services.TransactionServiceInterface,
	statements services.StatementServiceInterface,
	cache *ResponseCache,
	metrics services.MetricsRecorderInterface,
) *TransactionHandler {
	return &TransactionHandler{
		transactions: transactions,
		statements:   statements,
		cache:        cache,
		metrics:      metrics,
	}
}

// CreateTransaction records an income or expense entry
//
// Method: POST /api/v1/transactions
// Body: dto.TransactionRequest
// Success: 201 with the stored transaction
// Errors: 400 validation, 401 unauthenticated, 404 unknown category, 500
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.TransactionRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}

	transaction, err := h.transactions.RecordTransaction(c.Request().Context(), userID, &req)
	if err != nil {
		return sendServiceError(c, err)
	}

	h.cache.Invalidate(userID)
	return c.JSON(http.StatusCreated, transaction)
}

// UpdateTransaction replaces a transaction
//
// Method: PUT /api/v1/transactions/:id
// Errors: 400 validation or malformed id, 404 transaction or category not found
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid transaction ID"))
	}

	var req dto.TransactionRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}

	transaction, err := h.transactions.EditTransaction(c.Request().Context(), userID, id, &req)
	if err != nil {
		return sendServiceError(c, err)
	}

	h.cache.Invalidate(userID)
	return c.JSON(http.StatusOK, transaction)
}

// DeleteTransaction removes a transaction
//
// Method: DELETE /api/v1/transactions/:id
// Success: 204
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid transaction ID"))
	}

	if err := h.transactions.RemoveTransaction(c.Request().Context(), userID, id); err != nil {
		return sendServiceError(c, err)
	}

	h.cache.Invalidate(userID)
	return c.NoContent(http.StatusNoContent)
}

// ListTransactions lists the caller's transactions between two dates, newest first
//
// Method: GET /api/v1/transactions?from=YYYY-MM-DD&to=YYYY-MM-DD
// Errors: 400 missing/invalid dates or window, 404 settings not created yet
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	from, to, fields := parseDateRange(c)
	if fields != nil {
		return SendValidationError(c, fields)
	}

	start := time.Now()
	err = h.cache.Serve(c, userID, func() (interface{}, error) {
		views, err := h.statements.ListTransactions(c.Request().Context(), userID, from, to)
		if err != nil {
			return nil, err
		}
		return dto.ListTransactionsResponse{Transactions: views, Total: len(views)}, nil
	})
	observeReport(h.metrics, "transactions", start, err)
	if err != nil {
		return sendServiceError(c, err)
	}
	return nil
}

// GetStatement returns the current month's day-by-day statement
//
// Method: GET /api/v1/transactions/statement
func (h *TransactionHandler) GetStatement(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	start := time.Now()
	err = h.cache.Serve(c, userID, func() (interface{}, error) {
		return h.statements.MonthlyStatement(c.Request().Context(), userID)
	})
	observeReport(h.metrics, "statement", start, err)
	if err != nil {
		return sendServiceError(c, err)
	}
	return nil
}
