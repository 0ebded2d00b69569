package handlers

import (
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"pouparia/internal/dto"
	"pouparia/internal/errors"
	"pouparia/internal/models"
	"pouparia/internal/services"

	"github.com/labstack/echo/v4"
)

const (
	defaultDemoDays = 90
	maxDemoDays     = 365
)

// DevHandler handles development-only endpoints.
// Routes are registered only when the server runs in development.
type DevHandler struct {
	tokens       services.TokenServiceInterface
	transactions services.TransactionServiceInterface
	categories   services.CategoryServiceInterface
	generator    services.DemoDataGeneratorInterface
	cache        *ResponseCache
	metrics      services.MetricsRecorderInterface
}

// NewDevHandler creates a new development handler
func NewDevHandler(
	tokens services.TokenServiceInterface,
	transactions services.TransactionServiceInterface,
	categories services.CategoryServiceInterface,
	generator services.DemoDataGeneratorInterface,
	cache *ResponseCache,
	metrics services.MetricsRecorderInterface,
) *DevHandler {
	return &DevHandler{
		tokens:       tokens,
		transactions: transactions,
		categories:   categories,
		generator:    generator,
		cache:        cache,
		metrics:      metrics,
	}
}

// IssueToken signs a token for any user id with the development keypair
//
// Method: POST /api/v1/dev/token
// Body: {"user_id": "..."}
// Success: 200 with access_token and expires_at
func (h *DevHandler) IssueToken(c echo.Context) error {
	var req dto.DevTokenRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	token, expiresAt, err := h.tokens.GenerateDevToken(req.UserID)
	if err != nil {
		if stderrors.Is(err, services.ErrSigningDisabled) {
			return SendError(c, errors.SystemServiceUnavailable, errors.WithDetails(err.Error()))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	})
}

// GenerateDemoData records a realistic history for the caller using their categories.
// Every entry goes through the normal write path, so the rollups stay consistent.
//
// Method: POST /api/v1/dev/demo-data?days=90
// Success: 200 with the number of transactions created
// Errors: 400 when the caller has no categories yet
func (h *DevHandler) GenerateDemoData(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	days := defaultDemoDays
	if raw := c.QueryParam("days"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil || days < 1 || days > maxDemoDays {
			return SendValidationError(c, map[string]string{"days": "must be between 1 and 365"})
		}
	}

	ctx := c.Request().Context()
	categories, err := h.categories.ListCategories(ctx, userID, "")
	if err != nil {
		return sendServiceError(c, err)
	}
	if len(categories) == 0 {
		return SendValidationError(c, map[string]string{"categories": "complete onboarding before generating demo data"})
	}

	endDate := time.Now().UTC()
	startDate := endDate.AddDate(0, 0, -days)
	requests := h.generator.GenerateHistory(categories, startDate, endDate)

	created := 0
	for _, req := range requests {
		if _, err := h.transactions.RecordTransaction(ctx, userID, req); err != nil {
			return sendServiceError(c, err)
		}
		created++
		if h.metrics != nil {
			h.metrics.IncrementCounter("demo.transaction.generated", nil)
		}
	}

	h.cache.Invalidate(userID)
	return c.JSON(http.StatusOK, dto.DemoDataResponse{
		Message:             "demo data generated",
		TransactionsCreated: created,
		Start:               startDate.Format(models.StatementDateLayout),
		End:                 endDate.Format(models.StatementDateLayout),
	})
}
