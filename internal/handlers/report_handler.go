package handlers

import (
	"time"

	"pouparia/internal/dto"
	"pouparia/internal/errors"
	"pouparia/internal/services"

	"github.com/labstack/echo/v4"
)

// ReportHandler serves the balance, category breakdown and history reports
type ReportHandler struct {
	stats   services.StatsServiceInterface
	history services.HistoryServiceInterface
	cache   *ResponseCache
	metrics services.MetricsRecorderInterface
}

// NewReportHandler creates a new report handler
func NewReportHandler(
	stats services.StatsServiceInterface,
	history services.HistoryServiceInterface,
	cache *ResponseCache,
	metrics services.MetricsRecorderInterface,
) *ReportHandler {
	return &ReportHandler{
		stats:   stats,
		history: history,
		cache:   cache,
		metrics: metrics,
	}
}

// GetBalance returns income and expense totals over a window
//
// Method: GET /api/v1/stats/balance?from&to
func (h *ReportHandler) GetBalance(c echo.Context) error {
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
		balance, err := h.stats.BalanceInRange(c.Request().Context(), userID, from, to)
		if err != nil {
			return nil, err
		}
		return dto.BalanceResponse{Balance: balance, Net: balance.Net().StringFixed(2)}, nil
	})
	observeReport(h.metrics, "balance", start, err)
	if err != nil {
		return sendServiceError(c, err)
	}
	return nil
}

// GetCategoryBreakdown returns per-category totals over a window
//
// Method: GET /api/v1/stats/categories?from&to
func (h *ReportHandler) GetCategoryBreakdown(c echo.Context) error {
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
		categories, err := h.stats.CategoryBreakdown(c.Request().Context(), userID, from, to)
		if err != nil {
			return nil, err
		}
		return dto.CategoryBreakdownResponse{Categories: categories}, nil
	})
	observeReport(h.metrics, "categories", start, err)
	if err != nil {
		return sendServiceError(c, err)
	}
	return nil
}

// GetHistory returns the zero-filled month (per day) or year (per month) view
//
// Method: GET /api/v1/history?timeframe=month|year&month=0..11&year=YYYY
func (h *ReportHandler) GetHistory(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var query dto.HistoryQuery
	if ok, err := bindAndValidate(c, &query); !ok {
		return err
	}

	start := time.Now()
	err = h.cache.Serve(c, userID, func() (interface{}, error) {
		return h.history.History(c.Request().Context(), userID, query.Timeframe, query.Month, query.Year)
	})
	observeReport(h.metrics, "history", start, err)
	if err != nil {
		return sendServiceError(c, err)
	}
	return nil
}

// GetHistoryPeriods lists the years with recorded activity, newest first
//
// Method: GET /api/v1/history/periods
func (h *ReportHandler) GetHistoryPeriods(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	start := time.Now()
	err = h.cache.Serve(c, userID, func() (interface{}, error) {
		years, err := h.history.HistoryPeriods(c.Request().Context(), userID)
		if err != nil {
			return nil, err
		}
		return dto.HistoryPeriodsResponse{Years: years}, nil
	})
	observeReport(h.metrics, "history_periods", start, err)
	if err != nil {
		return sendServiceError(c, err)
	}
	return nil
}
