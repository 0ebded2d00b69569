package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router groups the handlers mounted by RegisterRoutes
type Router struct {
	Health       *HealthCheckHandler
	Transactions *TransactionHandler
	Reports      *ReportHandler
	Categories   *CategoryHandler
	Settings     *SettingsHandler
	// Dev is nil outside development
	Dev *DevHandler
}

// RegisterRoutes mounts the public probes and the authenticated /api/v1 API.
// requireAuth guards every /api/v1 route except POST /dev/token.
func RegisterRoutes(e *echo.Echo, r Router, requireAuth echo.MiddlewareFunc, apiMiddleware ...echo.MiddlewareFunc) {
	e.GET("/health", r.Health.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := e.Group("/api/v1")

	if r.Dev != nil {
		v1.POST("/dev/token", r.Dev.IssueToken)
	}

	api := v1.Group("", append([]echo.MiddlewareFunc{requireAuth}, apiMiddleware...)...)

	api.POST("/transactions", r.Transactions.CreateTransaction)
	api.GET("/transactions", r.Transactions.ListTransactions)
	api.GET("/transactions/statement", r.Transactions.GetStatement)
	api.PUT("/transactions/:id", r.Transactions.UpdateTransaction)
	api.DELETE("/transactions/:id", r.Transactions.DeleteTransaction)

	api.GET("/stats/balance", r.Reports.GetBalance)
	api.GET("/stats/categories", r.Reports.GetCategoryBreakdown)
	api.GET("/history", r.Reports.GetHistory)
	api.GET("/history/periods", r.Reports.GetHistoryPeriods)

	api.GET("/categories", r.Categories.ListCategories)
	api.POST("/categories", r.Categories.CreateCategory)
	api.PUT("/categories", r.Categories.UpdateCategory)
	api.DELETE("/categories", r.Categories.DeleteCategory)

	api.GET("/settings", r.Settings.GetSettings)
	api.PUT("/settings", r.Settings.UpdateCurrency)
	api.GET("/currencies", r.Settings.ListCurrencies)
	api.POST("/onboarding", r.Settings.CompleteOnboarding)
	api.GET("/onboarding/suggestions", r.Settings.GetSuggestions)

	if r.Dev != nil {
		api.POST("/dev/demo-data", r.Dev.GenerateDemoData)
	}
}
