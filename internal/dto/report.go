package dto

import (
	"pouparia/internal/models"
)

// HistoryQuery selects a month or year history view. Month is zero-based and defaults to 0.
type HistoryQuery struct {
	Timeframe string `query:"timeframe" validate:"required,oneof=month year"`
	Month     int    `query:"month"`
	Year      int    `query:"year" validate:"required"`
}

// BalanceResponse is returned by the balance endpoint
type BalanceResponse struct {
	models.Balance
	Net string `json:"net"`
}

// CategoryBreakdownResponse is returned by the category stats endpoint
type CategoryBreakdownResponse struct {
	Categories []models.CategoryTotal `json:"categories"`
}

// HistoryPeriodsResponse lists the years that have recorded activity
type HistoryPeriodsResponse struct {
	Years []int `json:"years"`
}

// ListTransactionsResponse represents the response for listing transactions
type ListTransactionsResponse struct {
	Transactions []models.TransactionView `json:"transactions"`
	Total        int                      `json:"total"`
}
