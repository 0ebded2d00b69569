package models

import (
	"github.com/shopspring/decimal"
)

// StatementDateLayout keys statement days
const StatementDateLayout = "2006-01-02"

// MonthlyStatement lists the current month's activity day by day with a running balance
type MonthlyStatement struct {
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	MonthTotal decimal.Decimal `json:"month_total"`
	Days       []StatementDay  `json:"days"`
}

// StatementDay is a calendar day with at least one transaction
type StatementDay struct {
	Date               string          `json:"date"`
	Transactions       []Transaction   `json:"transactions"`
	DayTotal           decimal.Decimal `json:"day_total"`
	AccumulatedBalance decimal.Decimal `json:"accumulated_balance"`
}

// TransactionView is a ledger row with its amount rendered in the user's currency
type TransactionView struct {
	Transaction
	FormattedAmount string `json:"formatted_amount"`
}
