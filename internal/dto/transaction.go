package dto

import (
	"github.com/shopspring/decimal"
)

// TransactionRequest is the payload for recording or editing a transaction.
// Date accepts RFC3339 or YYYY-MM-DD.
type TransactionRequest struct {
	Amount      decimal.Decimal `json:"amount" validate:"money_amount"`
	Type        string          `json:"type" validate:"required,entry_type"`
	Category    string          `json:"category" validate:"required,min=1,max=100"`
	Description string          `json:"description" validate:"required,min=2,max=255"`
	Date        string          `json:"date" validate:"required"`
}

// DateRangeQuery carries the from/to window of range queries
type DateRangeQuery struct {
	From string `query:"from" validate:"required"`
	To   string `query:"to" validate:"required"`
}
