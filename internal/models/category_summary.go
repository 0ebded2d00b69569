package models

import "github.com/shopspring/decimal"

// CategoryTotal is one row of the category breakdown
type CategoryTotal struct {
	Type         string          `json:"type"`
	Category     string          `json:"category"`
	CategoryIcon string          `json:"category_icon"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

// Balance holds income and expense totals over a window
type Balance struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// Net returns income minus expense
func (b Balance) Net() decimal.Decimal {
	return b.Income.Sub(b.Expense)
}
