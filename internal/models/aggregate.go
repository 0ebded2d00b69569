package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Totals is the income/expense pair shared by the rollup tables and history entries
type Totals struct {
	Income  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"income"`
	Expense decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"expense"`
}

// Add returns the field-wise sum
func (t Totals) Add(other Totals) Totals {
	return Totals{Income: t.Income.Add(other.Income), Expense: t.Expense.Add(other.Expense)}
}

// Delta is a signed change to apply to the rollups for one calendar day.
// Only the fields that are non-zero get written.
type Delta struct {
	Day     int
	Month   int // zero-based
	Year    int
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// IsZero reports whether applying the delta would change nothing
func (d Delta) IsZero() bool {
	return d.Income.IsZero() && d.Expense.IsZero()
}

// DeltaFor returns the rollup delta of a transaction, negated when sign is -1
func DeltaFor(t *Transaction, sign int64) Delta {
	date := t.Date.UTC()
	amount := t.Amount.Mul(decimal.NewFromInt(sign))
	d := Delta{
		Day:     date.Day(),
		Month:   int(date.Month()) - 1,
		Year:    date.Year(),
		Income:  decimal.Zero,
		Expense: decimal.Zero,
	}
	if t.Type == TransactionTypeIncome {
		d.Income = amount
	} else {
		d.Expense = amount
	}
	return d
}

// DayAggregate holds the per-day rollup of a user's ledger
type DayAggregate struct {
	UserID string `gorm:"type:varchar(255);primaryKey" json:"user_id"`
	Day    int    `gorm:"primaryKey;autoIncrement:false" json:"day"`
	Month  int    `gorm:"primaryKey;autoIncrement:false" json:"month"`
	Year   int    `gorm:"primaryKey;autoIncrement:false" json:"year"`
	Totals `gorm:"embedded"`
}

func (d *DayAggregate) TableName() string {
	return "day_aggregates"
}

// MonthAggregate holds the per-month rollup of a user's ledger
type MonthAggregate struct {
	UserID string `gorm:"type:varchar(255);primaryKey" json:"user_id"`
	Month  int    `gorm:"primaryKey;autoIncrement:false" json:"month"`
	Year   int    `gorm:"primaryKey;autoIncrement:false" json:"year"`
	Totals `gorm:"embedded"`
}

func (m *MonthAggregate) TableName() string {
	return "month_aggregates"
}

// DaysInMonth returns the number of days of a zero-based month
func DaysInMonth(month, year int) int {
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}
