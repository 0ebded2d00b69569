package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"

	MinDescriptionLength = 2
	AmountScale          = 2
)

var (
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidAmount          = errors.New("transaction amount must be positive")
	ErrAmountPrecision        = errors.New("transaction amount must have at most 2 decimal places")
	ErrDescriptionTooShort    = errors.New("transaction description must be at least 2 characters long")
	ErrMissingOwner           = errors.New("transaction owner is required")
	ErrMissingCategory        = errors.New("transaction category is required")
)

// Transaction is a single ledger row. Direction is carried by Type, Amount is always positive.
type Transaction struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID       string          `gorm:"type:varchar(255);not null;index:idx_transactions_user_date,priority:1" json:"user_id"`
	Amount       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Type         string          `gorm:"type:varchar(10);not null" json:"type"`
	Category     string          `gorm:"type:varchar(100);not null" json:"category"`
	CategoryIcon string          `gorm:"type:varchar(32)" json:"category_icon"`
	Description  string          `gorm:"type:text;not null" json:"description"`
	Date         time.Time       `gorm:"not null;index:idx_transactions_user_date,priority:2" json:"date"`
	CreatedAt    time.Time       `gorm:"not null;index" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	// Set timestamps if not already set (for tests)
	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}
	t.Date = t.Date.UTC()

	return t.Validate()
}

// BeforeUpdate hook for Transaction
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	// map-based updates carry no model state to validate
	if tx != nil && tx.Statement != nil && tx.Statement.Dest != nil {
		if _, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			return nil
		}
	}

	t.UpdatedAt = time.Now().UTC()
	t.Date = t.Date.UTC()
	return t.Validate()
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if t.UserID == "" {
		return ErrMissingOwner
	}

	if !IsValidTransactionType(t.Type) {
		return ErrInvalidTransactionType
	}

	if err := ValidateAmount(t.Amount); err != nil {
		return err
	}

	if len([]rune(strings.TrimSpace(t.Description))) < MinDescriptionLength {
		return ErrDescriptionTooShort
	}

	if t.Category == "" {
		return ErrMissingCategory
	}

	return nil
}

// SignedAmount returns the amount with income positive and expense negative
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// IsIncome returns true for income entries
func (t *Transaction) IsIncome() bool {
	return t.Type == TransactionTypeIncome
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}

// IsValidTransactionType checks if the transaction type is valid
func IsValidTransactionType(transactionType string) bool {
	switch transactionType {
	case TransactionTypeIncome, TransactionTypeExpense:
		return true
	default:
		return false
	}
}

// ValidateAmount checks an amount is positive and quantized to cents
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if !amount.Equal(amount.Truncate(AmountScale)) {
		return ErrAmountPrecision
	}
	return nil
}
