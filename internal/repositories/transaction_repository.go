package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pouparia/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

func (r *transactionRepository) WithTx(tx *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{db: tx}
}

// Create inserts a ledger row
func (r *transactionRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	if transaction == nil {
		return errors.New("transaction cannot be nil")
	}
	if err := r.db.WithContext(ctx).Create(transaction).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetByID retrieves a transaction owned by userID
func (r *transactionRepository) GetByID(ctx context.Context, userID string, id uuid.UUID) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &transaction, nil
}

// Update saves every column of an existing ledger row
func (r *transactionRepository) Update(ctx context.Context, transaction *models.Transaction) error {
	result := r.db.WithContext(ctx).
		Model(transaction).
		Where("user_id = ?", transaction.UserID).
		Select("amount", "type", "category", "category_icon", "description", "date", "updated_at").
		Updates(transaction)
	if result.Error != nil {
		return fmt.Errorf("failed to update transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// Delete permanently removes a ledger row
func (r *transactionRepository) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Transaction{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// ListByDateRange returns the rows whose date falls in [from, to], newest first
func (r *transactionRepository) ListByDateRange(ctx context.Context, userID string, from, to time.Time) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from.UTC(), to.UTC()).
		Order("date DESC").
		Order("created_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions by date range: %w", err)
	}
	return transactions, nil
}

type typeTotal struct {
	Type  string
	Total decimal.Decimal
}

// SumByType totals amounts per entry type over [from, to]
func (r *transactionRepository) SumByType(ctx context.Context, userID string, from, to time.Time) (models.Balance, error) {
	balance := models.Balance{Income: decimal.Zero, Expense: decimal.Zero}

	var rows []typeTotal
	if err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from.UTC(), to.UTC()).
		Group("type").
		Scan(&rows).Error; err != nil {
		return balance, fmt.Errorf("failed to sum transactions by type: %w", err)
	}

	for _, row := range rows {
		switch row.Type {
		case models.TransactionTypeIncome:
			balance.Income = row.Total.Round(models.AmountScale)
		case models.TransactionTypeExpense:
			balance.Expense = row.Total.Round(models.AmountScale)
		}
	}
	return balance, nil
}

// SumByCategory groups amounts by (type, category, icon), largest total first
func (r *transactionRepository) SumByCategory(ctx context.Context, userID string, from, to time.Time) ([]models.CategoryTotal, error) {
	var totals []models.CategoryTotal
	if err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("type, category, category_icon, COALESCE(SUM(amount), 0) AS total_amount").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from.UTC(), to.UTC()).
		Group("type, category, category_icon").
		Order("total_amount DESC").
		Order("category ASC").
		Scan(&totals).Error; err != nil {
		return nil, fmt.Errorf("failed to sum transactions by category: %w", err)
	}

	for i := range totals {
		totals[i].TotalAmount = totals[i].TotalAmount.Round(models.AmountScale)
	}
	return totals, nil
}
