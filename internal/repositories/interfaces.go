package repositories

import (
	"context"
	"time"

	"pouparia/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TxRunner runs a unit of work inside one database transaction.
// Repositories join it through WithTx.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// TransactionRepositoryInterface defines the contract for ledger operations
type TransactionRepositoryInterface interface {
	WithTx(tx *gorm.DB) TransactionRepositoryInterface
	Create(ctx context.Context, transaction *models.Transaction) error
	GetByID(ctx context.Context, userID string, id uuid.UUID) (*models.Transaction, error)
	Update(ctx context.Context, transaction *models.Transaction) error
	Delete(ctx context.Context, userID string, id uuid.UUID) error
	ListByDateRange(ctx context.Context, userID string, from, to time.Time) ([]models.Transaction, error)
	SumByType(ctx context.Context, userID string, from, to time.Time) (models.Balance, error)
	SumByCategory(ctx context.Context, userID string, from, to time.Time) ([]models.CategoryTotal, error)
}

// AggregateRepositoryInterface defines the contract for the day/month rollup tables
type AggregateRepositoryInterface interface {
	WithTx(tx *gorm.DB) AggregateRepositoryInterface
	Apply(ctx context.Context, userID string, delta models.Delta) error
	ListDays(ctx context.Context, userID string, month, year int) ([]models.DayAggregate, error)
	ListMonths(ctx context.Context, userID string, year int) ([]models.MonthAggregate, error)
	DistinctYears(ctx context.Context, userID string) ([]int, error)
}

// CategoryRepositoryInterface defines the contract for the category roster
type CategoryRepositoryInterface interface {
	WithTx(tx *gorm.DB) CategoryRepositoryInterface
	Create(ctx context.Context, category *models.Category) error
	Get(ctx context.Context, userID, name, entryType string) (*models.Category, error)
	List(ctx context.Context, userID, entryType string) ([]models.Category, error)
	Update(ctx context.Context, userID, currentName, currentType string, next *models.Category) error
	Delete(ctx context.Context, userID, name, entryType string) error
	ReplaceAll(ctx context.Context, userID string, categories []models.Category) error
}

// SettingsRepositoryInterface defines the contract for user settings
type SettingsRepositoryInterface interface {
	WithTx(tx *gorm.DB) SettingsRepositoryInterface
	Get(ctx context.Context, userID string) (*models.UserSettings, error)
	GetOrCreate(ctx context.Context, userID, defaultCurrency string) (*models.UserSettings, error)
	Upsert(ctx context.Context, userID, currency string) (*models.UserSettings, error)
}
