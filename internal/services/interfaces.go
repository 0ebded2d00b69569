package services

import (
	"context"
	"time"

	"pouparia/internal/dto"
	"pouparia/internal/models"

	"github.com/google/uuid"
)

// TransactionServiceInterface is the write path: every ledger mutation and
// its rollup deltas commit together or not at all
type TransactionServiceInterface interface {
	RecordTransaction(ctx context.Context, userID string, req *dto.TransactionRequest) (*models.Transaction, error)
	EditTransaction(ctx context.Context, userID string, id uuid.UUID, req *dto.TransactionRequest) (*models.Transaction, error)
	RemoveTransaction(ctx context.Context, userID string, id uuid.UUID) error
}

// StatsServiceInterface answers range queries straight from the ledger
type StatsServiceInterface interface {
	BalanceInRange(ctx context.Context, userID string, from, to time.Time) (models.Balance, error)
	CategoryBreakdown(ctx context.Context, userID string, from, to time.Time) ([]models.CategoryTotal, error)
}

// HistoryServiceInterface renders the calendar-bucketed rollups
type HistoryServiceInterface interface {
	MonthlyHistory(ctx context.Context, userID string, month, year int) ([]models.DayHistory, error)
	YearlyHistory(ctx context.Context, userID string, year int) ([]models.MonthHistory, error)
	History(ctx context.Context, userID, timeframe string, month, year int) (*models.History, error)
	HistoryPeriods(ctx context.Context, userID string) ([]int, error)
}

// StatementServiceInterface provides the running-balance statement and the transaction listing
type StatementServiceInterface interface {
	MonthlyStatement(ctx context.Context, userID string) (*models.MonthlyStatement, error)
	ListTransactions(ctx context.Context, userID string, from, to time.Time) ([]models.TransactionView, error)
}

// CategoryServiceInterface manages the caller's category roster
type CategoryServiceInterface interface {
	ListCategories(ctx context.Context, userID, entryType string) ([]models.Category, error)
	CreateCategory(ctx context.Context, userID string, req *dto.CreateCategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, userID string, req *dto.UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, userID, name, entryType string) error
}

type SettingsServiceInterface interface {
	GetSettings(ctx context.Context, userID string) (*models.UserSettings, error)
	UpdateCurrency(ctx context.Context, userID, currency string) (*models.UserSettings, error)
	ListCurrencies() []models.Currency
}

// OnboardingServiceInterface persists the first-run wizard data
type OnboardingServiceInterface interface {
	Setup(ctx context.Context, userID string, req *dto.OnboardingRequest) (*models.UserSettings, error)
	SuggestedCategories() (income, expense []models.SuggestedCategory)
}

type TokenServiceInterface interface {
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
	GenerateDevToken(userID string) (string, time.Time, error)
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}

// DemoDataGeneratorInterface produces plausible ledger entries for development seeding
type DemoDataGeneratorInterface interface {
	GenerateMonth(categories []models.Category, month time.Time) []*dto.TransactionRequest
	GenerateHistory(categories []models.Category, startDate, endDate time.Time) []*dto.TransactionRequest
}
