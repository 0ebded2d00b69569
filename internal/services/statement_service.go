package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"pouparia/internal/config"
	apperrors "pouparia/internal/errors"
	"pouparia/internal/models"
	"pouparia/internal/repositories"

	"github.com/shopspring/decimal"
)

type statementService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	settingsRepo    repositories.SettingsRepositoryInterface
	maxRange        time.Duration
	now             func() time.Time
}

func NewStatementService(
	transactionRepo repositories.TransactionRepositoryInterface,
	settingsRepo repositories.SettingsRepositoryInterface,
	reportingConfig *config.ReportingConfig,
) StatementServiceInterface {
	return &statementService{
		transactionRepo: transactionRepo,
		settingsRepo:    settingsRepo,
		maxRange:        reportingConfig.MaxRange(),
		now:             time.Now,
	}
}

// MonthlyStatement groups the current UTC month's transactions by day.
// Only days with transactions appear, in ascending order, each carrying the
// signed total of the day and the signed total of the month up to and
// including that day.
func (s *statementService) MonthlyStatement(ctx context.Context, userID string) (*models.MonthlyStatement, error) {
	now := s.now().UTC()
	start, end := models.MonthBounds(now)

	transactions, err := s.transactionRepo.ListByDateRange(ctx, userID, start, end)
	if err != nil {
		slog.Error("failed to fetch transactions for statement",
			"user_id", userID,
			"error", err)
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	statement := buildStatement(transactions)
	statement.Month = int(now.Month()) - 1
	statement.Year = now.Year()

	slog.Info("statement generated",
		"user_id", userID,
		"month", statement.Month,
		"year", statement.Year,
		"transaction_count", len(transactions))

	return statement, nil
}

// ListTransactions returns the window's transactions, newest first, with
// amounts rendered in the user's currency. The window covers whole days.
func (s *statementService) ListTransactions(ctx context.Context, userID string, from, to time.Time) ([]models.TransactionView, error) {
	start, end, err := validateDayRange(from, to, s.maxRange)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrSettingsNotFound) {
			return nil, apperrors.NotFound(apperrors.SettingsNotFound, "user settings not found")
		}
		return nil, fmt.Errorf("failed to load user settings: %w", err)
	}

	currency, err := models.LookupCurrency(settings.Currency)
	if err != nil {
		slog.Warn("stored currency is not supported, falling back to default",
			"user_id", userID,
			"currency", settings.Currency)
		currency, _ = models.LookupCurrency(models.DefaultCurrency)
	}

	transactions, err := s.transactionRepo.ListByDateRange(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	views := make([]models.TransactionView, 0, len(transactions))
	for _, t := range transactions {
		views = append(views, models.TransactionView{
			Transaction:     t,
			FormattedAmount: currency.Format(t.Amount),
		})
	}
	return views, nil
}

func buildStatement(transactions []models.Transaction) *models.MonthlyStatement {
	sorted := make([]models.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		return sorted[i].Date.Before(sorted[j].Date)
	})

	statement := &models.MonthlyStatement{
		MonthTotal: decimal.Zero,
		Days:       []models.StatementDay{},
	}

	running := decimal.Zero
	for _, t := range sorted {
		key := t.Date.UTC().Format(models.StatementDateLayout)

		last := len(statement.Days) - 1
		if last < 0 || statement.Days[last].Date != key {
			statement.Days = append(statement.Days, models.StatementDay{
				Date:         key,
				Transactions: []models.Transaction{},
				DayTotal:     decimal.Zero,
			})
			last++
		}

		day := &statement.Days[last]
		signed := t.SignedAmount()
		day.Transactions = append(day.Transactions, t)
		day.DayTotal = day.DayTotal.Add(signed)
		running = running.Add(signed)
		day.AccumulatedBalance = running
	}

	statement.MonthTotal = running
	return statement
}
