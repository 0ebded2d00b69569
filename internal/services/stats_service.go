package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"pouparia/internal/config"
	"pouparia/internal/models"
	"pouparia/internal/repositories"
)

type statsService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	maxRange        time.Duration
}

func NewStatsService(
	transactionRepo repositories.TransactionRepositoryInterface,
	reportingConfig *config.ReportingConfig,
) StatsServiceInterface {
	return &statsService{
		transactionRepo: transactionRepo,
		maxRange:        reportingConfig.MaxRange(),
	}
}

// BalanceInRange totals income and expense over [from, to]. Missing types are zero.
func (s *statsService) BalanceInRange(ctx context.Context, userID string, from, to time.Time) (models.Balance, error) {
	if err := validateRange(from, to, s.maxRange); err != nil {
		return models.Balance{}, err
	}

	balance, err := s.transactionRepo.SumByType(ctx, userID, from, to)
	if err != nil {
		slog.Error("failed to compute balance",
			"user_id", userID,
			"error", err)
		return models.Balance{}, fmt.Errorf("failed to compute balance: %w", err)
	}
	return balance, nil
}

// CategoryBreakdown groups the window's ledger by (type, category, icon), largest total first
func (s *statsService) CategoryBreakdown(ctx context.Context, userID string, from, to time.Time) ([]models.CategoryTotal, error) {
	if err := validateRange(from, to, s.maxRange); err != nil {
		return nil, err
	}

	totals, err := s.transactionRepo.SumByCategory(ctx, userID, from, to)
	if err != nil {
		slog.Error("failed to compute category breakdown",
			"user_id", userID,
			"error", err)
		return nil, fmt.Errorf("failed to compute category breakdown: %w", err)
	}
	if totals == nil {
		totals = []models.CategoryTotal{}
	}
	return totals, nil
}
