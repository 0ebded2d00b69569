package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"pouparia/internal/dto"
	"pouparia/internal/models"
	"pouparia/internal/repositories"

	"gorm.io/gorm"
)

type onboardingService struct {
	txRunner     repositories.TxRunner
	categoryRepo repositories.CategoryRepositoryInterface
	settingsRepo repositories.SettingsRepositoryInterface
}

func NewOnboardingService(
	txRunner repositories.TxRunner,
	categoryRepo repositories.CategoryRepositoryInterface,
	settingsRepo repositories.SettingsRepositoryInterface,
) OnboardingServiceInterface {
	return &onboardingService{
		txRunner:     txRunner,
		categoryRepo: categoryRepo,
		settingsRepo: settingsRepo,
	}
}

// Setup stores the wizard's choices: the user's categories are replaced by the
// picked ones and the currency is saved, in one database transaction
func (s *onboardingService) Setup(ctx context.Context, userID string, req *dto.OnboardingRequest) (*models.UserSettings, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	categories := make([]models.Category, 0, len(req.IncomeCategories)+len(req.ExpenseCategories))
	categories = appendOnboardingCategories(categories, req.IncomeCategories, models.TransactionTypeIncome)
	categories = appendOnboardingCategories(categories, req.ExpenseCategories, models.TransactionTypeExpense)

	var settings *models.UserSettings
	err := s.txRunner.RunInTx(ctx, func(tx *gorm.DB) error {
		if err := s.categoryRepo.WithTx(tx).ReplaceAll(ctx, userID, categories); err != nil {
			return err
		}

		saved, err := s.settingsRepo.WithTx(tx).Upsert(ctx, userID, req.Currency)
		if err != nil {
			return err
		}
		settings = saved
		return nil
	})
	if err != nil {
		slog.Error("onboarding rolled back",
			"user_id", userID,
			"error", err)
		return nil, fmt.Errorf("failed to complete onboarding: %w", err)
	}

	slog.Info("onboarding completed",
		"user_id", userID,
		"currency", req.Currency,
		"categories", len(categories))

	return settings, nil
}

func (s *onboardingService) SuggestedCategories() (income, expense []models.SuggestedCategory) {
	income = append([]models.SuggestedCategory(nil), models.SuggestedIncomeCategories...)
	expense = append([]models.SuggestedCategory(nil), models.SuggestedExpenseCategories...)
	return income, expense
}

func appendOnboardingCategories(dst []models.Category, picked []dto.OnboardingCategory, entryType string) []models.Category {
	for _, c := range picked {
		dst = append(dst, models.Category{
			Name: strings.TrimSpace(c.Name),
			Type: entryType,
			Icon: c.Icon,
		})
	}
	return dst
}
