package services

import (
	"context"
	"fmt"
	"log/slog"

	"pouparia/internal/config"
	apperrors "pouparia/internal/errors"
	"pouparia/internal/models"
	"pouparia/internal/repositories"
)

type settingsService struct {
	settingsRepo    repositories.SettingsRepositoryInterface
	defaultCurrency string
}

func NewSettingsService(
	settingsRepo repositories.SettingsRepositoryInterface,
	reportingConfig *config.ReportingConfig,
) SettingsServiceInterface {
	defaultCurrency := reportingConfig.DefaultCurrency
	if !models.IsSupportedCurrency(defaultCurrency) {
		defaultCurrency = models.DefaultCurrency
	}
	return &settingsService{
		settingsRepo:    settingsRepo,
		defaultCurrency: defaultCurrency,
	}
}

// GetSettings returns the user's settings, creating them with the default currency on first read
func (s *settingsService) GetSettings(ctx context.Context, userID string) (*models.UserSettings, error) {
	settings, err := s.settingsRepo.GetOrCreate(ctx, userID, s.defaultCurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to load user settings: %w", err)
	}
	return settings, nil
}

func (s *settingsService) UpdateCurrency(ctx context.Context, userID, currency string) (*models.UserSettings, error) {
	if !models.IsSupportedCurrency(currency) {
		return nil, apperrors.ValidationField("currency", "must be a supported currency (BRL, USD, EUR)")
	}

	settings, err := s.settingsRepo.Upsert(ctx, userID, currency)
	if err != nil {
		return nil, fmt.Errorf("failed to update currency: %w", err)
	}

	slog.Info("currency updated",
		"user_id", userID,
		"currency", currency)

	return settings, nil
}

func (s *settingsService) ListCurrencies() []models.Currency {
	return models.SupportedCurrencies()
}
