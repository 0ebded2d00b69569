package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pouparia/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrSettingsNotFound = errors.New("user settings not found")
)

// settingsRepository implements SettingsRepositoryInterface
type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) SettingsRepositoryInterface {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) WithTx(tx *gorm.DB) SettingsRepositoryInterface {
	return &settingsRepository{db: tx}
}

func (r *settingsRepository) Get(ctx context.Context, userID string) (*models.UserSettings, error) {
	var settings models.UserSettings
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("failed to get user settings: %w", err)
	}
	return &settings, nil
}

// GetOrCreate returns the user's settings, inserting defaults on first read.
// A concurrent first read that loses the insert race reads the winner's row.
func (r *settingsRepository) GetOrCreate(ctx context.Context, userID, defaultCurrency string) (*models.UserSettings, error) {
	settings, err := r.Get(ctx, userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, ErrSettingsNotFound) {
		return nil, err
	}

	created := &models.UserSettings{UserID: userID, Currency: defaultCurrency}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(created).Error; err != nil {
		return nil, fmt.Errorf("failed to create user settings: %w", err)
	}

	return r.Get(ctx, userID)
}

// Upsert sets the user's currency, creating the row when missing
func (r *settingsRepository) Upsert(ctx context.Context, userID, currency string) (*models.UserSettings, error) {
	settings := &models.UserSettings{UserID: userID, Currency: currency, UpdatedAt: time.Now().UTC()}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"currency", "updated_at"}),
	}).Create(settings).Error; err != nil {
		return nil, fmt.Errorf("failed to save user settings: %w", err)
	}

	return r.Get(ctx, userID)
}
