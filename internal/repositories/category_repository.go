package repositories

import (
	"context"
	"errors"
	"fmt"

	"pouparia/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category already exists")
)

// categoryRepository implements CategoryRepositoryInterface
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepositoryInterface {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) WithTx(tx *gorm.DB) CategoryRepositoryInterface {
	return &categoryRepository{db: tx}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrCategoryAlreadyExists
		}
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// Get looks a category up by its natural key
func (r *categoryRepository) Get(ctx context.Context, userID, name, entryType string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ? AND type = ?", userID, name, entryType).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

// List returns the user's categories, optionally filtered by type
func (r *categoryRepository) List(ctx context.Context, userID, entryType string) ([]models.Category, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if entryType != "" {
		query = query.Where("type = ?", entryType)
	}

	var categories []models.Category
	if err := query.Order("name DESC").Order("type ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Update rewrites the category keyed by (currentName, currentType).
// Existing transactions keep the name and icon they were recorded with.
func (r *categoryRepository) Update(ctx context.Context, userID, currentName, currentType string, next *models.Category) error {
	result := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("user_id = ? AND name = ? AND type = ?", userID, currentName, currentType).
		Updates(map[string]interface{}{
			"name": next.Name,
			"type": next.Type,
			"icon": next.Icon,
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrCategoryAlreadyExists
		}
		return fmt.Errorf("failed to update category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, userID, name, entryType string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ? AND type = ?", userID, name, entryType).
		Delete(&models.Category{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// ReplaceAll deletes the user's roster and inserts categories in its place.
// Duplicate keys within categories are skipped.
func (r *categoryRepository) ReplaceAll(ctx context.Context, userID string, categories []models.Category) error {
	db := r.db.WithContext(ctx)

	if err := db.Where("user_id = ?", userID).Delete(&models.Category{}).Error; err != nil {
		return fmt.Errorf("failed to clear categories: %w", err)
	}

	if len(categories) == 0 {
		return nil
	}

	for i := range categories {
		categories[i].UserID = userID
	}

	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&categories).Error; err != nil {
		return fmt.Errorf("failed to create categories: %w", err)
	}
	return nil
}
