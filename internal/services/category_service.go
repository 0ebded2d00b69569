package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"pouparia/internal/dto"
	apperrors "pouparia/internal/errors"
	"pouparia/internal/models"
	"pouparia/internal/repositories"
	"pouparia/internal/validation"
)

type categoryService struct {
	categoryRepo repositories.CategoryRepositoryInterface
}

func NewCategoryService(categoryRepo repositories.CategoryRepositoryInterface) CategoryServiceInterface {
	return &categoryService{categoryRepo: categoryRepo}
}

// ListCategories returns the user's categories ordered by name descending.
// An empty entryType lists both types.
func (s *categoryService) ListCategories(ctx context.Context, userID, entryType string) ([]models.Category, error) {
	if entryType != "" && !models.IsValidTransactionType(entryType) {
		return nil, apperrors.ValidationField("type", "must be income or expense")
	}

	categories, err := s.categoryRepo.List(ctx, userID, entryType)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, userID string, req *dto.CreateCategoryRequest) (*models.Category, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	category := &models.Category{
		UserID: userID,
		Name:   strings.TrimSpace(req.Name),
		Type:   req.Type,
		Icon:   req.Icon,
	}
	if err := category.Validate(); err != nil {
		return nil, apperrors.ValidationField("name", err.Error())
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, repositories.ErrCategoryAlreadyExists) {
			return nil, apperrors.Conflict(apperrors.CategoryAlreadyExists, "", err)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	slog.Info("category created",
		"user_id", userID,
		"name", category.Name,
		"type", category.Type)

	return category, nil
}

// UpdateCategory rewrites the category keyed by the request's current name and type.
// Transactions already recorded keep their name and icon.
func (s *categoryService) UpdateCategory(ctx context.Context, userID string, req *dto.UpdateCategoryRequest) (*models.Category, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	next := &models.Category{
		UserID: userID,
		Name:   strings.TrimSpace(req.Name),
		Type:   req.Type,
		Icon:   req.Icon,
	}
	if err := next.Validate(); err != nil {
		return nil, apperrors.ValidationField("name", err.Error())
	}

	if err := s.categoryRepo.Update(ctx, userID, req.CurrentName, req.CurrentType, next); err != nil {
		switch {
		case errors.Is(err, repositories.ErrCategoryNotFound):
			return nil, apperrors.NotFound(apperrors.CategoryNotFound, "category not found")
		case errors.Is(err, repositories.ErrCategoryAlreadyExists):
			return nil, apperrors.Conflict(apperrors.CategoryAlreadyExists, "", err)
		default:
			return nil, fmt.Errorf("failed to update category: %w", err)
		}
	}

	updated, err := s.categoryRepo.Get(ctx, userID, next.Name, next.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to reload category: %w", err)
	}
	return updated, nil
}

// DeleteCategory removes a category. Transactions that used it keep the
// denormalized name and icon, so reports over them are unchanged.
func (s *categoryService) DeleteCategory(ctx context.Context, userID, name, entryType string) error {
	fields := map[string]string{}
	if strings.TrimSpace(name) == "" {
		fields["name"] = "is required"
	}
	if !models.IsValidTransactionType(entryType) {
		fields["type"] = "must be income or expense"
	}
	if len(fields) > 0 {
		return apperrors.Validation(fields)
	}

	if err := s.categoryRepo.Delete(ctx, userID, name, entryType); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return apperrors.NotFound(apperrors.CategoryNotFound, "category not found")
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	slog.Info("category deleted",
		"user_id", userID,
		"name", name,
		"type", entryType)

	return nil
}

// validateStruct runs the shared validator and converts failures to a field map
func validateStruct(req interface{}) error {
	if err := validation.GetValidator().Struct(req); err != nil {
		if fields := validation.FieldErrors(err); fields != nil {
			return apperrors.Validation(fields)
		}
		return apperrors.ValidationField("body", err.Error())
	}
	return nil
}
