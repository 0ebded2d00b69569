package dto

import "pouparia/internal/models"

// CreateCategoryRequest creates a category for the caller
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
	Type string `json:"type" validate:"required,entry_type"`
	Icon string `json:"icon" validate:"required,min=1,max=32"`
}

// UpdateCategoryRequest renames or retypes a category identified by its current key
type UpdateCategoryRequest struct {
	CurrentName string `json:"current_name" validate:"required"`
	CurrentType string `json:"current_type" validate:"required,entry_type"`
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Type        string `json:"type" validate:"required,entry_type"`
	Icon        string `json:"icon" validate:"required,min=1,max=32"`
}

// DeleteCategoryQuery identifies a category to delete
type DeleteCategoryQuery struct {
	Name string `query:"name" validate:"required"`
	Type string `query:"type" validate:"required,entry_type"`
}

// ListCategoriesResponse represents the response for listing categories
type ListCategoriesResponse struct {
	Categories []models.Category `json:"categories"`
	Total      int               `json:"total"`
}
