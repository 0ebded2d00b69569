package handlers

import (
	"net/http"

	"pouparia/internal/dto"
	"pouparia/internal/errors"
	"pouparia/internal/services"

	"github.com/labstack/echo/v4"
)

// CategoryHandler handles the caller's category list
type CategoryHandler struct {
	categories services.CategoryServiceInterface
	cache      *ResponseCache
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categories services.CategoryServiceInterface, cache *ResponseCache) *CategoryHandler {
	return &CategoryHandler{categories: categories, cache: cache}
}

// ListCategories returns the caller's categories, optionally filtered by ?type=income|expense
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	categories, err := h.categories.ListCategories(c.Request().Context(), userID, c.QueryParam("type"))
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ListCategoriesResponse{
		Categories: categories,
		Total:      len(categories),
	})
}

// CreateCategory adds a category; 409 when the name already exists for the type
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateCategoryRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}

	category, err := h.categories.CreateCategory(c.Request().Context(), userID, &req)
	if err != nil {
		return sendServiceError(c, err)
	}

	h.cache.Invalidate(userID)
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory renames, retypes or re-icons the category named by current_name/current_type
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.UpdateCategoryRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}

	category, err := h.categories.UpdateCategory(c.Request().Context(), userID, &req)
	if err != nil {
		return sendServiceError(c, err)
	}

	h.cache.Invalidate(userID)
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory removes the category named by ?name&type
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var query dto.DeleteCategoryQuery
	if ok, err := bindAndValidate(c, &query); !ok {
		return err
	}

	if err := h.categories.DeleteCategory(c.Request().Context(), userID, query.Name, query.Type); err != nil {
		return sendServiceError(c, err)
	}

	h.cache.Invalidate(userID)
	return c.NoContent(http.StatusNoContent)
}
