package dto

import "pouparia/internal/models"

// UpdateCurrencyRequest changes the caller's display currency
type UpdateCurrencyRequest struct {
	Currency string `json:"currency" validate:"required,currency_code"`
}

// SettingsResponse is the caller's settings with the resolved currency
type SettingsResponse struct {
	Settings *models.UserSettings `json:"settings"`
	Currency models.Currency      `json:"currency"`
}

// OnboardingCategory is one starter category picked in the wizard
type OnboardingCategory struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
	Icon string `json:"icon" validate:"required,min=1,max=32"`
}

// OnboardingRequest is the data produced by the first-run wizard
type OnboardingRequest struct {
	Currency          string               `json:"currency" validate:"required,currency_code"`
	IncomeCategories  []OnboardingCategory `json:"income_categories" validate:"dive"`
	ExpenseCategories []OnboardingCategory `json:"expense_categories" validate:"dive"`
}

// SuggestionsResponse lists the built-in starter categories
type SuggestionsResponse struct {
	Income  []models.SuggestedCategory `json:"income"`
	Expense []models.SuggestedCategory `json:"expense"`
}
