package handlers

import (
	"net/http"

	"pouparia/internal/dto"
	"pouparia/internal/errors"
	"pouparia/internal/models"
	"pouparia/internal/services"

	"github.com/labstack/echo/v4"
)

// SettingsHandler handles user settings, currencies and the onboarding wizard
type SettingsHandler struct {
	settings   services.SettingsServiceInterface
	onboarding services.OnboardingServiceInterface
	cache      *ResponseCache
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(
	settings services.SettingsServiceInterface,
	onboarding services.OnboardingServiceInterface,
	cache *ResponseCache,
) *SettingsHandler {
	return &SettingsHandler{
		settings:   settings,
		onboarding: onboarding,
		cache:      cache,
	}
}

// GetSettings returns the caller's settings, creating defaults on first read
func (h *SettingsHandler) GetSettings(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	settings, err := h.settings.GetSettings(c.Request().Context(), userID)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, settingsResponse(settings))
}

// UpdateCurrency changes the caller's display currency
func (h *SettingsHandler) UpdateCurrency(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.UpdateCurrencyRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}

	settings, err := h.settings.UpdateCurrency(c.Request().Context(), userID, req.Currency)
	if err != nil {
		return sendServiceError(c, err)
	}

	// formatted amounts in cached lists depend on the currency
	h.cache.Invalidate(userID)
	return c.JSON(http.StatusOK, settingsResponse(settings))
}

// ListCurrencies returns the supported display currencies
func (h *SettingsHandler) ListCurrencies(c echo.Context) error {
	return c.JSON(http.StatusOK, SuccessResponse{Data: h.settings.ListCurrencies()})
}

// CompleteOnboarding stores the wizard's categories and currency in one transaction
func (h *SettingsHandler) CompleteOnboarding(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.OnboardingRequest
	if ok, err := bindRequest(c, &req); !ok {
		return err
	}

	settings, err := h.onboarding.Setup(c.Request().Context(), userID, &req)
	if err != nil {
		return sendServiceError(c, err)
	}

	h.cache.Invalidate(userID)
	return c.JSON(http.StatusOK, settingsResponse(settings))
}

// GetSuggestions returns the built-in starter categories
func (h *SettingsHandler) GetSuggestions(c echo.Context) error {
	income, expense := h.onboarding.SuggestedCategories()
	return c.JSON(http.StatusOK, dto.SuggestionsResponse{Income: income, Expense: expense})
}

func settingsResponse(settings *models.UserSettings) dto.SettingsResponse {
	currency, err := models.LookupCurrency(settings.Currency)
	if err != nil {
		currency, _ = models.LookupCurrency(models.DefaultCurrency)
	}
	return dto.SettingsResponse{Settings: settings, Currency: currency}
}
