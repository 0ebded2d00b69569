package errors

import "net/http"

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthMissingToken       ErrorCode = "AUTH_001"
	AuthExpiredToken       ErrorCode = "AUTH_002"
	AuthInvalidTokenFormat ErrorCode = "AUTH_003"
	AuthUnauthenticated    ErrorCode = "AUTH_004"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
	ValidationInvalidDate   ErrorCode = "VALIDATION_005"
)

// Date range error codes (RANGE_*)
const (
	RangeInvalidWindow ErrorCode = "RANGE_001"
	RangeTooWide       ErrorCode = "RANGE_002"
)

// Category error codes (CATEGORY_*)
const (
	CategoryNotFound      ErrorCode = "CATEGORY_001"
	CategoryAlreadyExists ErrorCode = "CATEGORY_002"
)

// Transaction error codes (TRANSACTION_*)
const (
	TransactionNotFound      ErrorCode = "TRANSACTION_001"
	TransactionInvalidAmount ErrorCode = "TRANSACTION_002"
	TransactionInvalidType   ErrorCode = "TRANSACTION_003"
)

// User settings error codes (SETTINGS_*)
const (
	SettingsNotFound        ErrorCode = "SETTINGS_001"
	SettingsInvalidCurrency ErrorCode = "SETTINGS_002"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemUnexpectedError    ErrorCode = "SYSTEM_004"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_005"
	SystemRouteNotFound      ErrorCode = "SYSTEM_006"
)

type codeInfo struct {
	message string
	status  int
}

// registry holds the default message and HTTP status of every code
var registry = map[ErrorCode]codeInfo{
	AuthMissingToken:       {"Authorization token is required", http.StatusUnauthorized},
	AuthExpiredToken:       {"Authorization token has expired", http.StatusUnauthorized},
	AuthInvalidTokenFormat: {"Invalid authorization token", http.StatusUnauthorized},
	AuthUnauthenticated:    {"No authenticated user for this request", http.StatusUnauthorized},

	ValidationGeneral:       {"Validation failed", http.StatusBadRequest},
	ValidationRequiredField: {"Required field is missing", http.StatusBadRequest},
	ValidationInvalidFormat: {"Invalid field format", http.StatusBadRequest},
	ValidationOutOfRange:    {"Field value is out of allowed range", http.StatusBadRequest},
	ValidationInvalidDate:   {"Invalid date format", http.StatusBadRequest},

	RangeInvalidWindow: {"The start of the date range must be before its end", http.StatusBadRequest},
	RangeTooWide:       {"The date range exceeds the maximum allowed window", http.StatusBadRequest},

	CategoryNotFound:      {"Category not found", http.StatusNotFound},
	CategoryAlreadyExists: {"A category with this name and type already exists", http.StatusConflict},

	TransactionNotFound:      {"Transaction not found", http.StatusNotFound},
	TransactionInvalidAmount: {"Invalid transaction amount", http.StatusBadRequest},
	TransactionInvalidType:   {"Invalid transaction type", http.StatusBadRequest},

	SettingsNotFound:        {"User settings not found", http.StatusNotFound},
	SettingsInvalidCurrency: {"Unsupported currency", http.StatusBadRequest},

	SystemInternalError:      {"An unexpected error occurred. Please contact support with trace ID", http.StatusInternalServerError},
	SystemDatabaseError:      {"Database connection error", http.StatusInternalServerError},
	SystemServiceUnavailable: {"Service temporarily unavailable", http.StatusServiceUnavailable},
	SystemUnexpectedError:    {"An unexpected error occurred", http.StatusInternalServerError},
	SystemRateLimitExceeded:  {"Rate limit exceeded. Please try again later", http.StatusTooManyRequests},
	SystemRouteNotFound:      {"Resource not found", http.StatusNotFound},
}

// GetErrorMessage returns the default message for a code, or a generic one for unknown codes
func GetErrorMessage(code ErrorCode) string {
	if info, ok := registry[code]; ok {
		return info.message
	}
	return "An error occurred"
}

// GetHTTPStatus returns the status a code is served with. Unknown codes are 500.
func GetHTTPStatus(code ErrorCode) int {
	if info, ok := registry[code]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

func IsValidErrorCode(code ErrorCode) bool {
	_, ok := registry[code]
	return ok
}
