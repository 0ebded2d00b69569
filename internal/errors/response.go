package errors

import (
	"fmt"
	"sort"
)

// ErrorResponse is the JSON envelope every failed request is answered with
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
	TraceID string   `json:"trace_id"`
}

// ErrorOption configures an error response
type ErrorOption func(*ErrorResponse)

func WithDetails(details ...string) ErrorOption {
	return func(er *ErrorResponse) {
		er.Error.Details = details
	}
}

// WithMessage overrides the default message of the code
func WithMessage(message string) ErrorOption {
	return func(er *ErrorResponse) {
		er.Error.Message = message
	}
}

func NewErrorResponse(code ErrorCode, traceID string, opts ...ErrorOption) *ErrorResponse {
	response := &ErrorResponse{
		Error: ErrorDetail{
			Code:    string(code),
			Message: GetErrorMessage(code),
			TraceID: traceID,
		},
	}
	for _, opt := range opts {
		opt(response)
	}
	return response
}

// NewValidationError renders field errors as "field: reason" details sorted by field
func NewValidationError(fieldErrors map[string]string, traceID string) *ErrorResponse {
	return NewErrorResponse(ValidationGeneral, traceID, WithDetails(fieldDetails(fieldErrors)...))
}

func fieldDetails(fieldErrors map[string]string) []string {
	fields := make([]string, 0, len(fieldErrors))
	for field := range fieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	details := make([]string, 0, len(fields))
	for _, field := range fields {
		details = append(details, fmt.Sprintf("%s: %s", field, fieldErrors[field]))
	}
	return details
}

// WrapSystemError hides err behind a generic 500 response. err is handed
// back untouched so the caller can log it.
func WrapSystemError(err error, traceID string) (*ErrorResponse, error) {
	return NewErrorResponse(SystemInternalError, traceID), err
}

// FromAppError builds the response for a typed application error.
// Validation errors keep their per-field detail.
func FromAppError(appErr *AppError, traceID string) *ErrorResponse {
	if appErr.Kind == KindValidation && len(appErr.Fields) > 0 {
		return NewErrorResponse(appErr.Code, traceID, WithDetails(fieldDetails(appErr.Fields)...))
	}

	var opts []ErrorOption
	if appErr.Message != "" {
		opts = append(opts, WithMessage(appErr.Message))
	}
	return NewErrorResponse(appErr.Code, traceID, opts...)
}

func (er *ErrorResponse) GetHTTPStatus() int {
	return GetHTTPStatus(ErrorCode(er.Error.Code))
}

func (er *ErrorResponse) String() string {
	return fmt.Sprintf("[%s] %s (trace: %s)", er.Error.Code, er.Error.Message, er.Error.TraceID)
}
