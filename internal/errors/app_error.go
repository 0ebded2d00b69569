package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies an application error independently of the transport
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindRange
	KindUnauthorized
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindRange:
		return "range"
	case KindUnauthorized:
		return "unauthorized"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// AppError is the typed failure returned by the service layer.
// Handlers turn it into an ErrorResponse with FromAppError.
type AppError struct {
	Kind    Kind
	Code    ErrorCode
	Message string
	Fields  map[string]string
	Err     error
}

func (e *AppError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = GetErrorMessage(e.Code)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Validation reports malformed or out-of-policy input. fields maps each
// offending field to a human-readable reason.
func Validation(fields map[string]string) *AppError {
	return &AppError{Kind: KindValidation, Code: ValidationGeneral, Fields: fields}
}

// ValidationField is shorthand for a single offending field
func ValidationField(field, reason string) *AppError {
	return Validation(map[string]string{field: reason})
}

func NotFound(code ErrorCode, message string) *AppError {
	return &AppError{Kind: KindNotFound, Code: code, Message: message}
}

func Range(code ErrorCode, message string) *AppError {
	return &AppError{Kind: KindRange, Code: code, Message: message}
}

func Unauthorized() *AppError {
	return &AppError{Kind: KindUnauthorized, Code: AuthUnauthenticated}
}

func Conflict(code ErrorCode, message string, err error) *AppError {
	return &AppError{Kind: KindConflict, Code: code, Message: message, Err: err}
}

// AsAppError unwraps err into an *AppError when it carries one
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err carries an AppError of the given kind
func IsKind(err error, kind Kind) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Kind == kind
}
