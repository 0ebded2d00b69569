package handlers

import (
	"pouparia/internal/validation"

	"github.com/labstack/echo/v4"
)

// CustomValidator implements echo.Validator with the shared rule set
type CustomValidator struct {
	validator *validation.Validator
}

// NewValidator creates a new custom validator
func NewValidator() echo.Validator {
	return &CustomValidator{validator: validation.GetValidator()}
}

// Validate implements the echo.Validator interface
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// bindRequest binds the request body into req. Field rules are left to the
// service, which reports every offending field at once.
func bindRequest(c echo.Context, req interface{}) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, SendValidationError(c, map[string]string{"request": "could not be parsed"})
	}
	return true, nil
}

// bindAndValidate binds and validates query DTOs that never reach a service as a struct.
// On failure the error response is already written and the returned bool is false.
func bindAndValidate(c echo.Context, req interface{}) (bool, error) {
	if ok, err := bindRequest(c, req); !ok {
		return false, err
	}

	if err := c.Validate(req); err != nil {
		if fields := validation.FieldErrors(err); fields != nil {
			return false, SendValidationError(c, fields)
		}
		return false, SendValidationError(c, map[string]string{"body": err.Error()})
	}
	return true, nil
}
