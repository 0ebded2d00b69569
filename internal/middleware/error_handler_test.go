package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "pouparia/internal/errors"
	"pouparia/internal/validation"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type ErrorHandlerTestSuite struct {
	suite.Suite
	echo *echo.Echo
}

func TestErrorHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ErrorHandlerTestSuite))
}

func (s *ErrorHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.echo.HTTPErrorHandler = CustomHTTPErrorHandler
}

// handle runs the error handler against a fresh GET context, optionally
// tagged with a trace id, and decodes the envelope it wrote.
func (s *ErrorHandlerTestSuite) handle(err error, traceID string) (*httptest.ResponseRecorder, apperrors.ErrorResponse) {
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(httptest.NewRequest(http.MethodGet, "/transactions", nil), rec)
	if traceID != "" {
		c.Set(TraceIDContextKey, traceID)
	}

	CustomHTTPErrorHandler(err, c)

	var body apperrors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return rec, body
}

func (s *ErrorHandlerTestSuite) TestFrameworkErrorsMapToCodes() {
	cases := map[int]string{
		http.StatusBadRequest:            "VALIDATION_001",
		http.StatusUnauthorized:          "AUTH_001",
		http.StatusNotFound:              "SYSTEM_006",
		http.StatusMethodNotAllowed:      "VALIDATION_001",
		http.StatusRequestEntityTooLarge: "VALIDATION_001",
		http.StatusTooManyRequests:       "SYSTEM_005",
		http.StatusInternalServerError:   "SYSTEM_001",
		http.StatusServiceUnavailable:    "SYSTEM_003",
		http.StatusTeapot:                "SYSTEM_004",
	}

	for status, code := range cases {
		s.Run(fmt.Sprint(status), func() {
			rec, body := s.handle(echo.NewHTTPError(status), "trace-1")

			s.Equal(status, rec.Code)
			s.Equal(code, body.Error.Code)
			s.Equal("trace-1", body.Error.TraceID)
		})
	}
}

func (s *ErrorHandlerTestSuite) TestFrameworkErrorKeepsStringMessage() {
	_, body := s.handle(echo.NewHTTPError(http.StatusNotFound, "no such route"), "trace-1")
	s.Equal("no such route", body.Error.Message)

	_, body = s.handle(echo.NewHTTPError(http.StatusNotFound, map[string]int{"x": 1}), "trace-1")
	s.Equal(apperrors.GetErrorMessage(apperrors.SystemRouteNotFound), body.Error.Message)
}

func (s *ErrorHandlerTestSuite) TestAppErrors() {
	cases := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"transaction not found", apperrors.NotFound(apperrors.TransactionNotFound, ""), "TRANSACTION_001", http.StatusNotFound},
		{"range too wide", apperrors.Range(apperrors.RangeTooWide, ""), "RANGE_002", http.StatusBadRequest},
		{"duplicate category", apperrors.Conflict(apperrors.CategoryAlreadyExists, "", nil), "CATEGORY_002", http.StatusConflict},
		{"unauthenticated", apperrors.Unauthorized(), "AUTH_004", http.StatusUnauthorized},
		{"wrapped", fmt.Errorf("loading: %w", apperrors.NotFound(apperrors.CategoryNotFound, "")), "CATEGORY_001", http.StatusNotFound},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			rec, body := s.handle(tc.err, "")

			s.Equal(tc.status, rec.Code)
			s.Equal(tc.code, body.Error.Code)
		})
	}
}

func (s *ErrorHandlerTestSuite) TestValidationAppErrorListsFields() {
	rec, body := s.handle(apperrors.Validation(map[string]string{
		"amount": "must be positive",
		"date":   "is required",
	}), "")

	s.Equal(http.StatusBadRequest, rec.Code)
	s.ElementsMatch([]string{"amount: must be positive", "date: is required"}, body.Error.Details)
}

func (s *ErrorHandlerTestSuite) TestValidatorErrors() {
	type settings struct {
		Currency string `json:"currency" validate:"required,currency_code"`
	}
	err := validation.GetValidator().Struct(&settings{Currency: "XYZ"})
	s.Require().Error(err)

	rec, body := s.handle(fmt.Errorf("binding: %w", err), "")

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal([]string{"currency: must be a supported currency (BRL, USD, EUR)"}, body.Error.Details)
}

func (s *ErrorHandlerTestSuite) TestDeadlineIsServiceUnavailable() {
	rec, body := s.handle(fmt.Errorf("querying rollups: %w", context.DeadlineExceeded), "")

	s.Equal(http.StatusServiceUnavailable, rec.Code)
	s.Equal("SYSTEM_003", body.Error.Code)
}

func (s *ErrorHandlerTestSuite) TestUnknownErrorDoesNotLeak() {
	rec, body := s.handle(errors.New("pq: password authentication failed"), "")

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Equal("SYSTEM_001", body.Error.Code)
	s.Equal("unknown", body.Error.TraceID)
	s.NotContains(rec.Body.String(), "password")
	s.Contains(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
}

func (s *ErrorHandlerTestSuite) TestCommittedResponseIsLeftAlone() {
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	s.Require().NoError(c.String(http.StatusCreated, "done"))

	CustomHTTPErrorHandler(errors.New("late failure"), c)

	s.Equal(http.StatusCreated, rec.Code)
	s.Equal("done", rec.Body.String())
}
