package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pouparia/internal/dto"
	apperrors "pouparia/internal/errors"
	"pouparia/internal/models"
	"pouparia/internal/repositories"
	"pouparia/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type CategoryHandlerTestSuite struct {
	suite.Suite
	echo           *echo.Echo
	ctrl           *gomock.Controller
	mockCategories *service_mocks.MockCategoryServiceInterface
	handler        *CategoryHandler
}

func TestCategoryHandlerSuite(t *testing.T) {
	suite.Run(t, new(CategoryHandlerTestSuite))
}

func (s *CategoryHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.echo.Validator = NewValidator()
	s.ctrl = gomock.NewController(s.T())
	s.mockCategories = service_mocks.NewMockCategoryServiceInterface(s.ctrl)
	s.handler = NewCategoryHandler(s.mockCategories, NewResponseCache(8, time.Minute, nil))
}

func (s *CategoryHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *CategoryHandlerTestSuite) request(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set(UserIDContextKey, "user-1")
	return c, rec
}

func (s *CategoryHandlerTestSuite) TestListCategories() {
	s.mockCategories.EXPECT().ListCategories(gomock.Any(), "user-1", models.TransactionTypeExpense).
		Return([]models.Category{{UserID: "user-1", Name: "Luz", Type: "expense", Icon: "💡"}}, nil).Times(1)

	c, rec := s.request(http.MethodGet, "/api/v1/categories?type=expense", "")
	s.Require().NoError(s.handler.ListCategories(c))

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"total":1`)
}

func (s *CategoryHandlerTestSuite) TestCreateCategory_Conflict() {
	s.mockCategories.EXPECT().CreateCategory(gomock.Any(), "user-1", &dto.CreateCategoryRequest{
		Name: "Luz", Type: "expense", Icon: "💡",
	}).Return(nil, apperrors.Conflict(apperrors.CategoryAlreadyExists, "", repositories.ErrCategoryAlreadyExists)).Times(1)

	c, rec := s.request(http.MethodPost, "/api/v1/categories", `{"name":"Luz","type":"expense","icon":"💡"}`)
	s.Require().NoError(s.handler.CreateCategory(c))

	s.Equal(http.StatusConflict, rec.Code)
	s.Contains(rec.Body.String(), string(apperrors.CategoryAlreadyExists))
}

func (s *CategoryHandlerTestSuite) TestCreateCategory_Created() {
	created := &models.Category{UserID: "user-1", Name: "Pet", Type: "expense", Icon: "🐾"}
	s.mockCategories.EXPECT().CreateCategory(gomock.Any(), "user-1", gomock.Any()).Return(created, nil).Times(1)

	c, rec := s.request(http.MethodPost, "/api/v1/categories", `{"name":"Pet","type":"expense","icon":"🐾"}`)
	s.Require().NoError(s.handler.CreateCategory(c))

	s.Equal(http.StatusCreated, rec.Code)
}

func (s *CategoryHandlerTestSuite) TestUpdateCategory_NotFound() {
	s.mockCategories.EXPECT().UpdateCategory(gomock.Any(), "user-1", gomock.Any()).
		Return(nil, apperrors.NotFound(apperrors.CategoryNotFound, "")).Times(1)

	c, rec := s.request(http.MethodPut, "/api/v1/categories",
		`{"current_name":"X","current_type":"expense","name":"Y","type":"expense","icon":"y"}`)
	s.Require().NoError(s.handler.UpdateCategory(c))

	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *CategoryHandlerTestSuite) TestDeleteCategory() {
	s.mockCategories.EXPECT().DeleteCategory(gomock.Any(), "user-1", "Pet", "expense").Return(nil).Times(1)

	c, rec := s.request(http.MethodDelete, "/api/v1/categories?name=Pet&type=expense", "")
	s.Require().NoError(s.handler.DeleteCategory(c))

	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *CategoryHandlerTestSuite) TestDeleteCategory_QueryValidated() {
	s.mockCategories.EXPECT().DeleteCategory(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	c, rec := s.request(http.MethodDelete, "/api/v1/categories?name=Pet&type=transfer", "")
	s.Require().NoError(s.handler.DeleteCategory(c))

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "type: must be income or expense")
}
