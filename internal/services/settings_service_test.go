package services_test

import (
	"context"
	"errors"
	"testing"

	"pouparia/internal/config"
	apperrors "pouparia/internal/errors"
	"pouparia/internal/models"
	"pouparia/internal/repositories/repository_mocks"
	"pouparia/internal/services"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

type SettingsServiceTestSuite struct {
	suite.Suite
	ctx          context.Context
	ctrl         *gomock.Controller
	settingsRepo *repository_mocks.MockSettingsRepositoryInterface
	service      services.SettingsServiceInterface
}

func TestSettingsServiceSuite(t *testing.T) {
	suite.Run(t, new(SettingsServiceTestSuite))
}

func (s *SettingsServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.settingsRepo = repository_mocks.NewMockSettingsRepositoryInterface(s.ctrl)
	s.service = services.NewSettingsService(s.settingsRepo, &config.ReportingConfig{DefaultCurrency: "USD"})
}

func (s *SettingsServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *SettingsServiceTestSuite) TestGetSettings_UsesConfiguredDefault() {
	s.settingsRepo.EXPECT().GetOrCreate(s.ctx, "user-1", "USD").
		Return(&models.UserSettings{UserID: "user-1", Currency: "USD"}, nil).Times(1)

	settings, err := s.service.GetSettings(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal("USD", settings.Currency)
}

func (s *SettingsServiceTestSuite) TestGetSettings_UnsupportedDefaultFallsBack() {
	service := services.NewSettingsService(s.settingsRepo, &config.ReportingConfig{DefaultCurrency: "JPY"})
	s.settingsRepo.EXPECT().GetOrCreate(s.ctx, "user-1", models.DefaultCurrency).
		Return(&models.UserSettings{UserID: "user-1", Currency: models.DefaultCurrency}, nil).Times(1)

	_, err := service.GetSettings(s.ctx, "user-1")
	s.NoError(err)
}

func (s *SettingsServiceTestSuite) TestGetSettings_StoreError() {
	s.settingsRepo.EXPECT().GetOrCreate(s.ctx, "user-1", "USD").Return(nil, errors.New("db down")).Times(1)

	_, err := s.service.GetSettings(s.ctx, "user-1")
	s.Error(err)
	_, isAppErr := apperrors.AsAppError(err)
	s.False(isAppErr)
}

func (s *SettingsServiceTestSuite) TestUpdateCurrency() {
	s.settingsRepo.EXPECT().Upsert(s.ctx, "user-1", "EUR").
		Return(&models.UserSettings{UserID: "user-1", Currency: "EUR"}, nil).Times(1)

	settings, err := s.service.UpdateCurrency(s.ctx, "user-1", "EUR")
	s.Require().NoError(err)
	s.Equal("EUR", settings.Currency)
}

func (s *SettingsServiceTestSuite) TestUpdateCurrency_RejectsUnsupported() {
	s.settingsRepo.EXPECT().Upsert(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := s.service.UpdateCurrency(s.ctx, "user-1", "GBP")
	appErr, ok := apperrors.AsAppError(err)
	s.Require().True(ok)
	s.Contains(appErr.Fields, "currency")
}

func (s *SettingsServiceTestSuite) TestListCurrencies() {
	currencies := s.service.ListCurrencies()
	s.Require().Len(currencies, 3)
	s.Equal("BRL", currencies[0].Code)

	currencies[0].Code = "XXX"
	s.Equal("BRL", s.service.ListCurrencies()[0].Code)
}
