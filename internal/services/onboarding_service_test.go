package services_test

import (
	"context"
	"testing"

	"pouparia/internal/database"
	"pouparia/internal/dto"
	apperrors "pouparia/internal/errors"
	"pouparia/internal/models"
	"pouparia/internal/repositories"
	"pouparia/internal/services"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type OnboardingServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	db      *database.DB
	catRepo repositories.CategoryRepositoryInterface
	service services.OnboardingServiceInterface
}

func TestOnboardingServiceSuite(t *testing.T) {
	suite.Run(t, new(OnboardingServiceTestSuite))
}

func (s *OnboardingServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = database.SetupTestDB(s.T())
	s.catRepo = repositories.NewCategoryRepository(s.db.DB)
	s.service = services.NewOnboardingService(
		repositories.NewTxRunner(s.db.DB),
		s.catRepo,
		repositories.NewSettingsRepository(s.db.DB),
	)
}

func (s *OnboardingServiceTestSuite) TestSetup_ReplacesCategoriesAndSavesCurrency() {
	database.CreateTestCategory(s.T(), s.db, "user-1", "Old", models.TransactionTypeExpense, "🗑️")

	settings, err := s.service.Setup(s.ctx, "user-1", &dto.OnboardingRequest{
		Currency:          "EUR",
		IncomeCategories:  []dto.OnboardingCategory{{Name: "Salário", Icon: "💰"}},
		ExpenseCategories: []dto.OnboardingCategory{{Name: "Mercado", Icon: "🛒"}, {Name: "Luz", Icon: "💡"}},
	})
	s.Require().NoError(err)
	s.Equal("EUR", settings.Currency)

	categories, err := s.catRepo.List(s.ctx, "user-1", "")
	s.Require().NoError(err)
	s.Len(categories, 3)
	for _, c := range categories {
		s.NotEqual("Old", c.Name)
	}
}

func (s *OnboardingServiceTestSuite) TestSetup_InvalidCurrencyWritesNothing() {
	_, err := s.service.Setup(s.ctx, "user-1", &dto.OnboardingRequest{
		Currency:         "XYZ",
		IncomeCategories: []dto.OnboardingCategory{{Name: "Salário", Icon: "💰"}},
	})
	appErr, ok := apperrors.AsAppError(err)
	s.Require().True(ok)
	s.Contains(appErr.Fields, "currency")
	s.Equal(int64(0), database.CountRows(s.T(), s.db, "categories"))
	s.Equal(int64(0), database.CountRows(s.T(), s.db, "user_settings"))
}

func (s *OnboardingServiceTestSuite) TestSetup_RollsBackOnSettingsFailure() {
	database.CreateTestCategory(s.T(), s.db, "user-1", "Keep", models.TransactionTypeExpense, "📌")

	err := s.db.Callback().Create().Before("gorm:create").Register("test:fail_settings", func(tx *gorm.DB) {
		if tx.Statement.Table == "user_settings" {
			_ = tx.AddError(gorm.ErrInvalidData)
		}
	})
	s.Require().NoError(err)

	_, err = s.service.Setup(s.ctx, "user-1", &dto.OnboardingRequest{
		Currency:         "BRL",
		IncomeCategories: []dto.OnboardingCategory{{Name: "Salário", Icon: "💰"}},
	})
	s.Require().Error(err)

	categories, err := s.catRepo.List(s.ctx, "user-1", "")
	s.Require().NoError(err)
	s.Require().Len(categories, 1)
	s.Equal("Keep", categories[0].Name)
}

func (s *OnboardingServiceTestSuite) TestSuggestedCategories_ReturnsCopies() {
	income, expense := s.service.SuggestedCategories()
	s.NotEmpty(income)
	s.NotEmpty(expense)

	income[0].Name = "changed"
	again, _ := s.service.SuggestedCategories()
	s.Equal(models.SuggestedIncomeCategories[0].Name, again[0].Name)
}
