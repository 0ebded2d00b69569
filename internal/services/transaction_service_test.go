package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"pouparia/internal/database"
	"pouparia/internal/dto"
	apperrors "pouparia/internal/errors"
	"pouparia/internal/models"
	"pouparia/internal/repositories"
	"pouparia/internal/services"
	"pouparia/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// TransactionServiceTestSuite runs the write path against an in-memory database
type TransactionServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	ctrl     *gomock.Controller
	db       *database.DB
	metrics  *service_mocks.MockMetricsRecorderInterface
	service  services.TransactionServiceInterface
	history  services.HistoryServiceInterface
	userID   string
	otherID  string
	aggRepo  repositories.AggregateRepositoryInterface
	txRepo   repositories.TransactionRepositoryInterface
	catRepo  repositories.CategoryRepositoryInterface
	txRunner repositories.TxRunner
}

func TestTransactionServiceSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}

func (s *TransactionServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.db = database.SetupTestDB(s.T())

	s.metrics = service_mocks.NewMockMetricsRecorderInterface(s.ctrl)
	s.metrics.EXPECT().IncrementCounter(gomock.Any(), gomock.Any()).AnyTimes()
	s.metrics.EXPECT().RecordProcessingTime(gomock.Any(), gomock.Any()).AnyTimes()

	s.txRunner = repositories.NewTxRunner(s.db.DB)
	s.txRepo = repositories.NewTransactionRepository(s.db.DB)
	s.aggRepo = repositories.NewAggregateRepository(s.db.DB)
	s.catRepo = repositories.NewCategoryRepository(s.db.DB)

	s.service = services.NewTransactionService(s.txRunner, s.txRepo, s.aggRepo, s.catRepo, s.metrics,
		services.NewAuditLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	s.history = services.NewHistoryService(s.aggRepo)

	s.userID = "user-ledger"
	s.otherID = "user-other"
	database.CreateTestCategory(s.T(), s.db, s.userID, "Salário", models.TransactionTypeIncome, "💰")
	database.CreateTestCategory(s.T(), s.db, s.userID, "Mercado", models.TransactionTypeExpense, "🛒")
	database.CreateTestCategory(s.T(), s.db, s.userID, "Luz", models.TransactionTypeExpense, "💡")
}

func (s *TransactionServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func request(entryType, category, amount, date string) *dto.TransactionRequest {
	return &dto.TransactionRequest{
		Amount:      decimal.RequireFromString(amount),
		Type:        entryType,
		Category:    category,
		Description: "entry " + category,
		Date:        date,
	}
}

// assertConsistent checks that the rollups of a zero-based month match the ledger
func (s *TransactionServiceTestSuite) assertConsistent(month, year int) {
	ledgerIncome := database.SumLedger(s.T(), s.db, s.userID, models.TransactionTypeIncome, month, year)
	ledgerExpense := database.SumLedger(s.T(), s.db, s.userID, models.TransactionTypeExpense, month, year)

	days := database.SumDayAggregates(s.T(), s.db, s.userID, month, year)
	s.True(ledgerIncome.Equal(days.Income), "day income %s != ledger %s", days.Income, ledgerIncome)
	s.True(ledgerExpense.Equal(days.Expense), "day expense %s != ledger %s", days.Expense, ledgerExpense)

	monthTotals := database.GetMonthAggregate(s.T(), s.db, s.userID, month, year)
	s.True(ledgerIncome.Equal(monthTotals.Income), "month income %s != ledger %s", monthTotals.Income, ledgerIncome)
	s.True(ledgerExpense.Equal(monthTotals.Expense), "month expense %s != ledger %s", monthTotals.Expense, ledgerExpense)
}

func (s *TransactionServiceTestSuite) TestRecordTransaction_CopiesCategoryIcon() {
	created, err := s.service.RecordTransaction(s.ctx, s.userID, request(models.TransactionTypeExpense, "Mercado", "42.10", "2024-03-07"))
	s.Require().NoError(err)

	s.NotEqual(uuid.Nil, created.ID)
	s.Equal("🛒", created.CategoryIcon)
	s.Equal(7, created.Date.Day())
	s.Equal(int64(1), database.CountRows(s.T(), s.db, "transactions"))
}

func (s *TransactionServiceTestSuite) TestRecordTransaction_AggregatesMatchLedger() {
	entries := []*dto.TransactionRequest{
		request(models.TransactionTypeIncome, "Salário", "1000", "2024-03-05"),
		request(models.TransactionTypeExpense, "Mercado", "30.50", "2024-03-05"),
		request(models.TransactionTypeExpense, "Mercado", "12.25", "2024-03-05T18:30:00Z"),
		request(models.TransactionTypeExpense, "Luz", "99.99", "2024-03-31"),
		request(models.TransactionTypeIncome, "Salário", "1000", "2024-04-05"),
	}
	for _, req := range entries {
		_, err := s.service.RecordTransaction(s.ctx, s.userID, req)
		s.Require().NoError(err)
	}

	s.assertConsistent(2, 2024)
	s.assertConsistent(3, 2024)

	days, err := s.aggRepo.ListDays(s.ctx, s.userID, 2, 2024)
	s.Require().NoError(err)
	s.Require().Len(days, 2)
	s.True(days[0].Income.Equal(decimal.NewFromInt(1000)))
	s.True(days[0].Expense.Equal(decimal.RequireFromString("42.75")))
}

func (s *TransactionServiceTestSuite) TestRecordTransaction_UnknownCategory() {
	_, err := s.service.RecordTransaction(s.ctx, s.userID, request(models.TransactionTypeIncome, "Mercado", "10", "2024-03-05"))

	appErr, ok := apperrors.AsAppError(err)
	s.Require().True(ok)
	s.Equal(apperrors.KindNotFound, appErr.Kind)
	s.Equal(apperrors.CategoryNotFound, appErr.Code)
	s.Equal(int64(0), database.CountRows(s.T(), s.db, "transactions"))
	s.Equal(int64(0), database.CountRows(s.T(), s.db, "day_aggregates"))
}

func (s *TransactionServiceTestSuite) TestRecordTransaction_CategoryOfAnotherUser() {
	database.CreateTestCategory(s.T(), s.db, s.otherID, "Bônus", models.TransactionTypeIncome, "🎯")

	_, err := s.service.RecordTransaction(s.ctx, s.userID, request(models.TransactionTypeIncome, "Bônus", "10", "2024-03-05"))
	s.True(apperrors.IsKind(err, apperrors.KindNotFound))
}

func (s *TransactionServiceTestSuite) TestRecordTransaction_Validation() {
	tests := []struct {
		name  string
		req   *dto.TransactionRequest
		field string
	}{
		{name: "zero amount", req: request(models.TransactionTypeIncome, "Salário", "0", "2024-03-05"), field: "amount"},
		{name: "negative amount", req: request(models.TransactionTypeIncome, "Salário", "-1", "2024-03-05"), field: "amount"},
		{name: "three decimals", req: request(models.TransactionTypeIncome, "Salário", "1.001", "2024-03-05"), field: "amount"},
		{name: "bad type", req: request("transfer", "Salário", "1", "2024-03-05"), field: "type"},
		{name: "bad date", req: request(models.TransactionTypeIncome, "Salário", "1", "05/03/2024"), field: "date"},
		{name: "missing category", req: request(models.TransactionTypeIncome, "", "1", "2024-03-05"), field: "category"},
		{
			name: "short description",
			req: &dto.TransactionRequest{
				Amount: decimal.NewFromInt(1), Type: models.TransactionTypeIncome, Category: "Salário", Description: "a", Date: "2024-03-05",
			},
			field: "description",
		},
		{
			name: "blank description",
			req: &dto.TransactionRequest{
				Amount: decimal.NewFromInt(1), Type: models.TransactionTypeIncome, Category: "Salário", Description: "   ", Date: "2024-03-05",
			},
			field: "description",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.service.RecordTransaction(s.ctx, s.userID, tt.req)

			appErr, ok := apperrors.AsAppError(err)
			s.Require().True(ok, "expected AppError, got %v", err)
			s.Equal(apperrors.KindValidation, appErr.Kind)
			s.Contains(appErr.Fields, tt.field)
		})
	}

	s.Equal(int64(0), database.CountRows(s.T(), s.db, "transactions"))
}

func (s *TransactionServiceTestSuite) TestRecordTransaction_ReportsEveryInvalidField() {
	req := &dto.TransactionRequest{Amount: decimal.Zero, Type: "x", Category: "Salário", Description: "a", Date: "never"}

	_, err := s.service.RecordTransaction(s.ctx, s.userID, req)

	appErr, ok := apperrors.AsAppError(err)
	s.Require().True(ok)
	s.Len(appErr.Fields, 4)
}

// An aggregate write failure must roll back the ledger insert too
func (s *TransactionServiceTestSuite) TestRecordTransaction_AggregateFailureRollsBack() {
	injected := errors.New("injected aggregate failure")
	err := s.db.Callback().Create().Before("gorm:create").Register("test:fail_day_aggregates", func(tx *gorm.DB) {
		if tx.Statement.Table == "day_aggregates" {
			_ = tx.AddError(injected)
		}
	})
	s.Require().NoError(err)

	_, err = s.service.RecordTransaction(s.ctx, s.userID, request(models.TransactionTypeIncome, "Salário", "1000", "2024-03-05"))
	s.Require().Error(err)
	s.ErrorIs(err, injected)

	s.Equal(int64(0), database.CountRows(s.T(), s.db, "transactions"))
	s.Equal(int64(0), database.CountRows(s.T(), s.db, "day_aggregates"))
	s.Equal(int64(0), database.CountRows(s.T(), s.db, "month_aggregates"))
}

func (s *TransactionServiceTestSuite) TestEditTransaction_MovesAmountBetweenBuckets() {
	created, err := s.service.RecordTransaction(s.ctx, s.userID, request(models.TransactionTypeExpense, "Mercado", "50", "2024-03-10"))
	s.Require().NoError(err)
	_, err = s.service.RecordTransaction(s.ctx, s.userID, request(models.TransactionTypeExpense, "Luz", "20", "2024-03-10"))
	s.Require().NoError(err)

	edited, err := s.service.EditTransaction(s.ctx, s.userID, created.ID,
		request(models.TransactionTypeIncome, "Salário", "75.25", "2024-04-02"))
	s.Require().NoError(err)
	s.Equal(models.TransactionTypeIncome, edited.Type)
	s.Equal("💰", edited.CategoryIcon)

	s.assertConsistent(2, 2024)
	s.assertConsistent(3, 2024)

	march := database.GetMonthAggregate(s.T(), s.db, s.userID, 2, 2024)
	s.True(march.Expense.Equal(decimal.NewFromInt(20)))
	s.True(march.Income.IsZero())

	april := database.GetMonthAggregate(s.T(), s.db, s.userID, 3, 2024)
	s.True(april.Income.Equal(decimal.RequireFromString("75.25")))
}

func (s *TransactionServiceTestSuite) TestEditTransaction_NotFound() {
	_, err := s.service.EditTransaction(s.ctx, s.userID, uuid.New(),
		request(models.TransactionTypeIncome, "Salário", "1", "2024-04-02"))

	appErr, ok := apperrors.AsAppError(err)
	s.Require().True(ok)
	s.Equal(apperrors.TransactionNotFound, appErr.Code)
}

func (s *TransactionServiceTestSuite) TestEditTransaction_OtherUsersRow() {
	created, err := s.service.RecordTransaction(s.ctx, s.userID, request(models.TransactionTypeExpense, "Mercado", "50", "2024-03-10"))
	s.Require().NoError(err)

	_, err = s.service.EditTransaction(s.ctx, s.otherID, created.ID,
		request(models.TransactionTypeExpense, "Mercado", "1", "2024-03-10"))
	s.True(apperrors.IsKind(err, apperrors.KindNotFound))
	s.assertConsistent(2, 2024)
}

func (s *TransactionServiceTestSuite) TestRemoveTransaction_RevertsAggregates() {
	keep, err := s.service.RecordTransaction(s.ctx, s.userID, request(models.TransactionTypeIncome, "Salário", "1000", "2024-03-05"))
	s.Require().NoError(err)
	drop, err := s.service.RecordTransaction(s.ctx, s.userID, request(models.TransactionTypeExpense, "Mercado", "80", "2024-03-05"))
	s.Require().NoError(err)

	s.Require().NoError(s.service.RemoveTransaction(s.ctx, s.userID, drop.ID))

	s.assertConsistent(2, 2024)
	_, err = s.txRepo.GetByID(s.ctx, s.userID, keep.ID)
	s.NoError(err)

	err = s.service.RemoveTransaction(s.ctx, s.userID, drop.ID)
	s.True(apperrors.IsKind(err, apperrors.KindNotFound))
}

func (s *TransactionServiceTestSuite) TestRemoveTransaction_OnlyEntryLeavesNoHistory() {
	only, err := s.service.RecordTransaction(s.ctx, s.userID, request(models.TransactionTypeIncome, "Salário", "1000", "2019-03-05"))
	s.Require().NoError(err)

	s.Require().NoError(s.service.RemoveTransaction(s.ctx, s.userID, only.ID))

	days, err := s.history.MonthlyHistory(s.ctx, s.userID, 2, 2019)
	s.Require().NoError(err)
	s.Empty(days)

	months, err := s.history.YearlyHistory(s.ctx, s.userID, 2019)
	s.Require().NoError(err)
	s.Empty(months)

	periods, err := s.history.HistoryPeriods(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Equal([]int{time.Now().UTC().Year()}, periods)
}

func (s *TransactionServiceTestSuite) TestEditTransaction_MovingYearDropsOldPeriod() {
	entry, err := s.service.RecordTransaction(s.ctx, s.userID, request(models.TransactionTypeExpense, "Luz", "120", "2019-07-10"))
	s.Require().NoError(err)

	_, err = s.service.EditTransaction(s.ctx, s.userID, entry.ID, request(models.TransactionTypeExpense, "Luz", "120", "2024-07-10"))
	s.Require().NoError(err)

	periods, err := s.history.HistoryPeriods(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Equal([]int{2024}, periods)
	s.Equal(int64(1), database.CountRows(s.T(), s.db, "day_aggregates"))
	s.Equal(int64(1), database.CountRows(s.T(), s.db, "month_aggregates"))
	s.assertConsistent(6, 2024)
}

// Salary of 1000 on 2024-03-05 shows up in the month and year views
func (s *TransactionServiceTestSuite) TestSalaryScenario() {
	_, err := s.service.RecordTransaction(s.ctx, s.userID, request(models.TransactionTypeIncome, "Salário", "1000", "2024-03-05"))
	s.Require().NoError(err)

	days, err := s.history.MonthlyHistory(s.ctx, s.userID, 2, 2024)
	s.Require().NoError(err)
	s.Require().Len(days, 31)
	for _, d := range days {
		s.Equal(2, d.Month)
		s.Equal(2024, d.Year)
		if d.Day == 5 {
			s.True(d.Income.Equal(decimal.NewFromInt(1000)))
		} else {
			s.True(d.Income.IsZero(), "day %d income %s", d.Day, d.Income)
		}
		s.True(d.Expense.IsZero())
	}

	months, err := s.history.YearlyHistory(s.ctx, s.userID, 2024)
	s.Require().NoError(err)
	s.Require().Len(months, 12)
	for _, m := range months {
		if m.Month == 2 {
			s.True(m.Income.Equal(decimal.NewFromInt(1000)))
		} else {
			s.True(m.Income.IsZero())
		}
	}

	periods, err := s.history.HistoryPeriods(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Equal([]int{2024}, periods)
}
