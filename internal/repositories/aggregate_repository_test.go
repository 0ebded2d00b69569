package repositories

import (
	"context"
	"testing"

	"pouparia/internal/database"
	"pouparia/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// AggregateRepositoryTestSuite is the test suite for the rollup tables
type AggregateRepositoryTestSuite struct {
	suite.Suite
	db     *database.DB
	repo   AggregateRepositoryInterface
	ctx    context.Context
	userID string
}

func (s *AggregateRepositoryTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewAggregateRepository(s.db.DB)
	s.ctx = context.Background()
	s.userID = "user-aggregates"
}

func TestAggregateRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(AggregateRepositoryTestSuite))
}

func (s *AggregateRepositoryTestSuite) income(day, month, year int, amount string) models.Delta {
	return models.Delta{Day: day, Month: month, Year: year, Income: decimal.RequireFromString(amount), Expense: decimal.Zero}
}

func (s *AggregateRepositoryTestSuite) expense(day, month, year int, amount string) models.Delta {
	return models.Delta{Day: day, Month: month, Year: year, Income: decimal.Zero, Expense: decimal.RequireFromString(amount)}
}

func (s *AggregateRepositoryTestSuite) TestApply_InsertsDayAndMonthRows() {
	require.NoError(s.T(), s.repo.Apply(s.ctx, s.userID, s.income(5, 2, 2024, "1000")))

	days, err := s.repo.ListDays(s.ctx, s.userID, 2, 2024)
	require.NoError(s.T(), err)
	require.Len(s.T(), days, 1)
	assert.Equal(s.T(), 5, days[0].Day)
	assert.True(s.T(), days[0].Income.Equal(decimal.NewFromInt(1000)))
	assert.True(s.T(), days[0].Expense.IsZero())

	months, err := s.repo.ListMonths(s.ctx, s.userID, 2024)
	require.NoError(s.T(), err)
	require.Len(s.T(), months, 1)
	assert.Equal(s.T(), 2, months[0].Month)
	assert.True(s.T(), months[0].Income.Equal(decimal.NewFromInt(1000)))
}

func (s *AggregateRepositoryTestSuite) TestApply_IncrementsOnlyMatchingField() {
	require.NoError(s.T(), s.repo.Apply(s.ctx, s.userID, s.income(10, 0, 2024, "100.50")))
	require.NoError(s.T(), s.repo.Apply(s.ctx, s.userID, s.expense(10, 0, 2024, "30.25")))
	require.NoError(s.T(), s.repo.Apply(s.ctx, s.userID, s.income(10, 0, 2024, "9.50")))

	days, err := s.repo.ListDays(s.ctx, s.userID, 0, 2024)
	require.NoError(s.T(), err)
	require.Len(s.T(), days, 1)
	assertAmount(s.T(), "110", days[0].Income)
	assertAmount(s.T(), "30.25", days[0].Expense)

	month := database.GetMonthAggregate(s.T(), s.db, s.userID, 0, 2024)
	assertAmount(s.T(), "110", month.Income)
	assertAmount(s.T(), "30.25", month.Expense)
}

func (s *AggregateRepositoryTestSuite) TestApply_NegativeDeltaReverts() {
	require.NoError(s.T(), s.repo.Apply(s.ctx, s.userID, s.expense(3, 6, 2023, "45")))
	require.NoError(s.T(), s.repo.Apply(s.ctx, s.userID, s.expense(3, 6, 2023, "-45")))

	totals := database.SumDayAggregates(s.T(), s.db, s.userID, 6, 2023)
	assert.True(s.T(), totals.Expense.IsZero())
	assert.True(s.T(), totals.Income.IsZero())
}

func (s *AggregateRepositoryTestSuite) TestApply_EmptiedRowsAreRemoved() {
	require.NoError(s.T(), s.repo.Apply(s.ctx, s.userID, s.income(5, 2, 2019, "1000")))
	require.NoError(s.T(), s.repo.Apply(s.ctx, s.userID, s.income(5, 2, 2019, "-1000")))

	assert.Equal(s.T(), int64(0), database.CountRows(s.T(), s.db, "day_aggregates"))
	assert.Equal(s.T(), int64(0), database.CountRows(s.T(), s.db, "month_aggregates"))

	years, err := s.repo.DistinctYears(s.ctx, s.userID)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), years)
}

func (s *AggregateRepositoryTestSuite) TestApply_PartialReversalKeepsRows() {
	require.NoError(s.T(), s.repo.Apply(s.ctx, s.userID, s.income(5, 2, 2019, "1000")))
	require.NoError(s.T(), s.repo.Apply(s.ctx, s.userID, s.expense(5, 2, 2019, "200")))
	require.NoError(s.T(), s.repo.Apply(s.ctx, s.userID, s.income(9, 2, 2019, "50")))
	require.NoError(s.T(), s.repo.Apply(s.ctx, s.userID, s.income(9, 2, 2019, "-50")))
	require.NoError(s.T(), s.repo.Apply(s.ctx, s.userID, s.income(5, 2, 2019, "-1000")))

	days, err := s.repo.ListDays(s.ctx, s.userID, 2, 2019)
	require.NoError(s.T(), err)
	require.Len(s.T(), days, 1)
	assert.Equal(s.T(), 5, days[0].Day)
	assertAmount(s.T(), "200", days[0].Expense)

	month := database.GetMonthAggregate(s.T(), s.db, s.userID, 2, 2019)
	assertAmount(s.T(), "200", month.Expense)
	assert.True(s.T(), month.Income.IsZero())
}

func (s *AggregateRepositoryTestSuite) TestApply_ZeroDeltaIsNoop() {
	zero := models.Delta{Day: 1, Month: 0, Year: 2024, Income: decimal.Zero, Expense: decimal.Zero}
	require.NoError(s.T(), s.repo.Apply(s.ctx, s.userID, zero))

	assert.Equal(s.T(), int64(0), database.CountRows(s.T(), s.db, "day_aggregates"))
	assert.Equal(s.T(), int64(0), database.CountRows(s.T(), s.db, "month_aggregates"))
}

func (s *AggregateRepositoryTestSuite) TestApply_ScopedByUser() {
	require.NoError(s.T(), s.repo.Apply(s.ctx, s.userID, s.income(1, 1, 2024, "10")))
	require.NoError(s.T(), s.repo.Apply(s.ctx, "someone-else", s.income(1, 1, 2024, "99")))

	days, err := s.repo.ListDays(s.ctx, s.userID, 1, 2024)
	require.NoError(s.T(), err)
	require.Len(s.T(), days, 1)
	assertAmount(s.T(), "10", days[0].Income)
}

func (s *AggregateRepositoryTestSuite) TestListDays_OrderedByDay() {
	for _, day := range []int{20, 3, 11} {
		require.NoError(s.T(), s.repo.Apply(s.ctx, s.userID, s.income(day, 4, 2024, "1")))
	}

	days, err := s.repo.ListDays(s.ctx, s.userID, 4, 2024)
	require.NoError(s.T(), err)
	require.Len(s.T(), days, 3)
	assert.Equal(s.T(), []int{3, 11, 20}, []int{days[0].Day, days[1].Day, days[2].Day})
}

func (s *AggregateRepositoryTestSuite) TestDistinctYears_Descending() {
	require.NoError(s.T(), s.repo.Apply(s.ctx, s.userID, s.income(1, 0, 2022, "1")))
	require.NoError(s.T(), s.repo.Apply(s.ctx, s.userID, s.income(2, 0, 2024, "1")))
	require.NoError(s.T(), s.repo.Apply(s.ctx, s.userID, s.income(3, 5, 2024, "1")))

	years, err := s.repo.DistinctYears(s.ctx, s.userID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []int{2024, 2022}, years)
}

func (s *AggregateRepositoryTestSuite) TestDistinctYears_Empty() {
	years, err := s.repo.DistinctYears(s.ctx, s.userID)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), years)
}

func (s *AggregateRepositoryTestSuite) TestWithTx_RollbackDiscardsUpserts() {
	runner := NewTxRunner(s.db.DB)
	err := runner.RunInTx(s.ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Apply(s.ctx, s.userID, s.income(1, 0, 2024, "5")); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(s.T(), err, assert.AnError)

	assert.Equal(s.T(), int64(0), database.CountRows(s.T(), s.db, "day_aggregates"))
}

func assertAmount(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(expected).Equal(actual), "expected %s, got %s", expected, actual)
}
