package repositories

import (
	"context"
	"testing"

	"pouparia/internal/database"
	"pouparia/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// CategoryRepositoryTestSuite is the test suite for the category roster
type CategoryRepositoryTestSuite struct {
	suite.Suite
	db     *database.DB
	repo   CategoryRepositoryInterface
	ctx    context.Context
	userID string
}

func (s *CategoryRepositoryTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewCategoryRepository(s.db.DB)
	s.ctx = context.Background()
	s.userID = "user-categories"
}

func TestCategoryRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryRepositoryTestSuite))
}

func (s *CategoryRepositoryTestSuite) TestCreate_SameNameOncePerType() {
	require.NoError(s.T(), s.repo.Create(s.ctx, &models.Category{UserID: s.userID, Name: "Aluguel", Type: models.TransactionTypeIncome, Icon: "🏠"}))
	require.NoError(s.T(), s.repo.Create(s.ctx, &models.Category{UserID: s.userID, Name: "Aluguel", Type: models.TransactionTypeExpense, Icon: "🏢"}))

	err := s.repo.Create(s.ctx, &models.Category{UserID: s.userID, Name: "Aluguel", Type: models.TransactionTypeExpense, Icon: "🏢"})
	assert.ErrorIs(s.T(), err, ErrCategoryAlreadyExists)
}

func (s *CategoryRepositoryTestSuite) TestGet() {
	database.CreateTestCategory(s.T(), s.db, s.userID, "Mercado", models.TransactionTypeExpense, "🛒")

	category, err := s.repo.Get(s.ctx, s.userID, "Mercado", models.TransactionTypeExpense)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "🛒", category.Icon)

	_, err = s.repo.Get(s.ctx, s.userID, "Mercado", models.TransactionTypeIncome)
	assert.ErrorIs(s.T(), err, ErrCategoryNotFound)

	_, err = s.repo.Get(s.ctx, "other-user", "Mercado", models.TransactionTypeExpense)
	assert.ErrorIs(s.T(), err, ErrCategoryNotFound)
}

func (s *CategoryRepositoryTestSuite) TestList_OrderAndFilter() {
	database.CreateTestCategory(s.T(), s.db, s.userID, "Alimentação", models.TransactionTypeExpense, "🍽️")
	database.CreateTestCategory(s.T(), s.db, s.userID, "Luz", models.TransactionTypeExpense, "💡")
	database.CreateTestCategory(s.T(), s.db, s.userID, "Salário", models.TransactionTypeIncome, "💰")

	all, err := s.repo.List(s.ctx, s.userID, "")
	require.NoError(s.T(), err)
	require.Len(s.T(), all, 3)
	assert.Equal(s.T(), "Salário", all[0].Name)
	assert.Equal(s.T(), "Luz", all[1].Name)
	assert.Equal(s.T(), "Alimentação", all[2].Name)

	expenses, err := s.repo.List(s.ctx, s.userID, models.TransactionTypeExpense)
	require.NoError(s.T(), err)
	assert.Len(s.T(), expenses, 2)
}

func (s *CategoryRepositoryTestSuite) TestUpdate_RekeysCategory() {
	database.CreateTestCategory(s.T(), s.db, s.userID, "Mercado", models.TransactionTypeExpense, "🛒")

	next := &models.Category{Name: "Supermercado", Type: models.TransactionTypeExpense, Icon: "🧺"}
	require.NoError(s.T(), s.repo.Update(s.ctx, s.userID, "Mercado", models.TransactionTypeExpense, next))

	_, err := s.repo.Get(s.ctx, s.userID, "Mercado", models.TransactionTypeExpense)
	assert.ErrorIs(s.T(), err, ErrCategoryNotFound)

	renamed, err := s.repo.Get(s.ctx, s.userID, "Supermercado", models.TransactionTypeExpense)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "🧺", renamed.Icon)
}

func (s *CategoryRepositoryTestSuite) TestUpdate_Missing() {
	next := &models.Category{Name: "X", Type: models.TransactionTypeExpense, Icon: "❓"}
	err := s.repo.Update(s.ctx, s.userID, "Nope", models.TransactionTypeExpense, next)
	assert.ErrorIs(s.T(), err, ErrCategoryNotFound)
}

func (s *CategoryRepositoryTestSuite) TestUpdate_ClashesWithExisting() {
	database.CreateTestCategory(s.T(), s.db, s.userID, "Luz", models.TransactionTypeExpense, "💡")
	database.CreateTestCategory(s.T(), s.db, s.userID, "Água", models.TransactionTypeExpense, "💧")

	next := &models.Category{Name: "Luz", Type: models.TransactionTypeExpense, Icon: "💧"}
	err := s.repo.Update(s.ctx, s.userID, "Água", models.TransactionTypeExpense, next)
	assert.ErrorIs(s.T(), err, ErrCategoryAlreadyExists)
}

func (s *CategoryRepositoryTestSuite) TestDelete() {
	database.CreateTestCategory(s.T(), s.db, s.userID, "Luz", models.TransactionTypeExpense, "💡")

	require.NoError(s.T(), s.repo.Delete(s.ctx, s.userID, "Luz", models.TransactionTypeExpense))
	assert.ErrorIs(s.T(), s.repo.Delete(s.ctx, s.userID, "Luz", models.TransactionTypeExpense), ErrCategoryNotFound)
}

func (s *CategoryRepositoryTestSuite) TestReplaceAll() {
	database.CreateTestCategory(s.T(), s.db, s.userID, "Old", models.TransactionTypeExpense, "🗑️")
	database.CreateTestCategory(s.T(), s.db, "someone-else", "Keep", models.TransactionTypeExpense, "📌")

	err := s.repo.ReplaceAll(s.ctx, s.userID, []models.Category{
		{Name: "Salário", Type: models.TransactionTypeIncome, Icon: "💰"},
		{Name: "Mercado", Type: models.TransactionTypeExpense, Icon: "🛒"},
		{Name: "Mercado", Type: models.TransactionTypeExpense, Icon: "🛒"},
	})
	require.NoError(s.T(), err)

	categories, err := s.repo.List(s.ctx, s.userID, "")
	require.NoError(s.T(), err)
	require.Len(s.T(), categories, 2)
	assert.Equal(s.T(), "Salário", categories[0].Name)
	assert.Equal(s.T(), "Mercado", categories[1].Name)

	others, err := s.repo.List(s.ctx, "someone-else", "")
	require.NoError(s.T(), err)
	assert.Len(s.T(), others, 1)
}

func (s *CategoryRepositoryTestSuite) TestReplaceAll_Empty() {
	database.CreateTestCategory(s.T(), s.db, s.userID, "Old", models.TransactionTypeExpense, "🗑️")

	require.NoError(s.T(), s.repo.ReplaceAll(s.ctx, s.userID, nil))

	categories, err := s.repo.List(s.ctx, s.userID, "")
	require.NoError(s.T(), err)
	assert.Empty(s.T(), categories)
}
