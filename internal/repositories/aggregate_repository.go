package repositories

import (
	"context"
	"fmt"

	"pouparia/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// aggregateRepository implements AggregateRepositoryInterface
type aggregateRepository struct {
	db *gorm.DB
}

// NewAggregateRepository creates a new aggregate repository
func NewAggregateRepository(db *gorm.DB) AggregateRepositoryInterface {
	return &aggregateRepository{db: db}
}

func (r *aggregateRepository) WithTx(tx *gorm.DB) AggregateRepositoryInterface {
	return &aggregateRepository{db: tx}
}

// Apply adds delta to the day and month rollups of its date.
// Each upsert is a single INSERT ... ON CONFLICT DO UPDATE, and only the
// non-zero fields of delta are incremented on conflict. A delta that lowers
// a total also removes the rows it leaves at zero, so a day or month without
// transactions has no rollup row.
func (r *aggregateRepository) Apply(ctx context.Context, userID string, delta models.Delta) error {
	if delta.IsZero() {
		return nil
	}

	day := &models.DayAggregate{
		UserID: userID,
		Day:    delta.Day,
		Month:  delta.Month,
		Year:   delta.Year,
		Totals: models.Totals{Income: delta.Income, Expense: delta.Expense},
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "day"}, {Name: "month"}, {Name: "year"}},
		DoUpdates: incrementAssignments("day_aggregates", delta),
	}).Create(day).Error; err != nil {
		return fmt.Errorf("failed to upsert day aggregate: %w", err)
	}

	month := &models.MonthAggregate{
		UserID: userID,
		Month:  delta.Month,
		Year:   delta.Year,
		Totals: models.Totals{Income: delta.Income, Expense: delta.Expense},
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "month"}, {Name: "year"}},
		DoUpdates: incrementAssignments("month_aggregates", delta),
	}).Create(month).Error; err != nil {
		return fmt.Errorf("failed to upsert month aggregate: %w", err)
	}

	if delta.Income.IsNegative() || delta.Expense.IsNegative() {
		return r.pruneEmpty(ctx, userID, delta)
	}
	return nil
}

func (r *aggregateRepository) pruneEmpty(ctx context.Context, userID string, delta models.Delta) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND day = ? AND month = ? AND year = ? AND income = 0 AND expense = 0",
			userID, delta.Day, delta.Month, delta.Year).
		Delete(&models.DayAggregate{}).Error; err != nil {
		return fmt.Errorf("failed to prune day aggregate: %w", err)
	}
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND month = ? AND year = ? AND income = 0 AND expense = 0",
			userID, delta.Month, delta.Year).
		Delete(&models.MonthAggregate{}).Error; err != nil {
		return fmt.Errorf("failed to prune month aggregate: %w", err)
	}
	return nil
}

// incrementAssignments builds "col = table.col + ?" for the non-zero fields.
// The column is table-qualified so the expression reads the stored row on
// both PostgreSQL and SQLite.
func incrementAssignments(table string, delta models.Delta) clause.Set {
	values := map[string]interface{}{}
	if !delta.Income.IsZero() {
		values["income"] = gorm.Expr(table+".income + ?", delta.Income)
	}
	if !delta.Expense.IsZero() {
		values["expense"] = gorm.Expr(table+".expense + ?", delta.Expense)
	}
	return clause.Assignments(values)
}

// ListDays returns the day rollups of a zero-based month, ordered by day
func (r *aggregateRepository) ListDays(ctx context.Context, userID string, month, year int) ([]models.DayAggregate, error) {
	var rows []models.DayAggregate
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		Order("day ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list day aggregates: %w", err)
	}
	return rows, nil
}

// ListMonths returns the month rollups of a year, ordered by month
func (r *aggregateRepository) ListMonths(ctx context.Context, userID string, year int) ([]models.MonthAggregate, error) {
	var rows []models.MonthAggregate
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND year = ?", userID, year).
		Order("month ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list month aggregates: %w", err)
	}
	return rows, nil
}

// DistinctYears returns the years with day rollups, newest first
func (r *aggregateRepository) DistinctYears(ctx context.Context, userID string) ([]int, error) {
	var years []int
	if err := r.db.WithContext(ctx).
		Model(&models.DayAggregate{}).
		Where("user_id = ?", userID).
		Distinct("year").
		Order("year DESC").
		Pluck("year", &years).Error; err != nil {
		return nil, fmt.Errorf("failed to list history years: %w", err)
	}
	return years, nil
}
