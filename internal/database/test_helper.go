package database

import (
	"fmt"
	"testing"
	"time"

	"pouparia/internal/config"
	"pouparia/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens a migrated in-memory SQLite database.
// The pool is pinned to one connection so every query sees the same memory database.
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	testDB := &DB{
		DB: db,
		config: &config.DatabaseConfig{
			MaxConnections: 1,
			MaxIdleConns:   1,
		},
	}

	if err := testDB.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		_ = testDB.Close()
	})

	return testDB
}

// CreateTestCategory inserts a category for userID
func CreateTestCategory(t *testing.T, db *DB, userID, name, entryType, icon string) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID: userID,
		Name:   name,
		Type:   entryType,
		Icon:   icon,
	}

	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}

	return category
}

// CreateTestSettings inserts a settings row for userID
func CreateTestSettings(t *testing.T, db *DB, userID, currency string) *models.UserSettings {
	t.Helper()

	settings := &models.UserSettings{
		UserID:   userID,
		Currency: currency,
	}

	if err := db.Create(settings).Error; err != nil {
		t.Fatalf("failed to create test settings: %v", err)
	}

	return settings
}

// SumLedger totals a user's ledger rows of one type inside a zero-based month
func SumLedger(t *testing.T, db *DB, userID, entryType string, month, year int) decimal.Decimal {
	t.Helper()

	start := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

	var rows []models.Transaction
	if err := db.Where("user_id = ? AND type = ? AND date >= ? AND date <= ?", userID, entryType, start, end).
		Find(&rows).Error; err != nil {
		t.Fatalf("failed to sum ledger: %v", err)
	}

	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Amount)
	}
	return total
}

// SumDayAggregates totals the day rollups of one zero-based month
func SumDayAggregates(t *testing.T, db *DB, userID string, month, year int) models.Totals {
	t.Helper()

	var rows []models.DayAggregate
	if err := db.Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		Find(&rows).Error; err != nil {
		t.Fatalf("failed to read day aggregates: %v", err)
	}

	totals := models.Totals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, row := range rows {
		totals = totals.Add(row.Totals)
	}
	return totals
}

// GetMonthAggregate reads a month rollup, returning zeros when absent
func GetMonthAggregate(t *testing.T, db *DB, userID string, month, year int) models.Totals {
	t.Helper()

	var row models.MonthAggregate
	err := db.Where("user_id = ? AND month = ? AND year = ?", userID, month, year).Limit(1).Find(&row).Error
	if err != nil {
		t.Fatalf("failed to read month aggregate: %v", err)
	}
	if row.UserID == "" {
		return models.Totals{Income: decimal.Zero, Expense: decimal.Zero}
	}
	return row.Totals
}

// CountRows counts the rows of a table
func CountRows(t *testing.T, db *DB, table string) int64 {
	t.Helper()

	var count int64
	if err := db.Table(table).Count(&count).Error; err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return count
}

// CleanupTestDB empties every service table
func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	tables := []string{
		"transactions",
		"day_aggregates",
		"month_aggregates",
		"categories",
		"user_settings",
	}

	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Logf("failed to cleanup table %s: %v", table, err)
		}
	}
}
