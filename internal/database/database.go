package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pouparia/internal/config"
	"pouparia/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DB struct {
	*gorm.DB
	config *config.DatabaseConfig
}

func New(cfg *config.DatabaseConfig) (*DB, error) {
	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxConnections)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{
		DB:     db,
		config: cfg,
	}, nil
}

// Models lists every table owned by the service
func Models() []interface{} {
	return []interface{}{
		&models.Transaction{},
		&models.Category{},
		&models.DayAggregate{},
		&models.MonthAggregate{},
		&models.UserSettings{},
	}
}

func (db *DB) AutoMigrate() error {
	return db.DB.AutoMigrate(Models()...)
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (db *DB) HealthCheck() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateIndexes adds the secondary indexes AutoMigrate does not declare.
// Failures are logged and skipped.
func (db *DB) CreateIndexes(logger *slog.Logger) {
	queries := []string{
		"CREATE INDEX IF NOT EXISTS idx_transactions_user_date ON transactions(user_id, date)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_created_at ON transactions(created_at)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_user_category ON transactions(user_id, type, category)",
		"CREATE INDEX IF NOT EXISTS idx_day_aggregates_user_year ON day_aggregates(user_id, year)",
		"CREATE INDEX IF NOT EXISTS idx_month_aggregates_user_year ON month_aggregates(user_id, year)",
	}

	for _, query := range queries {
		if err := db.DB.Exec(query).Error; err != nil {
			logger.Warn("failed to create index", slog.String("query", query), slog.String("error", err.Error()))
		}
	}
}

// Initialize connects, brings the schema up to date and creates indexes.
// When the SQL migrations cannot run, AutoMigrate builds the schema instead,
// except for a dirty schema which is always fatal.
func Initialize(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*DB, error) {
	db, err := New(&cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := runSQLMigrations(ctx, &cfg.Database, logger); err != nil {
		if errors.Is(err, ErrDirtyDatabase) {
			_ = db.Close()
			return nil, err
		}
		logger.Warn("migration runner failed, falling back to AutoMigrate", slog.String("error", err.Error()))

		if err := db.AutoMigrate(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	db.CreateIndexes(logger)
	logger.Info("database initialized", slog.String("host", cfg.Database.Host), slog.String("name", cfg.Database.Name))

	return db, nil
}

func runSQLMigrations(ctx context.Context, cfg *config.DatabaseConfig, logger *slog.Logger) error {
	conn, err := OpenMigrationConn(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	return Bootstrap(ctx, conn, cfg, logger)
}
