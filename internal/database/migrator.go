package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"pouparia/internal/config"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

const (
	migrationsPath = "db/migrations"
	seedsPath      = "db/seeds"

	defaultReadyAttempts = 30
	defaultReadyInterval = 2 * time.Second
)

// ErrDirtyDatabase means a previous migration stopped half way. The schema
// has to be repaired by hand before the service can start.
var ErrDirtyDatabase = errors.New("database schema is dirty")

// MigrationStatus describes the schema version after a run
type MigrationStatus struct {
	Version uint
	Dirty   bool
	Applied bool
}

// MigrationRunner applies the SQL migrations and, in development, the seed files
type MigrationRunner struct {
	db             *sql.DB
	logger         *slog.Logger
	migrationsPath string
	seedsPath      string
	seed           bool
	readyAttempts  int
	readyInterval  time.Duration
}

// NewMigrationRunner creates a runner using the configured paths and seed switch
func NewMigrationRunner(db *sql.DB, cfg *config.DatabaseConfig, logger *slog.Logger) *MigrationRunner {
	if logger == nil {
		logger = slog.Default()
	}
	runner := &MigrationRunner{
		db:             db,
		logger:         logger.With(slog.String("component", "migrator")),
		migrationsPath: migrationsPath,
		seedsPath:      seedsPath,
		readyAttempts:  defaultReadyAttempts,
		readyInterval:  defaultReadyInterval,
	}
	if cfg == nil {
		return runner
	}
	if cfg.MigrationsPath != "" {
		runner.migrationsPath = cfg.MigrationsPath
	}
	if cfg.SeedsPath != "" {
		runner.seedsPath = cfg.SeedsPath
	}
	runner.seed = cfg.Seed
	return runner
}

// OpenMigrationConn opens a dedicated lib/pq connection for golang-migrate
func OpenMigrationConn(cfg *config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("failed to open migration connection: %w", err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// WaitForDatabase pings until the database answers, the attempts run out or ctx ends
func (mr *MigrationRunner) WaitForDatabase(ctx context.Context) error {
	var lastErr error
	for attempt := 1; attempt <= mr.readyAttempts; attempt++ {
		if lastErr = mr.db.PingContext(ctx); lastErr == nil {
			return nil
		}
		mr.logger.Info("database not ready",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", mr.readyAttempts),
			slog.String("error", lastErr.Error()))

		if attempt == mr.readyAttempts {
			break
		}
		timer := time.NewTimer(mr.readyInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return fmt.Errorf("database not ready after %d attempts: %w", mr.readyAttempts, lastErr)
}

func (mr *MigrationRunner) newMigrate() (*migrate.Migrate, error) {
	absPath, err := filepath.Abs(mr.migrationsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve migrations path: %w", err)
	}

	driver, err := postgres.WithInstance(mr.db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+absPath, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration instance: %w", err)
	}
	return m, nil
}

// Migrate applies every pending up migration. A missing migrations
// directory is not an error: AutoMigrate covers that case.
func (mr *MigrationRunner) Migrate() (MigrationStatus, error) {
	if _, err := os.Stat(mr.migrationsPath); os.IsNotExist(err) {
		mr.logger.Warn("migrations directory not found", slog.String("path", mr.migrationsPath))
		return MigrationStatus{}, nil
	}

	m, err := mr.newMigrate()
	if err != nil {
		return MigrationStatus{}, err
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return MigrationStatus{}, fmt.Errorf("failed to read migration version: %w", err)
	}
	if dirty {
		return MigrationStatus{Version: version, Dirty: true}, fmt.Errorf("%w at version %d", ErrDirtyDatabase, version)
	}

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		mr.logger.Info("schema up to date", slog.Uint64("version", uint64(version)))
		return MigrationStatus{Version: version}, nil
	}
	if err != nil {
		return MigrationStatus{}, fmt.Errorf("migration failed: %w", err)
	}

	newVersion, dirty, err := m.Version()
	if err != nil {
		return MigrationStatus{}, fmt.Errorf("failed to read migration version: %w", err)
	}
	mr.logger.Info("migrations applied",
		slog.Uint64("from_version", uint64(version)),
		slog.Uint64("to_version", uint64(newVersion)))
	return MigrationStatus{Version: newVersion, Dirty: dirty, Applied: true}, nil
}

// Seed runs every *.sql file of the seeds directory in name order, each in
// its own transaction. A failing file is rolled back and skipped. Returns
// the number of files applied.
func (mr *MigrationRunner) Seed(ctx context.Context) (int, error) {
	if !mr.seed {
		return 0, nil
	}

	if _, err := os.Stat(mr.seedsPath); os.IsNotExist(err) {
		mr.logger.Warn("seeds directory not found", slog.String("path", mr.seedsPath))
		return 0, nil
	}

	files, err := filepath.Glob(filepath.Join(mr.seedsPath, "*.sql"))
	if err != nil {
		return 0, fmt.Errorf("failed to list seed files: %w", err)
	}

	applied := 0
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return applied, fmt.Errorf("failed to read seed file %s: %w", file, err)
		}

		if err := mr.execSeed(ctx, string(content)); err != nil {
			mr.logger.Warn("seed file skipped",
				slog.String("file", filepath.Base(file)),
				slog.String("error", err.Error()))
			continue
		}
		applied++
	}

	mr.logger.Info("seed data loaded", slog.Int("files", applied))
	return applied, nil
}

func (mr *MigrationRunner) execSeed(ctx context.Context, statement string) error {
	tx, err := mr.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, statement); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Bootstrap waits for the database, migrates and seeds when AUTO_MIGRATE is on
func Bootstrap(ctx context.Context, db *sql.DB, cfg *config.DatabaseConfig, logger *slog.Logger) error {
	if !cfg.AutoMigrate {
		return nil
	}

	runner := NewMigrationRunner(db, cfg, logger)

	if err := runner.WaitForDatabase(ctx); err != nil {
		return fmt.Errorf("database readiness check failed: %w", err)
	}

	if _, err := runner.Migrate(); err != nil {
		return err
	}

	if _, err := runner.Seed(ctx); err != nil {
		runner.logger.Warn("seeding failed", slog.String("error", err.Error()))
	}
	return nil
}
