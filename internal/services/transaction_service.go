package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pouparia/internal/dto"
	apperrors "pouparia/internal/errors"
	"pouparia/internal/models"
	"pouparia/internal/repositories"
	"pouparia/internal/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type transactionService struct {
	txRunner        repositories.TxRunner
	transactionRepo repositories.TransactionRepositoryInterface
	aggregateRepo   repositories.AggregateRepositoryInterface
	categoryRepo    repositories.CategoryRepositoryInterface
	metrics         MetricsRecorderInterface
	audit           AuditLoggerInterface
}

func NewTransactionService(
	txRunner repositories.TxRunner,
	transactionRepo repositories.TransactionRepositoryInterface,
	aggregateRepo repositories.AggregateRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	metrics MetricsRecorderInterface,
	audit AuditLoggerInterface,
) TransactionServiceInterface {
	if audit == nil {
		audit = NewAuditLogger(nil)
	}
	return &transactionService{
		txRunner:        txRunner,
		transactionRepo: transactionRepo,
		aggregateRepo:   aggregateRepo,
		categoryRepo:    categoryRepo,
		metrics:         metrics,
		audit:           audit,
	}
}

// RecordTransaction inserts a ledger row and adds it to the day and month rollups
func (s *transactionService) RecordTransaction(ctx context.Context, userID string, req *dto.TransactionRequest) (*models.Transaction, error) {
	date, err := validateTransactionRequest(req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	var created *models.Transaction

	err = s.txRunner.RunInTx(ctx, func(tx *gorm.DB) error {
		category, err := s.resolveCategory(ctx, tx, userID, req.Category, req.Type)
		if err != nil {
			return err
		}

		transaction := &models.Transaction{
			UserID:       userID,
			Amount:       req.Amount,
			Type:         req.Type,
			Category:     category.Name,
			CategoryIcon: category.Icon,
			Description:  strings.TrimSpace(req.Description),
			Date:         date,
		}
		if err := s.transactionRepo.WithTx(tx).Create(ctx, transaction); err != nil {
			return err
		}

		if err := s.aggregateRepo.WithTx(tx).Apply(ctx, userID, models.DeltaFor(transaction, 1)); err != nil {
			return err
		}

		created = transaction
		return nil
	})
	if err != nil {
		return nil, s.writeFailed(ctx, "record", userID, err)
	}

	elapsed := time.Since(start)
	s.metrics.RecordProcessingTime("transaction.write", elapsed)
	s.metrics.IncrementCounter("transaction.write.success", map[string]string{"operation": "record", "type": created.Type})
	s.audit.LogTransactionRecorded(ctx, userID, created, elapsed)

	return created, nil
}

// EditTransaction replaces a ledger row in place. The rollups lose the old
// values and gain the new ones in the same database transaction.
func (s *transactionService) EditTransaction(ctx context.Context, userID string, id uuid.UUID, req *dto.TransactionRequest) (*models.Transaction, error) {
	date, err := validateTransactionRequest(req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	var before, updated *models.Transaction

	err = s.txRunner.RunInTx(ctx, func(tx *gorm.DB) error {
		transactionRepo := s.transactionRepo.WithTx(tx)
		aggregateRepo := s.aggregateRepo.WithTx(tx)

		existing, err := transactionRepo.GetByID(ctx, userID, id)
		if err != nil {
			return err
		}
		previous := *existing
		before = &previous

		category, err := s.resolveCategory(ctx, tx, userID, req.Category, req.Type)
		if err != nil {
			return err
		}

		existing.Amount = req.Amount
		existing.Type = req.Type
		existing.Category = category.Name
		existing.CategoryIcon = category.Icon
		existing.Description = strings.TrimSpace(req.Description)
		existing.Date = date

		if err := transactionRepo.Update(ctx, existing); err != nil {
			return err
		}

		if err := aggregateRepo.Apply(ctx, userID, models.DeltaFor(before, -1)); err != nil {
			return err
		}
		if err := aggregateRepo.Apply(ctx, userID, models.DeltaFor(existing, 1)); err != nil {
			return err
		}

		updated = existing
		return nil
	})
	if err != nil {
		return nil, s.writeFailed(ctx, "edit", userID, err)
	}

	elapsed := time.Since(start)
	s.metrics.RecordProcessingTime("transaction.write", elapsed)
	s.metrics.IncrementCounter("transaction.write.success", map[string]string{"operation": "edit", "type": updated.Type})
	s.audit.LogTransactionEdited(ctx, userID, before, updated, elapsed)

	return updated, nil
}

// RemoveTransaction deletes a ledger row and takes it out of the rollups
func (s *transactionService) RemoveTransaction(ctx context.Context, userID string, id uuid.UUID) error {
	start := time.Now()
	var removed *models.Transaction

	err := s.txRunner.RunInTx(ctx, func(tx *gorm.DB) error {
		transactionRepo := s.transactionRepo.WithTx(tx)

		existing, err := transactionRepo.GetByID(ctx, userID, id)
		if err != nil {
			return err
		}

		if err := transactionRepo.Delete(ctx, userID, id); err != nil {
			return err
		}

		if err := s.aggregateRepo.WithTx(tx).Apply(ctx, userID, models.DeltaFor(existing, -1)); err != nil {
			return err
		}

		removed = existing
		return nil
	})
	if err != nil {
		return s.writeFailed(ctx, "remove", userID, err)
	}

	elapsed := time.Since(start)
	s.metrics.RecordProcessingTime("transaction.write", elapsed)
	s.metrics.IncrementCounter("transaction.write.success", map[string]string{"operation": "remove", "type": removed.Type})
	s.audit.LogTransactionRemoved(ctx, userID, removed, elapsed)

	return nil
}

func (s *transactionService) resolveCategory(ctx context.Context, tx *gorm.DB, userID, name, entryType string) (*models.Category, error) {
	category, err := s.categoryRepo.WithTx(tx).Get(ctx, userID, name, entryType)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, apperrors.NotFound(apperrors.CategoryNotFound, "category not found")
		}
		return nil, err
	}
	return category, nil
}

// writeFailed maps a rolled-back unit of work to the error returned to callers
func (s *transactionService) writeFailed(ctx context.Context, operation, userID string, err error) error {
	s.metrics.IncrementCounter("transaction.write.failed", map[string]string{"operation": operation})

	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	if errors.Is(err, repositories.ErrTransactionNotFound) {
		return apperrors.NotFound(apperrors.TransactionNotFound, "transaction not found")
	}

	s.audit.LogWriteRolledBack(ctx, userID, operation, err)
	return fmt.Errorf("failed to %s transaction: %w", operation, err)
}

// validateTransactionRequest checks the payload and returns its parsed date.
// All offending fields are reported together.
func validateTransactionRequest(req *dto.TransactionRequest) (time.Time, error) {
	if req == nil {
		return time.Time{}, apperrors.ValidationField("body", "is required")
	}

	fields := validation.FieldErrors(validation.GetValidator().Struct(req))
	if fields == nil {
		fields = map[string]string{}
	}

	if _, ok := fields["description"]; !ok && len([]rune(strings.TrimSpace(req.Description))) < models.MinDescriptionLength {
		fields["description"] = fmt.Sprintf("must be at least %d characters long", models.MinDescriptionLength)
	}

	var date time.Time
	if _, ok := fields["date"]; !ok {
		parsed, err := ParseDate(req.Date)
		if err != nil {
			fields["date"] = "must be an RFC3339 timestamp or a YYYY-MM-DD date"
		}
		date = parsed
	}

	if len(fields) > 0 {
		return time.Time{}, apperrors.Validation(fields)
	}
	return date, nil
}
