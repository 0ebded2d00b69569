package services

import (
	"context"
	"fmt"
	"time"

	apperrors "pouparia/internal/errors"
	"pouparia/internal/models"
	"pouparia/internal/repositories"
)

type historyService struct {
	aggregateRepo repositories.AggregateRepositoryInterface
	now           func() time.Time
}

func NewHistoryService(aggregateRepo repositories.AggregateRepositoryInterface) HistoryServiceInterface {
	return &historyService{
		aggregateRepo: aggregateRepo,
		now:           time.Now,
	}
}

// MonthlyHistory returns one entry per day of a zero-based month, or an empty
// list when the month has no rollups at all
func (s *historyService) MonthlyHistory(ctx context.Context, userID string, month, year int) ([]models.DayHistory, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}

	rows, err := s.aggregateRepo.ListDays(ctx, userID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load month history: %w", err)
	}
	if len(rows) == 0 {
		return []models.DayHistory{}, nil
	}

	buckets := FillBuckets(rows, KeyRange(1, models.DaysInMonth(month, year)),
		func(r models.DayAggregate) int { return r.Day },
		func(r models.DayAggregate) models.Totals { return r.Totals })

	days := make([]models.DayHistory, 0, len(buckets))
	for _, b := range buckets {
		days = append(days, models.DayHistory{Day: b.Key, Month: month, Year: year, Totals: b.Totals})
	}
	return days, nil
}

// YearlyHistory returns twelve entries (months 0..11), or an empty list when
// the year has no rollups at all
func (s *historyService) YearlyHistory(ctx context.Context, userID string, year int) ([]models.MonthHistory, error) {
	if err := validatePeriod(0, year); err != nil {
		return nil, err
	}

	rows, err := s.aggregateRepo.ListMonths(ctx, userID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load year history: %w", err)
	}
	if len(rows) == 0 {
		return []models.MonthHistory{}, nil
	}

	buckets := FillBuckets(rows, KeyRange(0, 11),
		func(r models.MonthAggregate) int { return r.Month },
		func(r models.MonthAggregate) models.Totals { return r.Totals })

	months := make([]models.MonthHistory, 0, len(buckets))
	for _, b := range buckets {
		months = append(months, models.MonthHistory{Month: b.Key, Year: year, Totals: b.Totals})
	}
	return months, nil
}

// History dispatches on timeframe
func (s *historyService) History(ctx context.Context, userID, timeframe string, month, year int) (*models.History, error) {
	switch timeframe {
	case models.TimeframeMonth:
		days, err := s.MonthlyHistory(ctx, userID, month, year)
		if err != nil {
			return nil, err
		}
		return &models.History{Timeframe: timeframe, Month: &month, Year: year, Days: days}, nil
	case models.TimeframeYear:
		months, err := s.YearlyHistory(ctx, userID, year)
		if err != nil {
			return nil, err
		}
		return &models.History{Timeframe: timeframe, Year: year, Months: months}, nil
	default:
		return nil, apperrors.ValidationField("timeframe", "must be one of: month year")
	}
}

// HistoryPeriods lists the years with activity, newest first. A user with no
// activity gets the current year so the year picker is never empty.
func (s *historyService) HistoryPeriods(ctx context.Context, userID string) ([]int, error) {
	years, err := s.aggregateRepo.DistinctYears(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load history periods: %w", err)
	}
	if len(years) == 0 {
		return []int{s.now().UTC().Year()}, nil
	}
	return years, nil
}

func validatePeriod(month, year int) error {
	fields := map[string]string{}
	if year < models.MinHistoryYear || year > models.MaxHistoryYear {
		fields["year"] = fmt.Sprintf("must be between %d and %d", models.MinHistoryYear, models.MaxHistoryYear)
	}
	if month < 0 || month > 11 {
		fields["month"] = "must be between 0 and 11"
	}
	if len(fields) > 0 {
		return apperrors.Validation(fields)
	}
	return nil
}
