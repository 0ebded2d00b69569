package services

import (
	"fmt"
	"strings"
	"time"

	apperrors "pouparia/internal/errors"
	"pouparia/internal/models"
)

const dateOnlyLayout = "2006-01-02"

// ParseDate accepts RFC3339 timestamps or YYYY-MM-DD dates and returns UTC.
// A bare date is midnight UTC of that day.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(dateOnlyLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected RFC3339 or YYYY-MM-DD", value)
	}
	return t.UTC(), nil
}

// validateRange rejects windows that are empty, reversed or wider than maxRange.
// It runs before any store access.
func validateRange(from, to time.Time, maxRange time.Duration) error {
	if !to.After(from) {
		return apperrors.Range(apperrors.RangeInvalidWindow, "from must be before to")
	}
	if to.Sub(from) > maxRange {
		days := int(maxRange.Hours() / 24)
		return apperrors.Range(apperrors.RangeTooWide, fmt.Sprintf("date range cannot exceed %d days", days))
	}
	return nil
}

// validateDayRange validates an inclusive window of whole UTC days and
// returns the instants that bound it
func validateDayRange(from, to time.Time, maxRange time.Duration) (time.Time, time.Time, error) {
	start := models.StartOfDay(from)
	if err := validateRange(start, models.StartOfDay(to).Add(24*time.Hour), maxRange); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, models.EndOfDay(to), nil
}
