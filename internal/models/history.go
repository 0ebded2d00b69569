package models

const (
	TimeframeMonth = "month"
	TimeframeYear  = "year"

	MinHistoryYear = 2000
	MaxHistoryYear = 2100
)

// DayHistory is one bucket of the month view
type DayHistory struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
	Totals
}

// MonthHistory is one bucket of the year view
type MonthHistory struct {
	Month int `json:"month"`
	Year  int `json:"year"`
	Totals
}

// History is the result of a history query. Exactly one of Days or Months is set.
type History struct {
	Timeframe string         `json:"timeframe"`
	Month     *int           `json:"month,omitempty"`
	Year      int            `json:"year"`
	Days      []DayHistory   `json:"days,omitempty"`
	Months    []MonthHistory `json:"months,omitempty"`
}

// IsValidTimeframe checks the history timeframe selector
func IsValidTimeframe(timeframe string) bool {
	return timeframe == TimeframeMonth || timeframe == TimeframeYear
}
