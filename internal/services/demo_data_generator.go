package services

import (
	"math/rand"
	"sort"
	"time"

	"pouparia/internal/dto"
	"pouparia/internal/models"

	"github.com/shopspring/decimal"
)

type demoDataGenerator struct {
	rng *rand.Rand
}

const (
	salaryDay          = 5
	billPaymentDay     = 10
	purchasesPerWeek   = 4
	minDemoDescription = "Lançamento"
)

// NewDemoDataGenerator creates a generator seeded from the clock
func NewDemoDataGenerator() DemoDataGeneratorInterface {
	return newDemoDataGenerator(time.Now().UnixNano())
}

func newDemoDataGenerator(seed int64) *demoDataGenerator {
	return &demoDataGenerator{rng: rand.New(rand.NewSource(seed))}
}

// GenerateMonth builds a month of entries: a salary on the 5th, one bill per
// expense category on the 10th and a few purchases a week
func (g *demoDataGenerator) GenerateMonth(categories []models.Category, month time.Time) []*dto.TransactionRequest {
	start, end := models.MonthBounds(month)
	return g.GenerateHistory(categories, start, end)
}

// GenerateHistory builds entries for every month touched by [startDate, endDate].
// Entries dated outside the window are dropped. The result is ordered by date.
func (g *demoDataGenerator) GenerateHistory(categories []models.Category, startDate, endDate time.Time) []*dto.TransactionRequest {
	income, expense := splitByType(categories)
	if len(income) == 0 && len(expense) == 0 {
		return []*dto.TransactionRequest{}
	}

	startDate = models.StartOfDay(startDate)
	endDate = models.EndOfDay(endDate)

	var out []*dto.TransactionRequest
	add := func(date time.Time, category models.Category, amount decimal.Decimal) {
		if date.Before(startDate) || date.After(endDate) {
			return
		}
		out = append(out, &dto.TransactionRequest{
			Amount:      amount,
			Type:        category.Type,
			Category:    category.Name,
			Description: describe(category),
			Date:        date.Format(dateOnlyLayout),
		})
	}

	monthStart, _ := models.MonthBounds(startDate)
	for m := monthStart; !m.After(endDate); m = m.AddDate(0, 1, 0) {
		if len(income) > 0 {
			add(m.AddDate(0, 0, salaryDay-1), income[0], g.amount(3000, 9000))
			if len(income) > 1 && g.rng.Intn(2) == 0 {
				add(m.AddDate(0, 0, g.rng.Intn(28)), income[1+g.rng.Intn(len(income)-1)], g.amount(100, 1500))
			}
		}

		if len(expense) == 0 {
			continue
		}
		for _, bill := range expense[:min(3, len(expense))] {
			add(m.AddDate(0, 0, billPaymentDay-1), bill, g.amount(80, 900))
		}

		days := models.DaysInMonth(int(m.Month())-1, m.Year())
		for week := 0; week*7 < days; week++ {
			for i := 0; i < purchasesPerWeek; i++ {
				offset := week*7 + g.rng.Intn(7)
				if offset >= days {
					continue
				}
				add(m.AddDate(0, 0, offset), expense[g.rng.Intn(len(expense))], g.amount(5, 250))
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// amount returns a positive value in [lo, hi) with two decimal places
func (g *demoDataGenerator) amount(lo, hi int64) decimal.Decimal {
	cents := lo*100 + g.rng.Int63n((hi-lo)*100)
	return decimal.New(cents, -models.AmountScale)
}

func splitByType(categories []models.Category) (income, expense []models.Category) {
	for _, c := range categories {
		if c.Type == models.TransactionTypeIncome {
			income = append(income, c)
		} else {
			expense = append(expense, c)
		}
	}
	return income, expense
}

func describe(category models.Category) string {
	if len([]rune(category.Name)) >= models.MinDescriptionLength {
		return category.Name
	}
	return minDemoDescription
}
