package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const DefaultCurrency = "BRL"

var ErrUnsupportedCurrency = errors.New("unsupported currency")

// UserSettings holds per-user preferences, created lazily on first read
type UserSettings struct {
	UserID    string    `gorm:"type:varchar(255);primaryKey" json:"user_id"`
	Currency  string    `gorm:"type:varchar(3);not null" json:"currency"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (s *UserSettings) TableName() string {
	return "user_settings"
}

// Currency describes a supported display currency
type Currency struct {
	Code   string `json:"value"`
	Label  string `json:"label"`
	Symbol string `json:"symbol"`

	thousands    string
	decimalSep   string
	symbolSuffix bool
	symbolSpace  bool
}

var supportedCurrencies = []Currency{
	{Code: "BRL", Label: "Real Brasileiro", Symbol: "R$", thousands: ".", decimalSep: ",", symbolSpace: true},
	{Code: "USD", Label: "Dólar Americano", Symbol: "$", thousands: ",", decimalSep: "."},
	{Code: "EUR", Label: "Euro", Symbol: "€", thousands: ".", decimalSep: ",", symbolSuffix: true, symbolSpace: true},
}

// SupportedCurrencies returns the currencies a user may pick
func SupportedCurrencies() []Currency {
	out := make([]Currency, len(supportedCurrencies))
	copy(out, supportedCurrencies)
	return out
}

// LookupCurrency finds a supported currency by code
func LookupCurrency(code string) (Currency, error) {
	for _, c := range supportedCurrencies {
		if c.Code == code {
			return c, nil
		}
	}
	return Currency{}, ErrUnsupportedCurrency
}

// IsSupportedCurrency checks a currency code against the supported set
func IsSupportedCurrency(code string) bool {
	_, err := LookupCurrency(code)
	return err == nil
}

// Format renders an amount using the currency's symbol and separators,
// e.g. "R$ 1.234,50", "$1,234.50", "1.234,50 €".
func (c Currency) Format(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	fixed := amount.Abs().StringFixed(AmountScale)

	intPart, fracPart := fixed, ""
	if idx := strings.IndexByte(fixed, '.'); idx >= 0 {
		intPart, fracPart = fixed[:idx], fixed[idx+1:]
	}

	var grouped strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteString(c.thousands)
		}
		grouped.WriteRune(r)
	}

	number := grouped.String() + c.decimalSep + fracPart
	gap := ""
	if c.symbolSpace {
		gap = " "
	}
	out := c.Symbol + gap + number
	if c.symbolSuffix {
		out = number + gap + c.Symbol
	}
	if negative {
		return "-" + out
	}
	return out
}
