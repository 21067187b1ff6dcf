package utils

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used in requests and ledger keys
const DateLayout = "2006-01-02"

const referralAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var hundred = decimal.NewFromInt(100)

// CalculateDailyProfit calculates one day of simple interest
// Formula: amount * dailyPercent / 100, rounded half-even to 2 places
func CalculateDailyProfit(amount decimal.Decimal, dailyPercent decimal.Decimal) decimal.Decimal {
	return RoundMoney(amount.Mul(dailyPercent).Div(hundred))
}

// CalculateCommission calculates a referral commission for a deposit amount
func CalculateCommission(amount decimal.Decimal, rate decimal.Decimal) decimal.Decimal {
	return RoundMoney(amount.Mul(rate))
}

// RoundMoney rounds to the persisted currency scale using banker's rounding
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(2)
}

// IsMoneyAmount reports whether d is positive and has at most 2 decimal places
func IsMoneyAmount(d decimal.Decimal) bool {
	return d.IsPositive() && d.Equal(d.Truncate(2))
}

// CalculateEndDate calculates when an investment's lock period ends
func CalculateEndDate(startDate time.Time, lockPeriodDays int) time.Time {
	return startDate.AddDate(0, 0, lockPeriodDays)
}

// NormalizeDate discards the time of day, keeping the calendar date of t in its own location
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return NormalizeDate(t), nil
}

// FormatDate formats a calendar date as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// IsMatured checks if an investment ending at endDate has matured at now
func IsMatured(endDate time.Time, now time.Time) bool {
	return !now.Before(endDate)
}

// GenerateReferralCode returns an 8 character code from A-Z0-9
func GenerateReferralCode() (string, error) {
	code := make([]byte, 8)
	max := big.NewInt(int64(len(referralAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = referralAlphabet[n.Int64()]
	}
	return string(code), nil
}

// DecimalFromString converts string to decimal.Decimal
func DecimalFromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
