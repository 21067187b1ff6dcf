package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateDailyProfit(t *testing.T) {
	tests := []struct {
		name         string
		amount       decimal.Decimal
		dailyPercent decimal.Decimal
		expected     decimal.Decimal
	}{
		{
			name:         "plan A on 500",
			amount:       decimal.NewFromInt(500),
			dailyPercent: decimal.RequireFromString("3.00"),
			expected:     decimal.RequireFromString("15.00"), // 500 * 3 / 100
		},
		{
			name:         "one percent on 1000",
			amount:       decimal.NewFromInt(1000),
			dailyPercent: decimal.RequireFromString("1.0"),
			expected:     decimal.RequireFromString("10.00"),
		},
		{
			name:         "half cent rounds to even down",
			amount:       decimal.RequireFromString("0.25"),
			dailyPercent: decimal.RequireFromString("10"),
			expected:     decimal.RequireFromString("0.02"), // 0.025 -> 0.02
		},
		{
			name:         "half cent rounds to even up",
			amount:       decimal.RequireFromString("0.35"),
			dailyPercent: decimal.RequireFromString("10"),
			expected:     decimal.RequireFromString("0.04"), // 0.035 -> 0.04
		},
		{
			name:         "zero amount",
			amount:       decimal.Zero,
			dailyPercent: decimal.RequireFromString("7.00"),
			expected:     decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateDailyProfit(tt.amount, tt.dailyPercent)
			assert.True(t, result.Equal(tt.expected),
				"Expected %v, but got %v", tt.expected, result)
		})
	}
}

func TestCalculateCommission(t *testing.T) {
	result := CalculateCommission(decimal.RequireFromString("333.33"), decimal.RequireFromString("0.05"))
	assert.True(t, result.Equal(decimal.RequireFromString("16.67")), "got %v", result)
}

func TestIsMoneyAmount(t *testing.T) {
	tests := []struct {
		amount   string
		expected bool
	}{
		{"100", true},
		{"0.01", true},
		{"12.50", true},
		{"12.500", true},
		{"0", false},
		{"-5.00", false},
		{"0.001", false},
		{"10.005", false},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsMoneyAmount(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestCalculateEndDate(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 1, 31, 10, 30, 0, 0, time.UTC), CalculateEndDate(start, 30))
	assert.Equal(t, time.Date(2024, 3, 31, 10, 30, 0, 0, time.UTC), CalculateEndDate(start, 90))
}

func TestNormalizeDate(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)

	tests := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{
			name:     "drops time of day",
			input:    time.Date(2024, 6, 1, 23, 59, 59, 999, time.UTC),
			expected: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "keeps local calendar day",
			input:    time.Date(2024, 6, 1, 2, 0, 0, 0, jakarta),
			expected: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeDate(tt.input))
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, "2024-06-01", FormatDate(d))

	_, err = ParseDate("06/01/2024")
	assert.Error(t, err)
}

func TestIsMatured(t *testing.T) {
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	assert.False(t, IsMatured(end, end.Add(-time.Second)))
	assert.True(t, IsMatured(end, end))
	assert.True(t, IsMatured(end, end.AddDate(0, 0, 1)))
}

func TestGenerateReferralCode(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z0-9]{8}$`)

	code1, err := GenerateReferralCode()
	require.NoError(t, err)
	code2, err := GenerateReferralCode()
	require.NoError(t, err)

	assert.Regexp(t, pattern, code1)
	assert.Regexp(t, pattern, code2)
	assert.NotEqual(t, code1, code2)
}
