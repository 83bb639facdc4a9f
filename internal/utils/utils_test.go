package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCompact(t *testing.T) {
	testCases := []struct {
		input    float64
		expected string
	}{
		{input: 0, expected: "$0"},
		{input: 999, expected: "$999"},
		{input: 1_000, expected: "$1.0K"},
		{input: 86_200, expected: "$86.2K"},
		{input: 3_450_000, expected: "$3.5M"},
		{input: 1_200_000_000, expected: "$1.2B"},
	}

	for _, tt := range testCases {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCompact(tt.input))
		})
	}
}

func TestFormatPrice(t *testing.T) {
	testCases := []struct {
		input    float64
		expected string
	}{
		{input: 2809, expected: "2.8K"},
		{input: 129.6, expected: "129.60"},
		{input: 1, expected: "1.00"},
		{input: 0.21, expected: "0.2100"},
		{input: 0.003, expected: "0.003000"},
		{input: 0.000001, expected: "0.000001"},
	}

	for _, tt := range testCases {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatPrice(tt.input))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "+12.3%", FormatPercent(12.34))
	assert.Equal(t, "-4.5%", FormatPercent(-4.54))
	assert.Equal(t, "0.0%", FormatPercent(0))
}

func TestLiquidityRatio(t *testing.T) {
	assert.Equal(t, 0.25, LiquidityRatio(250_000, 1_000_000))
	assert.Equal(t, 0.0, LiquidityRatio(10, 0))
}
