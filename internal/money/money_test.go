package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"£1,234.56", 1234.56},
		{"1234.56", 1234.56},
		{"£9500", 9500},
		{" £ 250.00 ", 250},
		{"0", 0},
		{"", 0},
		{"-125.50", -125.50},
	}

	for _, tt := range tests {
		got, err := Parse(tt.input)
		assert.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestParseInvalid(t *testing.T) {
	for _, input := range []string{"abc", "£12.3.4", "12,34,5 pounds"} {
		_, err := Parse(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{1234.56, "£1,234.56"},
		{9500, "£9,500.00"},
		{0, "£0.00"},
		{999999.995, "£1,000,000.00"},
		{-125.5, "-£125.50"},
		{42.1, "£42.10"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.input), "input %v", tt.input)
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	got, err := Parse(Format(1234.56))
	assert.NoError(t, err)
	assert.Equal(t, 1234.56, got)
}
