package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExtractDatePatterns(t *testing.T) {
	// 2024-03-11 is a Monday.
	now := date(2024, time.March, 11)

	tests := []struct {
		name string
		line string
		want time.Time
	}{
		{"slash with year", "1/15/2024 $120", date(2024, time.January, 15)},
		{"dash with year", "01-15-2023 $120", date(2023, time.January, 15)},
		{"slash no year", "1/15 $120", date(2024, time.January, 15)},
		{"dash no year", "12-25 $40", date(2024, time.December, 25)},
		{"iso", "2023-07-04 $55", date(2023, time.July, 4)},
		{"month name", "Jan 16 $85", date(2024, time.January, 16)},
		{"month name ordinal", "January 5th, 2023 $85", date(2023, time.January, 5)},
		{"month name mixed case", "SEP 2 $30", date(2024, time.September, 2)},
		{"month name abbreviated dot", "Feb. 14 $60", date(2024, time.February, 14)},
		{"weekday month day", "Friday Jan 12 $75", date(2024, time.January, 12)},
		{"today", "today $10", date(2024, time.March, 11)},
		{"yesterday", "Yesterday $95", date(2024, time.March, 10)},
		{"last friday", "Last Friday $150", date(2024, time.March, 8)},
		{"last weekday on same weekday", "last monday $20", date(2024, time.March, 4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.line, now)
			require.NotNil(t, got.Date, "expected a date in %q", tt.line)
			assert.Equal(t, tt.want, *got.Date)
		})
	}
}

func TestExtractDateNoMatch(t *testing.T) {
	now := date(2024, time.March, 11)

	for _, line := range []string{
		"great shift, made bank",
		"$120 only",
		"Janx 5 $20",
		"13/45 $20",
		"2/30 $20",
	} {
		got := Extract(line, now)
		assert.Nil(t, got.Date, "expected no date in %q", line)
	}
}

func TestExtractFutureDateReturned(t *testing.T) {
	now := date(2024, time.March, 11)

	// Rejecting future dates belongs to the line parser, not the extractor.
	got := Extract("12/31 $200", now)
	require.NotNil(t, got.Date)
	assert.Equal(t, date(2024, time.December, 31), *got.Date)
}

func TestExtractISOYearNotMisreadAsMonthDay(t *testing.T) {
	now := date(2024, time.March, 11)

	got := Extract("2022-03-05 $20", now)
	require.NotNil(t, got.Date)
	assert.Equal(t, date(2022, time.March, 5), *got.Date)
}

func TestExtractAmount(t *testing.T) {
	now := date(2024, time.March, 11)

	tests := []struct {
		line      string
		wantMinor int64
	}{
		{"1/15 $120", 12000},
		{"Jan 16 $85", 8500},
		{"Yesterday $95", 9500},
		{"2/2 $120.50", 12050},
		{"2/2 120.5", 12050},
		{"2/2 33", 3300},
		{"lunch rush $0.99", 99},
	}
	for _, tt := range tests {
		got := Extract(tt.line, now)
		require.NotNil(t, got.AmountMinor, "expected an amount in %q", tt.line)
		assert.Equal(t, tt.wantMinor, *got.AmountMinor, "line %q", tt.line)
	}
}

func TestExtractAmountIgnoresDateDigits(t *testing.T) {
	now := date(2024, time.March, 11)

	// The date's own digits must never be read as money.
	got := Extract("1/15/2024 120", now)
	require.NotNil(t, got.Date)
	require.NotNil(t, got.AmountMinor)
	assert.Equal(t, int64(12000), *got.AmountMinor)
}

func TestExtractAxesIndependent(t *testing.T) {
	now := date(2024, time.March, 11)

	dateOnly := Extract("Jan 16 was slow", now)
	assert.NotNil(t, dateOnly.Date)
	assert.Nil(t, dateOnly.AmountMinor)

	amountOnly := Extract("$42 from the lunch crowd", now)
	assert.Nil(t, amountOnly.Date)
	assert.NotNil(t, amountOnly.AmountMinor)
}
