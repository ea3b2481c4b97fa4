// Package domain defines the aggregate statistics surface.
package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

// DayStat is one calendar day with its recorded amount.
type DayStat struct {
	Date        string `json:"date"`
	AmountMinor int64  `json:"amount_minor"`
}

// WeekdayAverage is the mean recorded amount for one weekday across all
// days that have a record.
type WeekdayAverage struct {
	Weekday      string `json:"weekday"`
	AverageMinor int64  `json:"average_minor"`
	Days         int    `json:"days"`
}

// Summary aggregates an owner's tip history. Week is the trailing 7 days
// ending today; month and year follow the calendar. All amounts are minor
// units.
type Summary struct {
	WeekTotalMinor  int64            `json:"week_total_minor"`
	MonthTotalMinor int64            `json:"month_total_minor"`
	YearTotalMinor  int64            `json:"year_total_minor"`
	BestDay         *DayStat         `json:"best_day,omitempty"`
	WorstDay        *DayStat         `json:"worst_day,omitempty"`
	WeekdayAverages []WeekdayAverage `json:"weekday_averages"`
	DailyAverage    int64            `json:"daily_average_minor"`
	EntryCount      int              `json:"entry_count"`
}

type Service interface {
	Summary(ctx context.Context, userID snowflake.ID, now time.Time) (Summary, error)
}
