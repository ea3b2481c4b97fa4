// Package projection estimates future earnings for premium owners from
// recent tip history.
package projection

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	tipdomain "github.com/smallbiznis/tipfolio/internal/tip/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Module provides the projection service.
var Module = fx.Module("projection.service",
	fx.Provide(New),
)

// trailingWindowDays is the basis window: four full weeks so every weekday
// is sampled equally.
const trailingWindowDays = 28

// Projection is the earnings estimate returned to premium owners.
type Projection struct {
	ProjectedMonthMinor int64 `json:"projected_month_minor"`
	ProjectedYearMinor  int64 `json:"projected_year_minor"`
	DailyAverageMinor   int64 `json:"daily_average_minor"`
	BasisDays           int   `json:"basis_days"`
}

type Service interface {
	Project(ctx context.Context, userID snowflake.ID, now time.Time) (Projection, error)
}

type service struct {
	db   *gorm.DB
	tips tipdomain.Repository
}

func New(db *gorm.DB, tips tipdomain.Repository) Service {
	return &service{db: db, tips: tips}
}

// Project extends per-weekday averages from the trailing four weeks across
// the remaining days of the month and year, on top of amounts already
// recorded this month and year.
func (s *service) Project(ctx context.Context, userID snowflake.ID, now time.Time) (Projection, error) {
	today := tipdomain.NormalizeDate(now)
	windowStart := today.AddDate(0, 0, -(trailingWindowDays - 1))

	window, err := s.tips.ListRange(ctx, s.db, userID, windowStart, today)
	if err != nil {
		return Projection{}, err
	}
	if len(window) == 0 {
		return Projection{}, nil
	}

	var (
		total        int64
		weekdaySum   [7]int64
		weekdayCount [7]int
	)
	for _, rec := range window {
		total += rec.AmountMinor
		wd := int(tipdomain.NormalizeDate(rec.TipDate).Weekday())
		weekdaySum[wd] += rec.AmountMinor
		weekdayCount[wd]++
	}
	dailyAverage := total / int64(len(window))

	expected := func(day time.Time) int64 {
		wd := int(day.Weekday())
		if weekdayCount[wd] > 0 {
			return weekdaySum[wd] / int64(weekdayCount[wd])
		}
		return dailyAverage
	}

	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	yearStart := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	yearEnd := time.Date(today.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)

	monthActual, err := s.rangeTotal(ctx, userID, monthStart, today)
	if err != nil {
		return Projection{}, err
	}
	yearActual, err := s.rangeTotal(ctx, userID, yearStart, today)
	if err != nil {
		return Projection{}, err
	}

	projection := Projection{
		ProjectedMonthMinor: monthActual,
		ProjectedYearMinor:  yearActual,
		DailyAverageMinor:   dailyAverage,
		BasisDays:           len(window),
	}
	for day := today.AddDate(0, 0, 1); !day.After(monthEnd); day = day.AddDate(0, 0, 1) {
		projection.ProjectedMonthMinor += expected(day)
	}
	for day := today.AddDate(0, 0, 1); !day.After(yearEnd); day = day.AddDate(0, 0, 1) {
		projection.ProjectedYearMinor += expected(day)
	}

	return projection, nil
}

func (s *service) rangeTotal(ctx context.Context, userID snowflake.ID, from, to time.Time) (int64, error) {
	records, err := s.tips.ListRange(ctx, s.db, userID, from, to)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, rec := range records {
		total += rec.AmountMinor
	}
	return total, nil
}
