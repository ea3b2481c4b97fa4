package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tipfolio/internal/stats/domain"
	tipdomain "github.com/smallbiznis/tipfolio/internal/tip/domain"
	"gorm.io/gorm"
)

type service struct {
	db   *gorm.DB
	tips tipdomain.Repository
}

func New(db *gorm.DB, tips tipdomain.Repository) domain.Service {
	return &service{db: db, tips: tips}
}

// historyStart bounds the all-time scan. Nothing meaningful predates the
// product, so one fixed floor keeps the range query simple.
var historyStart = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

func (s *service) Summary(ctx context.Context, userID snowflake.ID, now time.Time) (domain.Summary, error) {
	today := tipdomain.NormalizeDate(now)
	records, err := s.tips.ListRange(ctx, s.db, userID, historyStart, today)
	if err != nil {
		return domain.Summary{}, err
	}

	summary := domain.Summary{EntryCount: len(records)}
	if len(records) == 0 {
		return summary, nil
	}

	weekStart := today.AddDate(0, 0, -6)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	yearStart := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	var (
		total         int64
		weekdaySum    [7]int64
		weekdayCount  [7]int
		best, worst   *domain.DayStat
	)
	for _, rec := range records {
		date := tipdomain.NormalizeDate(rec.TipDate)
		total += rec.AmountMinor

		if !date.Before(weekStart) {
			summary.WeekTotalMinor += rec.AmountMinor
		}
		if !date.Before(monthStart) {
			summary.MonthTotalMinor += rec.AmountMinor
		}
		if !date.Before(yearStart) {
			summary.YearTotalMinor += rec.AmountMinor
		}

		wd := int(date.Weekday())
		weekdaySum[wd] += rec.AmountMinor
		weekdayCount[wd]++

		// Records arrive date-ascending, so strict comparisons keep the
		// earliest day on ties.
		if best == nil || rec.AmountMinor > best.AmountMinor {
			best = &domain.DayStat{Date: tipdomain.DateISO(date), AmountMinor: rec.AmountMinor}
		}
		if worst == nil || rec.AmountMinor < worst.AmountMinor {
			worst = &domain.DayStat{Date: tipdomain.DateISO(date), AmountMinor: rec.AmountMinor}
		}
	}

	summary.BestDay = best
	summary.WorstDay = worst
	summary.DailyAverage = total / int64(len(records))
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if weekdayCount[wd] == 0 {
			continue
		}
		summary.WeekdayAverages = append(summary.WeekdayAverages, domain.WeekdayAverage{
			Weekday:      wd.String(),
			AverageMinor: weekdaySum[wd] / int64(weekdayCount[wd]),
			Days:         weekdayCount[wd],
		})
	}

	return summary, nil
}
