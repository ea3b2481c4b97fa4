// Package assistant answers canned questions about an owner's tip history.
// Intent matching is rule-based: a handful of keyword rules over the stats
// and projection services, no language model.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tipfolio/internal/projection"
	statsdomain "github.com/smallbiznis/tipfolio/internal/stats/domain"
	tipdomain "github.com/smallbiznis/tipfolio/internal/tip/domain"
	"go.uber.org/fx"
)

// Module provides the assistant service.
var Module = fx.Module("assistant.service",
	fx.Provide(New),
)

// Answer is one assistant reply.
type Answer struct {
	Intent string `json:"intent"`
	Reply  string `json:"reply"`
}

type Service interface {
	Ask(ctx context.Context, userID snowflake.ID, question string, now time.Time) (Answer, error)
}

type service struct {
	stats       statsdomain.Service
	projections projection.Service
}

func New(stats statsdomain.Service, projections projection.Service) Service {
	return &service{stats: stats, projections: projections}
}

const helpReply = "I can answer questions about your best or worst day, " +
	"weekly, monthly or yearly totals, your daily average, and projected earnings."

func (s *service) Ask(ctx context.Context, userID snowflake.ID, question string, now time.Time) (Answer, error) {
	q := strings.ToLower(question)

	if containsAny(q, "project", "forecast", "estimate", "on track") {
		p, err := s.projections.Project(ctx, userID, now)
		if err != nil {
			return Answer{}, err
		}
		if p.BasisDays == 0 {
			return Answer{Intent: "projection", Reply: "I need at least one recorded day before I can project earnings."}, nil
		}
		return Answer{
			Intent: "projection",
			Reply: fmt.Sprintf("At your recent pace you are on track for $%s this month and $%s this year.",
				tipdomain.FormatMajor(p.ProjectedMonthMinor), tipdomain.FormatMajor(p.ProjectedYearMinor)),
		}, nil
	}

	summary, err := s.stats.Summary(ctx, userID, now)
	if err != nil {
		return Answer{}, err
	}
	if summary.EntryCount == 0 {
		return Answer{Intent: "empty", Reply: "You have no tips recorded yet. Log a few days and ask me again."}, nil
	}

	switch {
	case containsAny(q, "best", "highest", "top day"):
		return Answer{
			Intent: "best_day",
			Reply:  fmt.Sprintf("Your best day so far was %s with $%s.", summary.BestDay.Date, tipdomain.FormatMajor(summary.BestDay.AmountMinor)),
		}, nil
	case containsAny(q, "worst", "lowest", "slowest"):
		return Answer{
			Intent: "worst_day",
			Reply:  fmt.Sprintf("Your slowest day was %s with $%s.", summary.WorstDay.Date, tipdomain.FormatMajor(summary.WorstDay.AmountMinor)),
		}, nil
	case containsAny(q, "week"):
		return Answer{
			Intent: "week_total",
			Reply:  fmt.Sprintf("You made $%s over the last 7 days.", tipdomain.FormatMajor(summary.WeekTotalMinor)),
		}, nil
	case containsAny(q, "month"):
		return Answer{
			Intent: "month_total",
			Reply:  fmt.Sprintf("You made $%s so far this month.", tipdomain.FormatMajor(summary.MonthTotalMinor)),
		}, nil
	case containsAny(q, "year"):
		return Answer{
			Intent: "year_total",
			Reply:  fmt.Sprintf("You made $%s so far this year.", tipdomain.FormatMajor(summary.YearTotalMinor)),
		}, nil
	case containsAny(q, "average", "avg", "typical"):
		return Answer{
			Intent: "daily_average",
			Reply:  fmt.Sprintf("You average $%s per recorded day across %d days.", tipdomain.FormatMajor(summary.DailyAverage), summary.EntryCount),
		}, nil
	default:
		return Answer{Intent: "help", Reply: helpReply}, nil
	}
}

func containsAny(haystack string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}
