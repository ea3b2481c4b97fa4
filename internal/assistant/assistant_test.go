package assistant

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tipfolio/internal/projection"
	statsdomain "github.com/smallbiznis/tipfolio/internal/stats/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStats struct {
	summary statsdomain.Summary
}

func (s *stubStats) Summary(ctx context.Context, userID snowflake.ID, now time.Time) (statsdomain.Summary, error) {
	return s.summary, nil
}

type stubProjections struct {
	projection projection.Projection
}

func (s *stubProjections) Project(ctx context.Context, userID snowflake.ID, now time.Time) (projection.Projection, error) {
	return s.projection, nil
}

func testAssistant() Service {
	return New(
		&stubStats{summary: statsdomain.Summary{
			WeekTotalMinor:  15000,
			MonthTotalMinor: 42000,
			YearTotalMinor:  120000,
			BestDay:         &statsdomain.DayStat{Date: "2024-03-02", AmountMinor: 20000},
			WorstDay:        &statsdomain.DayStat{Date: "2024-03-03", AmountMinor: 1000},
			DailyAverage:    8400,
			EntryCount:      5,
		}},
		&stubProjections{projection: projection.Projection{
			ProjectedMonthMinor: 110000,
			ProjectedYearMinor:  1200000,
			BasisDays:           8,
		}},
	)
}

func TestAskIntents(t *testing.T) {
	svc := testAssistant()
	now := time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		question   string
		wantIntent string
		wantReply  string
	}{
		{"What was my best day?", "best_day", "Your best day so far was 2024-03-02 with $200.00."},
		{"when was my slowest shift", "worst_day", "Your slowest day was 2024-03-03 with $10.00."},
		{"how did this week go", "week_total", "You made $150.00 over the last 7 days."},
		{"total for the month?", "month_total", "You made $420.00 so far this month."},
		{"how much this year", "year_total", "You made $1200.00 so far this year."},
		{"what's my average?", "daily_average", "You average $84.00 per recorded day across 5 days."},
		{"am I on track for rent", "projection", "At your recent pace you are on track for $1100.00 this month and $12000.00 this year."},
		{"tell me a joke", "help", helpReply},
	}
	for _, tt := range tests {
		t.Run(tt.wantIntent, func(t *testing.T) {
			answer, err := svc.Ask(context.Background(), 42, tt.question, now)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIntent, answer.Intent)
			assert.Equal(t, tt.wantReply, answer.Reply)
		})
	}
}

func TestAskNoHistory(t *testing.T) {
	svc := New(&stubStats{}, &stubProjections{})
	now := time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)

	answer, err := svc.Ask(context.Background(), 42, "best day?", now)
	require.NoError(t, err)
	assert.Equal(t, "empty", answer.Intent)

	answer, err = svc.Ask(context.Background(), 42, "project my earnings", now)
	require.NoError(t, err)
	assert.Equal(t, "projection", answer.Intent)
	assert.Equal(t, "I need at least one recorded day before I can project earnings.", answer.Reply)
}
