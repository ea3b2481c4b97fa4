package importer

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tipfolio/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUpserter records calls and fails for dates listed in failOn.
type fakeUpserter struct {
	calls  []time.Time
	failOn map[string]bool
}

func (f *fakeUpserter) Upsert(ctx context.Context, userID snowflake.ID, date time.Time, amountMinor int64) bool {
	f.calls = append(f.calls, date)
	return !f.failOn[date.Format("2006-01-02")]
}

func testOrchestrator(upserter Upserter, now time.Time) *Orchestrator {
	return NewOrchestrator(upserter, nil, clock.NewFakeClock(now))
}

func TestImportAllSucceed(t *testing.T) {
	up := &fakeUpserter{}
	o := testOrchestrator(up, date(2024, time.March, 11))

	result, err := o.Import(context.Background(), 42, "3/1 $10\n3/2 $20\n3/3 $30")
	require.NoError(t, err)

	assert.Equal(t, 3, result.SuccessCount)
	assert.True(t, result.Clean)
	assert.Equal(t, 0, result.SkippedLines)
	require.Len(t, up.calls, 3)
	for _, c := range result.Candidates {
		assert.Equal(t, StatusSuccess, c.Status)
	}
}

func TestImportPartialFailure(t *testing.T) {
	up := &fakeUpserter{failOn: map[string]bool{"2024-03-02": true}}
	o := testOrchestrator(up, date(2024, time.March, 11))

	result, err := o.Import(context.Background(), 42, "3/1 $10\n3/2 $20\n3/3 $30")
	require.NoError(t, err)

	assert.Equal(t, 2, result.SuccessCount)
	assert.False(t, result.Clean)

	failed := result.Candidates[1]
	assert.Equal(t, StatusError, failed.Status)
	assert.Equal(t, "Failed to save tip after multiple attempts", failed.Message)

	// One failing row never stops the ones after it.
	assert.Equal(t, StatusSuccess, result.Candidates[2].Status)
	assert.Len(t, up.calls, 3)
}

func TestImportSkipsFutureDates(t *testing.T) {
	up := &fakeUpserter{}
	o := testOrchestrator(up, date(2024, time.March, 11))

	result, err := o.Import(context.Background(), 42, "3/1 $10\n12/31 $200")
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessCount)
	assert.False(t, result.Clean)

	future := result.Candidates[1]
	assert.Equal(t, StatusError, future.Status)
	assert.Equal(t, "Future date not allowed", future.Message)

	// The future-dated row never reaches persistence.
	require.Len(t, up.calls, 1)
	assert.Equal(t, date(2024, time.March, 1), up.calls[0])
}

func TestImportEmptyInput(t *testing.T) {
	o := testOrchestrator(&fakeUpserter{}, date(2024, time.March, 11))

	_, err := o.Import(context.Background(), 42, "  \n ")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestImportReportsSkippedLines(t *testing.T) {
	up := &fakeUpserter{}
	o := testOrchestrator(up, date(2024, time.March, 11))

	result, err := o.Import(context.Background(), 42, "3/1 $10\nno clue what this is\n3/2 $20")
	require.NoError(t, err)

	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 1, result.SkippedLines)
	assert.True(t, result.Clean)
}

func TestRunImportStopsOnCancelledContext(t *testing.T) {
	up := &fakeUpserter{}
	o := testOrchestrator(up, date(2024, time.March, 11))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	candidates := []*Candidate{
		{Date: date(2024, time.March, 1), AmountMinor: 1000, Status: StatusPending},
		{Date: date(2024, time.March, 2), AmountMinor: 2000, Status: StatusPending},
	}
	result := o.RunImport(ctx, candidates, 42)

	assert.Equal(t, 0, result.SuccessCount)
	assert.Empty(t, up.calls)
	assert.Equal(t, StatusPending, candidates[0].Status)
}

func TestRunImportEmptyBatchNotClean(t *testing.T) {
	o := testOrchestrator(&fakeUpserter{}, date(2024, time.March, 11))

	result := o.RunImport(context.Background(), nil, 42)
	assert.False(t, result.Clean)
	assert.Equal(t, 0, result.SuccessCount)
}

func TestPreviewDoesNotPersist(t *testing.T) {
	up := &fakeUpserter{}
	o := testOrchestrator(up, date(2024, time.March, 11))

	parsed, err := o.Preview("3/1 $10\n3/2 $20")
	require.NoError(t, err)

	assert.Len(t, parsed.Candidates, 2)
	assert.Empty(t, up.calls)
	for _, c := range parsed.Candidates {
		assert.Equal(t, StatusPending, c.Status)
	}
}
