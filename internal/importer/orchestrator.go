package importer

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tipfolio/internal/clock"
	"github.com/smallbiznis/tipfolio/internal/observability/metrics"
	"github.com/smallbiznis/tipfolio/pkg/log"
	"go.uber.org/zap"
)

// Upserter is the persistence contract the orchestrator drives. The real
// implementation is *Executor; tests inject fakes.
type Upserter interface {
	Upsert(ctx context.Context, userID snowflake.ID, date time.Time, amountMinor int64) bool
}

// ImportResult summarizes one import run for the caller's review table.
type ImportResult struct {
	SuccessCount int          `json:"success_count"`
	Candidates   []*Candidate `json:"candidates"`
	SkippedLines int          `json:"skipped_lines"`
	// Clean reports that every candidate succeeded, letting the caller
	// discard the raw input buffer.
	Clean bool `json:"clean"`
}

// Orchestrator drives candidates through the upsert executor strictly in
// input order, one at a time. Sequential execution keeps per-row progress
// stable and avoids concurrent writes to the same backend record.
type Orchestrator struct {
	upserter Upserter
	metrics  *metrics.ImportMetrics
	clock    clock.Clock
}

func NewOrchestrator(upserter Upserter, m *metrics.ImportMetrics, clk clock.Clock) *Orchestrator {
	return &Orchestrator{upserter: upserter, metrics: m, clock: clk}
}

// Import parses the raw text and runs the resulting candidates. It is the
// single entry point the HTTP layer uses.
func (o *Orchestrator) Import(ctx context.Context, userID snowflake.ID, text string) (ImportResult, error) {
	parsed, err := ParseBulkInput(text, o.clock.Now())
	if err != nil {
		return ImportResult{}, err
	}
	result := o.RunImport(ctx, parsed.Candidates, userID)
	result.SkippedLines = parsed.SkippedLines
	return result, nil
}

// Preview parses without persisting anything.
func (o *Orchestrator) Preview(text string) (ParseResult, error) {
	return ParseBulkInput(text, o.clock.Now())
}

// RunImport processes candidates in order. Pending candidates go through the
// executor; pre-errored ones (future dates) are skipped and keep their
// message. A single row's failure never aborts the batch.
func (o *Orchestrator) RunImport(ctx context.Context, candidates []*Candidate, userID snowflake.ID) ImportResult {
	successCount := 0
	for _, candidate := range candidates {
		if ctx.Err() != nil {
			break
		}
		if candidate.Status != StatusPending {
			o.metrics.RecordCandidate(string(candidate.Status))
			continue
		}

		if o.upserter.Upsert(ctx, userID, candidate.Date, candidate.AmountMinor) {
			candidate.Status = StatusSuccess
			successCount++
		} else {
			candidate.Status = StatusError
			candidate.Message = msgUpsertFailure
		}
		o.metrics.RecordCandidate(string(candidate.Status))
	}

	log.L(ctx).Info("import run finished",
		zap.String("user_id", userID.String()),
		zap.Int("candidates", len(candidates)),
		zap.Int("succeeded", successCount),
	)

	return ImportResult{
		SuccessCount: successCount,
		Candidates:   candidates,
		Clean:        len(candidates) > 0 && successCount == len(candidates),
	}
}
