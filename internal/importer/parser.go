package importer

import (
	"strings"
	"time"

	tipdomain "github.com/smallbiznis/tipfolio/internal/tip/domain"
)

// ParseResult is the outcome of scanning one block of pasted text.
type ParseResult struct {
	Candidates []*Candidate
	// SkippedLines counts non-blank lines that yielded no usable (date,
	// positive amount) pair. Those lines never appear in Candidates; the
	// count lets the caller surface that something vanished.
	SkippedLines int
}

// ParseBulkInput splits free-form text into import candidates. Lines missing
// either a recognizable date or a positive amount are dropped. Future-dated
// lines become error candidates and are never sent to persistence. Only
// empty or whitespace-only input is an error; an empty candidate list with
// no error means nothing was recognizable.
func ParseBulkInput(text string, now time.Time) (ParseResult, error) {
	if strings.TrimSpace(text) == "" {
		return ParseResult{}, ErrEmptyInput
	}

	today := tipdomain.NormalizeDate(now)
	var result ParseResult
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		ex := Extract(line, now)
		if ex.Date == nil || ex.AmountMinor == nil || *ex.AmountMinor <= 0 {
			result.SkippedLines++
			continue
		}

		candidate := &Candidate{
			RawLine:     strings.TrimSpace(line),
			Date:        *ex.Date,
			AmountMinor: *ex.AmountMinor,
			Status:      StatusPending,
		}
		if candidate.Date.After(today) {
			candidate.Status = StatusError
			candidate.Message = msgFutureDate
		}
		result.Candidates = append(result.Candidates, candidate)
	}

	return result, nil
}
