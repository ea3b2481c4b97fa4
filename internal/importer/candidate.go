// Package importer implements the free-text bulk tip import pipeline:
// line extraction, candidate validation, and the multi-strategy upsert
// executor driven by the orchestrator.
package importer

import (
	"errors"
	"time"
)

type CandidateStatus string

const (
	StatusPending CandidateStatus = "pending"
	StatusSuccess CandidateStatus = "success"
	StatusError   CandidateStatus = "error"
)

const (
	msgFutureDate    = "Future date not allowed"
	msgUpsertFailure = "Failed to save tip after multiple attempts"
)

// Candidate is a parsed, not-yet-persisted (date, amount) pair. Candidates
// live only for the duration of one import run and are never stored.
type Candidate struct {
	RawLine     string          `json:"raw_line"`
	Date        time.Time       `json:"date"`
	AmountMinor int64           `json:"amount_minor"`
	Status      CandidateStatus `json:"status"`
	Message     string          `json:"message,omitempty"`
}

// ErrEmptyInput reports empty or whitespace-only bulk input. It is the only
// error the pipeline surfaces as an error; everything else is status data.
var ErrEmptyInput = errors.New("empty_input")
