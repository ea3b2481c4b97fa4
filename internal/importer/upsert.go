package importer

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tipfolio/internal/observability/metrics"
	tipdomain "github.com/smallbiznis/tipfolio/internal/tip/domain"
	"github.com/smallbiznis/tipfolio/pkg/log"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Executor persists one (user, date, amount) pair through an ordered chain
// of independent strategies, stopping at the first that succeeds. The chain
// exists because the hosted backend fails intermittently on both
// read-before-write and write; each strategy reaches the same logical row
// through a different access path. The write is a pure overwrite keyed by
// (user, date), so a retry after an ambiguous failure converges instead of
// double-counting.
type Executor struct {
	db         *gorm.DB
	repo       tipdomain.Repository
	genID      *snowflake.Node
	metrics    *metrics.ImportMetrics
	strategies []strategy
}

type strategy struct {
	name string
	run  func(ctx context.Context, userID snowflake.ID, date time.Time, amountMinor int64) error
}

func NewExecutor(db *gorm.DB, repo tipdomain.Repository, genID *snowflake.Node, m *metrics.ImportMetrics) *Executor {
	e := &Executor{db: db, repo: repo, genID: genID, metrics: m}
	e.strategies = []strategy{
		{name: "direct", run: e.direct},
		{name: "remote_save", run: e.remoteSave},
		{name: "check_then_branch", run: e.checkThenBranch},
		{name: "best_effort", run: e.bestEffort},
	}
	return e
}

// Upsert returns true once any strategy persists the record, false when all
// are exhausted. Callers must not assume any state change on false.
func (e *Executor) Upsert(ctx context.Context, userID snowflake.ID, date time.Time, amountMinor int64) bool {
	l := log.L(ctx).With(
		zap.String("user_id", userID.String()),
		zap.String("date", tipdomain.DateISO(date)),
	)

	for _, st := range e.strategies {
		err := st.run(ctx, userID, date, amountMinor)
		if err == nil {
			e.metrics.RecordStrategyAttempt(st.name, "success")
			l.Debug("tip upsert succeeded", zap.String("strategy", st.name))
			return true
		}
		e.metrics.RecordStrategyAttempt(st.name, "error")
		l.Warn("tip upsert strategy failed",
			zap.String("strategy", st.name),
			zap.Error(err),
		)
	}

	l.Error("tip upsert exhausted all strategies")
	return false
}

// direct reads the existing record and updates it, or inserts when absent.
// Any error at read or write fails the whole strategy; it is not retried.
func (e *Executor) direct(ctx context.Context, userID snowflake.ID, date time.Time, amountMinor int64) error {
	existing, err := e.repo.FindByDate(ctx, e.db, userID, date)
	if err != nil {
		return err
	}
	if existing != nil {
		return e.repo.UpdateAmountByID(ctx, e.db, existing.ID, amountMinor)
	}
	return e.repo.Insert(ctx, e.db, e.newRecord(userID, date, amountMinor))
}

// remoteSave delegates check-then-act to the server in one round trip.
func (e *Executor) remoteSave(ctx context.Context, userID snowflake.ID, date time.Time, amountMinor int64) error {
	return e.repo.Save(ctx, e.db, e.newRecord(userID, date, amountMinor))
}

// checkThenBranch asks the server whether the row exists, then issues the
// matching keyed update or insert.
func (e *Executor) checkThenBranch(ctx context.Context, userID snowflake.ID, date time.Time, amountMinor int64) error {
	exists, err := e.repo.Exists(ctx, e.db, userID, date)
	if err != nil {
		return err
	}
	if exists {
		return e.repo.UpdateAmountByDate(ctx, e.db, userID, date, amountMinor)
	}
	return e.repo.Insert(ctx, e.db, e.newRecord(userID, date, amountMinor))
}

// bestEffort updates unconditionally, verifies with a count, and inserts
// when no row was touched. Lack of an error counts as success.
func (e *Executor) bestEffort(ctx context.Context, userID snowflake.ID, date time.Time, amountMinor int64) error {
	if err := e.repo.UpdateAmountByDate(ctx, e.db, userID, date, amountMinor); err != nil {
		return err
	}
	count, err := e.repo.CountByDate(ctx, e.db, userID, date)
	if err != nil {
		return err
	}
	if count == 0 {
		return e.repo.Insert(ctx, e.db, e.newRecord(userID, date, amountMinor))
	}
	return nil
}

func (e *Executor) newRecord(userID snowflake.ID, date time.Time, amountMinor int64) *tipdomain.TipRecord {
	now := time.Now().UTC()
	return &tipdomain.TipRecord{
		ID:          e.genID.Generate(),
		UserID:      userID,
		TipDate:     tipdomain.NormalizeDate(date),
		AmountMinor: amountMinor,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
