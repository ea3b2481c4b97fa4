package importer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	tipdomain "github.com/smallbiznis/tipfolio/internal/tip/domain"
	tiprepository "github.com/smallbiznis/tipfolio/internal/tip/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var errBackendDown = errors.New("backend unavailable")

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tipdomain.TipRecord{}))
	return db
}

func newTestNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return node
}

// flakyRepo wraps the real repository and fails selected operations, so each
// fallback strategy can be exercised against a live database.
type flakyRepo struct {
	tipdomain.Repository

	failFind         bool
	failSave         bool
	failExists       bool
	failUpdateByDate bool
	failInsert       bool
}

func (f *flakyRepo) FindByDate(ctx context.Context, db *gorm.DB, userID snowflake.ID, date time.Time) (*tipdomain.TipRecord, error) {
	if f.failFind {
		return nil, errBackendDown
	}
	return f.Repository.FindByDate(ctx, db, userID, date)
}

func (f *flakyRepo) Save(ctx context.Context, db *gorm.DB, record *tipdomain.TipRecord) error {
	if f.failSave {
		return errBackendDown
	}
	return f.Repository.Save(ctx, db, record)
}

func (f *flakyRepo) Exists(ctx context.Context, db *gorm.DB, userID snowflake.ID, date time.Time) (bool, error) {
	if f.failExists {
		return false, errBackendDown
	}
	return f.Repository.Exists(ctx, db, userID, date)
}

func (f *flakyRepo) UpdateAmountByDate(ctx context.Context, db *gorm.DB, userID snowflake.ID, date time.Time, amountMinor int64) error {
	if f.failUpdateByDate {
		return errBackendDown
	}
	return f.Repository.UpdateAmountByDate(ctx, db, userID, date, amountMinor)
}

func (f *flakyRepo) Insert(ctx context.Context, db *gorm.DB, record *tipdomain.TipRecord) error {
	if f.failInsert {
		return errBackendDown
	}
	return f.Repository.Insert(ctx, db, record)
}

func countRows(t *testing.T, db *gorm.DB, userID snowflake.ID) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&tipdomain.TipRecord{}).Where("user_id = ?", userID).Count(&count).Error)
	return count
}

func TestExecutorUpsertOverwritesSameDay(t *testing.T) {
	db := setupTestDB(t)
	node := newTestNode(t)
	exec := NewExecutor(db, tiprepository.Provide(), node, nil)

	userID := node.Generate()
	day := date(2024, time.March, 5)

	require.True(t, exec.Upsert(context.Background(), userID, day, 12000))
	require.True(t, exec.Upsert(context.Background(), userID, day, 9500))

	// Re-importing the same day replaces the amount instead of adding a row.
	assert.Equal(t, int64(1), countRows(t, db, userID))

	var record tipdomain.TipRecord
	require.NoError(t, db.Where("user_id = ?", userID).First(&record).Error)
	assert.Equal(t, int64(9500), record.AmountMinor)
}

func TestExecutorFallsBackToSave(t *testing.T) {
	db := setupTestDB(t)
	node := newTestNode(t)
	repo := &flakyRepo{Repository: tiprepository.Provide(), failFind: true}
	exec := NewExecutor(db, repo, node, nil)

	userID := node.Generate()
	ok := exec.Upsert(context.Background(), userID, date(2024, time.March, 5), 4200)

	assert.True(t, ok)
	assert.Equal(t, int64(1), countRows(t, db, userID))
}

func TestExecutorFallsBackToCheckThenBranch(t *testing.T) {
	db := setupTestDB(t)
	node := newTestNode(t)
	repo := &flakyRepo{Repository: tiprepository.Provide(), failFind: true, failSave: true}
	exec := NewExecutor(db, repo, node, nil)

	userID := node.Generate()
	day := date(2024, time.March, 5)

	require.True(t, exec.Upsert(context.Background(), userID, day, 4200))
	require.True(t, exec.Upsert(context.Background(), userID, day, 7700))

	assert.Equal(t, int64(1), countRows(t, db, userID))
	var record tipdomain.TipRecord
	require.NoError(t, db.Where("user_id = ?", userID).First(&record).Error)
	assert.Equal(t, int64(7700), record.AmountMinor)
}

func TestExecutorFallsBackToBestEffort(t *testing.T) {
	db := setupTestDB(t)
	node := newTestNode(t)
	repo := &flakyRepo{
		Repository: tiprepository.Provide(),
		failFind:   true,
		failSave:   true,
		failExists: true,
	}
	exec := NewExecutor(db, repo, node, nil)

	userID := node.Generate()
	ok := exec.Upsert(context.Background(), userID, date(2024, time.March, 5), 4200)

	assert.True(t, ok)
	assert.Equal(t, int64(1), countRows(t, db, userID))
}

func TestExecutorAllStrategiesExhausted(t *testing.T) {
	db := setupTestDB(t)
	node := newTestNode(t)
	repo := &flakyRepo{
		Repository:       tiprepository.Provide(),
		failFind:         true,
		failSave:         true,
		failExists:       true,
		failUpdateByDate: true,
	}
	exec := NewExecutor(db, repo, node, nil)

	userID := node.Generate()
	ok := exec.Upsert(context.Background(), userID, date(2024, time.March, 5), 4200)

	assert.False(t, ok)
	assert.Equal(t, int64(0), countRows(t, db, userID))
}
