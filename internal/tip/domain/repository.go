package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tipfolio/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListFilter struct {
	From *time.Time
	To   *time.Time
}

// Repository exposes both the plain read/write path and the server-side
// operations (atomic save, exists check, keyed update, count) that the
// import pipeline's fallback strategies drive independently.
type Repository interface {
	FindByDate(ctx context.Context, db *gorm.DB, userID snowflake.ID, date time.Time) (*TipRecord, error)
	Insert(ctx context.Context, db *gorm.DB, record *TipRecord) error
	UpdateAmountByID(ctx context.Context, db *gorm.DB, id snowflake.ID, amountMinor int64) error

	Save(ctx context.Context, db *gorm.DB, record *TipRecord) error
	Exists(ctx context.Context, db *gorm.DB, userID snowflake.ID, date time.Time) (bool, error)
	UpdateAmountByDate(ctx context.Context, db *gorm.DB, userID snowflake.ID, date time.Time, amountMinor int64) error
	CountByDate(ctx context.Context, db *gorm.DB, userID snowflake.ID, date time.Time) (int64, error)

	List(ctx context.Context, db *gorm.DB, userID snowflake.ID, filter ListFilter, page pagination.Pagination) ([]*TipRecord, error)
	ListRange(ctx context.Context, db *gorm.DB, userID snowflake.ID, from, to time.Time) ([]*TipRecord, error)
	DeleteByDate(ctx context.Context, db *gorm.DB, userID snowflake.ID, date time.Time) error
}
