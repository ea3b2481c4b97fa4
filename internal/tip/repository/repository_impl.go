package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tipfolio/internal/tip/domain"
	"github.com/smallbiznis/tipfolio/pkg/db/option"
	"github.com/smallbiznis/tipfolio/pkg/db/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByDate(ctx context.Context, db *gorm.DB, userID snowflake.ID, date time.Time) (*domain.TipRecord, error) {
	var record domain.TipRecord
	err := db.WithContext(ctx).
		Where("user_id = ? AND tip_date = ?", userID, domain.NormalizeDate(date)).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, record *domain.TipRecord) error {
	record.TipDate = domain.NormalizeDate(record.TipDate)
	return db.WithContext(ctx).Create(record).Error
}

func (r *repo) UpdateAmountByID(ctx context.Context, db *gorm.DB, id snowflake.ID, amountMinor int64) error {
	return db.WithContext(ctx).
		Model(&domain.TipRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{"amount_minor": amountMinor, "updated_at": time.Now().UTC()}).Error
}

// Save is the atomic upsert: one round trip, conflict on (user_id, tip_date)
// replaces the amount.
func (r *repo) Save(ctx context.Context, db *gorm.DB, record *domain.TipRecord) error {
	record.TipDate = domain.NormalizeDate(record.TipDate)
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "tip_date"}},
			DoUpdates: clause.Assignments(map[string]any{
				"amount_minor": record.AmountMinor,
				"updated_at":   time.Now().UTC(),
			}),
		}).
		Create(record).Error
}

func (r *repo) Exists(ctx context.Context, db *gorm.DB, userID snowflake.ID, date time.Time) (bool, error) {
	count, err := r.CountByDate(ctx, db, userID, date)
	return count > 0, err
}

func (r *repo) UpdateAmountByDate(ctx context.Context, db *gorm.DB, userID snowflake.ID, date time.Time, amountMinor int64) error {
	return db.WithContext(ctx).
		Model(&domain.TipRecord{}).
		Where("user_id = ? AND tip_date = ?", userID, domain.NormalizeDate(date)).
		Updates(map[string]any{"amount_minor": amountMinor, "updated_at": time.Now().UTC()}).Error
}

func (r *repo) CountByDate(ctx context.Context, db *gorm.DB, userID snowflake.ID, date time.Time) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.TipRecord{}).
		Where("user_id = ? AND tip_date = ?", userID, domain.NormalizeDate(date)).
		Count(&count).Error
	return count, err
}

func (r *repo) List(ctx context.Context, db *gorm.DB, userID snowflake.ID, filter domain.ListFilter, page pagination.Pagination) ([]*domain.TipRecord, error) {
	var records []*domain.TipRecord
	stmt := db.WithContext(ctx).
		Model(&domain.TipRecord{}).
		Where("user_id = ?", userID)
	if filter.From != nil {
		stmt = stmt.Where("tip_date >= ?", domain.NormalizeDate(*filter.From))
	}
	if filter.To != nil {
		stmt = stmt.Where("tip_date <= ?", domain.NormalizeDate(*filter.To))
	}
	stmt = option.ApplyPagination(page, "tip_date").Apply(stmt)
	err := stmt.
		Order("tip_date desc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repo) ListRange(ctx context.Context, db *gorm.DB, userID snowflake.ID, from, to time.Time) ([]*domain.TipRecord, error) {
	var records []*domain.TipRecord
	err := db.WithContext(ctx).
		Model(&domain.TipRecord{}).
		Where("user_id = ? AND tip_date >= ? AND tip_date <= ?",
			userID, domain.NormalizeDate(from), domain.NormalizeDate(to)).
		Order("tip_date asc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repo) DeleteByDate(ctx context.Context, db *gorm.DB, userID snowflake.ID, date time.Time) error {
	return db.WithContext(ctx).
		Where("user_id = ? AND tip_date = ?", userID, domain.NormalizeDate(date)).
		Delete(&domain.TipRecord{}).Error
}
