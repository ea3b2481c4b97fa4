// Package domain contains persistence models for daily tip records.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// TipRecord is one owner's gratuity total for one calendar day. At most one
// row exists per (user, date); repeated writes replace the amount, never sum.
type TipRecord struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID      snowflake.ID `gorm:"not null;index;uniqueIndex:tip_records_user_date_key,priority:1" json:"user_id"`
	TipDate     time.Time    `gorm:"column:tip_date;type:date;not null;uniqueIndex:tip_records_user_date_key,priority:2" json:"tip_date"`
	AmountMinor int64        `gorm:"not null" json:"amount_minor"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (TipRecord) TableName() string { return "tip_records" }

// NormalizeDate truncates to a UTC calendar day so date equality is exact
// across drivers.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateISO formats a normalized date in ISO form.
func DateISO(t time.Time) string {
	return t.Format("2006-01-02")
}
