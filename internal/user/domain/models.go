package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// User is an owner account. Premium unlocks projections and the assistant
// and is flipped exclusively by payment-provider webhooks.
type User struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	Email       string       `gorm:"not null;uniqueIndex" json:"email"`
	DisplayName string       `gorm:"not null;default:''" json:"display_name"`
	Premium     bool         `gorm:"not null;default:false" json:"premium"`
	APIToken    string       `gorm:"column:api_token;not null;uniqueIndex" json:"-"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }
