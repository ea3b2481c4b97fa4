package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, user *User) error
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*User, error)
	FindByToken(ctx context.Context, db *gorm.DB, token string) (*User, error)
	UpdatePremium(ctx context.Context, db *gorm.DB, id snowflake.ID, premium bool) error
}
