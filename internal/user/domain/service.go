package domain

import (
	"context"
	"errors"
)

type CreateUserRequest struct {
	Email       string
	DisplayName string
}

type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (*User, error)
	GetByToken(ctx context.Context, token string) (*User, error)
	SetPremiumByEmail(ctx context.Context, email string, premium bool) (*User, error)
}

var (
	ErrInvalidEmail = errors.New("invalid_email")
	ErrNotFound     = errors.New("not_found")
)
