package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/smallbiznis/tipfolio/internal/user/domain"
	"github.com/smallbiznis/tipfolio/pkg/log"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type service struct {
	db    *gorm.DB
	repo  domain.Repository
	genID *snowflake.Node
}

func New(db *gorm.DB, repo domain.Repository, genID *snowflake.Node) domain.Service {
	return &service{db: db, repo: repo, genID: genID}
}

func (s *service) Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidEmail
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:          s.genID.Generate(),
		Email:       email,
		DisplayName: strings.TrimSpace(req.DisplayName),
		APIToken:    uuid.NewString(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, s.db, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) GetByToken(ctx context.Context, token string) (*domain.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.ErrNotFound
	}
	user, err := s.repo.FindByToken(ctx, s.db, token)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (s *service) SetPremiumByEmail(ctx context.Context, email string, premium bool) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.repo.FindByEmail(ctx, s.db, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if user.Premium == premium {
		return user, nil
	}
	if err := s.repo.UpdatePremium(ctx, s.db, user.ID, premium); err != nil {
		return nil, err
	}
	user.Premium = premium

	log.L(ctx).Info("premium flag updated",
		zap.String("user_id", user.ID.String()),
		zap.Bool("premium", premium),
	)
	return user, nil
}
