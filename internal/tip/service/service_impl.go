package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tipfolio/internal/clock"
	"github.com/smallbiznis/tipfolio/internal/tip/domain"
	"github.com/smallbiznis/tipfolio/pkg/db"
	"github.com/smallbiznis/tipfolio/pkg/db/pagination"
	"gorm.io/gorm"
)

type service struct {
	db    *gorm.DB
	repo  domain.Repository
	genID *snowflake.Node
	clock clock.Clock
}

func New(conn *gorm.DB, repo domain.Repository, genID *snowflake.Node, clk clock.Clock) domain.Service {
	return &service{db: conn, repo: repo, genID: genID, clock: clk}
}

// Record upserts a single entry through the atomic save path. The import
// pipeline has its own executor with a wider fallback chain; manual entry
// does not need it.
func (s *service) Record(ctx context.Context, req domain.RecordRequest) (*domain.TipRecord, error) {
	if req.AmountMinor < 0 {
		return nil, domain.ErrNegativeAmount
	}
	date := domain.NormalizeDate(req.Date)
	if date.After(domain.NormalizeDate(s.clock.Now())) {
		return nil, domain.ErrFutureDate
	}

	now := time.Now().UTC()
	record := &domain.TipRecord{
		ID:          s.genID.Generate(),
		UserID:      req.UserID,
		TipDate:     date,
		AmountMinor: req.AmountMinor,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Save(ctx, s.db, record); err != nil {
		if !db.IsDuplicateKeyErr(err) {
			return nil, err
		}
		// Conflict raced past the ON CONFLICT clause; the keyed update settles it.
		if err := s.repo.UpdateAmountByDate(ctx, s.db, req.UserID, date, req.AmountMinor); err != nil {
			return nil, err
		}
	}

	return s.repo.FindByDate(ctx, s.db, req.UserID, date)
}

func (s *service) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	records, err := s.repo.List(ctx, s.db, req.UserID, domain.ListFilter{
		From: req.From,
		To:   req.To,
	}, req.Page)
	if err != nil {
		return domain.ListResponse{}, err
	}

	size := req.Page.PageSize
	if size <= 0 {
		size = 50
	}
	records, pageInfo := pagination.BuildCursorPageInfo(records, size, func(r *domain.TipRecord) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{Date: domain.DateISO(r.TipDate)})
		return token
	})

	return domain.ListResponse{
		PageInfo: *pageInfo,
		Records:  records,
	}, nil
}

func (s *service) Delete(ctx context.Context, userID snowflake.ID, date time.Time) error {
	existing, err := s.repo.FindByDate(ctx, s.db, userID, date)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	return s.repo.DeleteByDate(ctx, s.db, userID, date)
}
