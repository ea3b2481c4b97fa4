package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tipfolio/pkg/db/pagination"
)

type RecordRequest struct {
	UserID      snowflake.ID
	Date        time.Time
	AmountMinor int64
}

type ListRequest struct {
	UserID snowflake.ID
	From   *time.Time
	To     *time.Time
	Page   pagination.Pagination
}

type ListResponse struct {
	pagination.PageInfo
	Records []*TipRecord `json:"records"`
}

type Service interface {
	Record(ctx context.Context, req RecordRequest) (*TipRecord, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)
	Delete(ctx context.Context, userID snowflake.ID, date time.Time) error
}

var (
	ErrNegativeAmount = errors.New("negative_amount")
	ErrFutureDate     = errors.New("future_date")
	ErrNotFound       = errors.New("not_found")
)
