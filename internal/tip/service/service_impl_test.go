package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/tipfolio/internal/clock"
	"github.com/smallbiznis/tipfolio/internal/tip/domain"
	"github.com/smallbiznis/tipfolio/internal/tip/repository"
	"github.com/smallbiznis/tipfolio/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupService(t *testing.T, now time.Time) (domain.Service, *gorm.DB, snowflake.ID) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.TipRecord{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(conn, repository.Provide(), node, clock.NewFakeClock(now))
	return svc, conn, node.Generate()
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRecordAndOverwrite(t *testing.T) {
	now := day(2024, time.March, 11)
	svc, conn, userID := setupService(t, now)

	first, err := svc.Record(context.Background(), domain.RecordRequest{
		UserID: userID, Date: day(2024, time.March, 5), AmountMinor: 12000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12000), first.AmountMinor)

	second, err := svc.Record(context.Background(), domain.RecordRequest{
		UserID: userID, Date: day(2024, time.March, 5), AmountMinor: 9500,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9500), second.AmountMinor)

	var count int64
	require.NoError(t, conn.Model(&domain.TipRecord{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRecordRejectsNegativeAmount(t *testing.T) {
	now := day(2024, time.March, 11)
	svc, _, userID := setupService(t, now)

	_, err := svc.Record(context.Background(), domain.RecordRequest{
		UserID: userID, Date: day(2024, time.March, 5), AmountMinor: -100,
	})
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)
}

func TestRecordRejectsFutureDate(t *testing.T) {
	now := day(2024, time.March, 11)
	svc, _, userID := setupService(t, now)

	_, err := svc.Record(context.Background(), domain.RecordRequest{
		UserID: userID, Date: day(2024, time.March, 12), AmountMinor: 100,
	})
	assert.ErrorIs(t, err, domain.ErrFutureDate)

	// Today is allowed.
	_, err = svc.Record(context.Background(), domain.RecordRequest{
		UserID: userID, Date: now, AmountMinor: 100,
	})
	assert.NoError(t, err)
}

func TestListNewestFirstWithRange(t *testing.T) {
	now := day(2024, time.March, 11)
	svc, _, userID := setupService(t, now)

	for d := 1; d <= 5; d++ {
		_, err := svc.Record(context.Background(), domain.RecordRequest{
			UserID: userID, Date: day(2024, time.March, d), AmountMinor: int64(d * 1000),
		})
		require.NoError(t, err)
	}

	from := day(2024, time.March, 2)
	to := day(2024, time.March, 4)
	resp, err := svc.List(context.Background(), domain.ListRequest{
		UserID: userID, From: &from, To: &to,
	})
	require.NoError(t, err)

	require.Len(t, resp.Records, 3)
	assert.Equal(t, 4, resp.Records[0].TipDate.Day())
	assert.Equal(t, 2, resp.Records[2].TipDate.Day())
	assert.False(t, resp.HasMore)
}

func TestListCursorPagination(t *testing.T) {
	now := day(2024, time.March, 11)
	svc, _, userID := setupService(t, now)

	for d := 1; d <= 5; d++ {
		_, err := svc.Record(context.Background(), domain.RecordRequest{
			UserID: userID, Date: day(2024, time.March, d), AmountMinor: 1000,
		})
		require.NoError(t, err)
	}

	first, err := svc.List(context.Background(), domain.ListRequest{
		UserID: userID, Page: pagination.Pagination{PageSize: 2},
	})
	require.NoError(t, err)
	require.Len(t, first.Records, 2)
	assert.True(t, first.HasMore)
	require.NotEmpty(t, first.NextPageToken)
	assert.Equal(t, 5, first.Records[0].TipDate.Day())

	second, err := svc.List(context.Background(), domain.ListRequest{
		UserID: userID, Page: pagination.Pagination{PageSize: 2, PageToken: first.NextPageToken},
	})
	require.NoError(t, err)
	require.Len(t, second.Records, 2)
	assert.Equal(t, 3, second.Records[0].TipDate.Day())
	assert.Equal(t, 2, second.Records[1].TipDate.Day())
	assert.True(t, second.HasMore)

	third, err := svc.List(context.Background(), domain.ListRequest{
		UserID: userID, Page: pagination.Pagination{PageSize: 2, PageToken: second.NextPageToken},
	})
	require.NoError(t, err)
	require.Len(t, third.Records, 1)
	assert.Equal(t, 1, third.Records[0].TipDate.Day())
	assert.False(t, third.HasMore)
}

func TestDeleteRemovesDay(t *testing.T) {
	now := day(2024, time.March, 11)
	svc, conn, userID := setupService(t, now)

	_, err := svc.Record(context.Background(), domain.RecordRequest{
		UserID: userID, Date: day(2024, time.March, 5), AmountMinor: 1000,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), userID, day(2024, time.March, 5)))

	var count int64
	require.NoError(t, conn.Model(&domain.TipRecord{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestDeleteMissingDay(t *testing.T) {
	now := day(2024, time.March, 11)
	svc, _, userID := setupService(t, now)

	err := svc.Delete(context.Background(), userID, day(2024, time.March, 5))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
