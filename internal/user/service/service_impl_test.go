package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/tipfolio/internal/user/domain"
	"github.com/smallbiznis/tipfolio/internal/user/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupUsers(t *testing.T) domain.Service {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.User{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return New(conn, repository.Provide(), node)
}

func TestCreateNormalizesEmail(t *testing.T) {
	svc := setupUsers(t)

	user, err := svc.Create(context.Background(), domain.CreateUserRequest{
		Email:       "  Sam@Example.COM ",
		DisplayName: " Sam ",
	})
	require.NoError(t, err)

	assert.Equal(t, "sam@example.com", user.Email)
	assert.Equal(t, "Sam", user.DisplayName)
	assert.NotEmpty(t, user.APIToken)
	assert.False(t, user.Premium)
}

func TestCreateInvalidEmail(t *testing.T) {
	svc := setupUsers(t)

	for _, email := range []string{"", "   ", "not-an-email"} {
		_, err := svc.Create(context.Background(), domain.CreateUserRequest{Email: email})
		assert.ErrorIs(t, err, domain.ErrInvalidEmail, "email %q", email)
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	svc := setupUsers(t)

	_, err := svc.Create(context.Background(), domain.CreateUserRequest{Email: "sam@example.com"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), domain.CreateUserRequest{Email: "sam@example.com"})
	assert.Error(t, err)
}

func TestGetByToken(t *testing.T) {
	svc := setupUsers(t)

	created, err := svc.Create(context.Background(), domain.CreateUserRequest{Email: "sam@example.com"})
	require.NoError(t, err)

	found, err := svc.GetByToken(context.Background(), created.APIToken)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.GetByToken(context.Background(), "bogus-token")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.GetByToken(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetPremiumByEmail(t *testing.T) {
	svc := setupUsers(t)

	created, err := svc.Create(context.Background(), domain.CreateUserRequest{Email: "sam@example.com"})
	require.NoError(t, err)

	updated, err := svc.SetPremiumByEmail(context.Background(), "SAM@example.com", true)
	require.NoError(t, err)
	assert.True(t, updated.Premium)

	// Setting the same value again is a no-op.
	again, err := svc.SetPremiumByEmail(context.Background(), "sam@example.com", true)
	require.NoError(t, err)
	assert.True(t, again.Premium)
	assert.Equal(t, created.ID, again.ID)

	_, err = svc.SetPremiumByEmail(context.Background(), "nobody@example.com", true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
