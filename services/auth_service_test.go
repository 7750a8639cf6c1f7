package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubreview/club-review-service/models"
	"github.com/clubreview/club-review-service/pkg/apperrors"
)

func TestAuthService_Register(t *testing.T) {
	db := SetupTestDB(t)
	service := NewAuthService(db)

	t.Run("Create valid user", func(t *testing.T) {
		user, err := service.Register(context.Background(), models.RegisterRequest{
			Username:  "josh",
			Email:     "josh@upenn.edu",
			Password:  "awooga",
			FirstName: "Josh",
			LastName:  "Joshua",
		})
		require.NoError(t, err)
		assert.Equal(t, "josh", user.Username)
		assert.NotEqual(t, "awooga", user.Password, "password must be stored hashed")
	})

	t.Run("Missing field", func(t *testing.T) {
		_, err := service.Register(context.Background(), models.RegisterRequest{
			Username: "incomplete",
			Email:    "incomplete@example.com",
			Password: "secret",
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeMissingField, apperrors.CodeOf(err))
	})

	t.Run("Duplicate username", func(t *testing.T) {
		_, err := service.Register(context.Background(), models.RegisterRequest{
			Username:  "josh",
			Email:     "other@upenn.edu",
			Password:  "secret",
			FirstName: "Other",
			LastName:  "Josh",
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeDuplicateKey, apperrors.CodeOf(err))
	})

	t.Run("Duplicate email", func(t *testing.T) {
		_, err := service.Register(context.Background(), models.RegisterRequest{
			Username:  "josh2",
			Email:     "josh@upenn.edu",
			Password:  "secret",
			FirstName: "Josh",
			LastName:  "Two",
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeDuplicateKey, apperrors.CodeOf(err))
	})
}

func TestAuthService_Login(t *testing.T) {
	db := SetupTestDB(t)
	service := NewAuthService(db)

	_, err := service.Register(context.Background(), models.RegisterRequest{
		Username:  "josh",
		Email:     "josh@upenn.edu",
		Password:  "awooga",
		FirstName: "Josh",
		LastName:  "Joshua",
	})
	require.NoError(t, err)

	t.Run("Login with username", func(t *testing.T) {
		user, err := service.Login(context.Background(), models.LoginRequest{
			Identifier: "josh",
			Password:   "awooga",
		})
		require.NoError(t, err)
		assert.Equal(t, "josh@upenn.edu", user.Email)
	})

	t.Run("Login with email", func(t *testing.T) {
		user, err := service.Login(context.Background(), models.LoginRequest{
			Identifier: "josh@upenn.edu",
			Password:   "awooga",
		})
		require.NoError(t, err)
		assert.Equal(t, "josh", user.Username)
	})

	t.Run("Wrong password", func(t *testing.T) {
		_, err := service.Login(context.Background(), models.LoginRequest{
			Identifier: "josh",
			Password:   "wrong",
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeInvalidCredentials, apperrors.CodeOf(err))
	})

	t.Run("Unknown identifier", func(t *testing.T) {
		_, err := service.Login(context.Background(), models.LoginRequest{
			Identifier: "nobody",
			Password:   "awooga",
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeInvalidCredentials, apperrors.CodeOf(err))
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	db := SetupTestDB(t)
	service := NewAuthService(db)
	RegisterTestUser(t, db, "alice")

	require.NoError(t, service.ChangePassword(context.Background(), "alice", "newsecret"))

	t.Run("Old password rejected", func(t *testing.T) {
		_, err := service.Login(context.Background(), models.LoginRequest{
			Identifier: "alice",
			Password:   "hunter22",
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeInvalidCredentials, apperrors.CodeOf(err))
	})

	t.Run("New password accepted", func(t *testing.T) {
		_, err := service.Login(context.Background(), models.LoginRequest{
			Identifier: "alice",
			Password:   "newsecret",
		})
		require.NoError(t, err)
	})

	t.Run("Unknown user", func(t *testing.T) {
		err := service.ChangePassword(context.Background(), "nobody", "whatever")
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
	})
}
