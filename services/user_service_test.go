package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubreview/club-review-service/models"
	"github.com/clubreview/club-review-service/pkg/apperrors"
)

func TestUserService_GetUser(t *testing.T) {
	db := SetupTestDB(t)
	service := NewUserService(db)
	RegisterTestUser(t, db, "alice")

	t.Run("Existing user", func(t *testing.T) {
		user, err := service.GetUser(context.Background(), "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.NotNil(t, user.Favorites)
		assert.Empty(t, user.Favorites)
	})

	t.Run("Unknown user", func(t *testing.T) {
		_, err := service.GetUser(context.Background(), "nobody")
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
	})
}

func TestUserService_UpdateUser(t *testing.T) {
	db := SetupTestDB(t)
	service := NewUserService(db)
	RegisterTestUser(t, db, "alice")
	RegisterTestUser(t, db, "bob")

	t.Run("Partial update", func(t *testing.T) {
		first := "Alicia"
		user, err := service.UpdateUser(context.Background(), "alice", models.UpdateUserRequest{
			FirstName: &first,
		})
		require.NoError(t, err)
		assert.Equal(t, "Alicia", user.FirstName)
		assert.Equal(t, "alice@example.com", user.Email)
	})

	t.Run("Rename onto taken username rejected", func(t *testing.T) {
		taken := "bob"
		_, err := service.UpdateUser(context.Background(), "alice", models.UpdateUserRequest{
			Username: &taken,
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeDuplicateKey, apperrors.CodeOf(err))
	})
}

func TestUserService_Favorites(t *testing.T) {
	db := SetupTestDB(t)
	service := NewUserService(db)
	clubService := NewClubService(db)
	RegisterTestUser(t, db, "alice")
	RegisterTestUser(t, db, "bob")
	CreateTestClub(t, db, "chess", "Chess Club")

	ctx := context.Background()

	t.Run("Add favorite is idempotent", func(t *testing.T) {
		require.NoError(t, service.AddFavorite(ctx, "alice", "Chess Club"))
		require.NoError(t, service.AddFavorite(ctx, "alice", "Chess Club"))

		favorites, err := service.ListFavorites(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, []string{"Chess Club"}, favorites)
	})

	t.Run("Favorite count tracks distinct users", func(t *testing.T) {
		require.NoError(t, service.AddFavorite(ctx, "bob", "Chess Club"))

		club, err := clubService.GetClub(ctx, "Chess Club")
		require.NoError(t, err)
		assert.Equal(t, int64(2), club.FavoriteCount)
	})

	t.Run("Unknown club is an invalid reference", func(t *testing.T) {
		err := service.AddFavorite(ctx, "alice", "Nope")
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeInvalidReference, apperrors.CodeOf(err))
	})

	t.Run("Second removal fails", func(t *testing.T) {
		require.NoError(t, service.RemoveFavorite(ctx, "alice", "Chess Club"))
		err := service.RemoveFavorite(ctx, "alice", "Chess Club")
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeLinkNotFound, apperrors.CodeOf(err))

		club, err := clubService.GetClub(ctx, "Chess Club")
		require.NoError(t, err)
		assert.Equal(t, int64(1), club.FavoriteCount)
	})
}

func TestUserService_RelationshipLookupFaults(t *testing.T) {
	db := SetupTestDB(t)
	service := NewUserService(db)
	RegisterTestUser(t, db, "alice")
	require.NoError(t, db.Exec("DROP TABLE clubs").Error)

	ctx := context.Background()

	t.Run("Add favorite surfaces the store fault", func(t *testing.T) {
		err := service.AddFavorite(ctx, "alice", "Chess Club")
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeStoreFailure, apperrors.CodeOf(err))
	})

	t.Run("Join club surfaces the store fault", func(t *testing.T) {
		err := service.JoinClub(ctx, "alice", "Chess Club")
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeStoreFailure, apperrors.CodeOf(err))
	})
}

func TestUserService_ClubLists(t *testing.T) {
	db := SetupTestDB(t)
	service := NewUserService(db)
	clubService := NewClubService(db)
	RegisterTestUser(t, db, "alice")
	CreateTestClub(t, db, "chess", "Chess Club")
	CreateTestClub(t, db, "go", "Go Club")

	ctx := context.Background()
	require.NoError(t, clubService.AddMember(ctx, "Chess Club", "alice", models.RoleMember))
	require.NoError(t, clubService.AddMember(ctx, "Go Club", "alice", models.RoleOfficer))

	clubs, err := service.ListClubs(ctx, "alice")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Chess Club", "Go Club"}, clubs)

	officerClubs, err := service.ListOfficerClubs(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go Club"}, officerClubs)
}

func TestUserService_JoinAndLeaveClub(t *testing.T) {
	db := SetupTestDB(t)
	service := NewUserService(db)
	RegisterTestUser(t, db, "alice")
	CreateTestClub(t, db, "chess", "Chess Club")

	ctx := context.Background()

	t.Run("Join is idempotent", func(t *testing.T) {
		require.NoError(t, service.JoinClub(ctx, "alice", "Chess Club"))
		require.NoError(t, service.JoinClub(ctx, "alice", "Chess Club"))

		clubs, err := service.ListClubs(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, []string{"Chess Club"}, clubs)
	})

	t.Run("Join unknown club", func(t *testing.T) {
		err := service.JoinClub(ctx, "alice", "Nope")
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeInvalidReference, apperrors.CodeOf(err))
	})

	t.Run("Second leave fails", func(t *testing.T) {
		require.NoError(t, service.LeaveClub(ctx, "alice", "Chess Club"))
		err := service.LeaveClub(ctx, "alice", "Chess Club")
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeLinkNotFound, apperrors.CodeOf(err))
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	db := SetupTestDB(t)
	service := NewUserService(db)
	clubService := NewClubService(db)

	RegisterTestUser(t, db, "alice")
	CreateTestClub(t, db, "chess", "Chess Club")

	ctx := context.Background()
	require.NoError(t, clubService.AddMember(ctx, "Chess Club", "alice", models.RoleMember))
	require.NoError(t, service.AddFavorite(ctx, "alice", "Chess Club"))
	CreateTestReview(t, db, "alice", "Chess Club", 9)

	require.NoError(t, service.DeleteUser(ctx, "alice"))

	t.Run("User is gone", func(t *testing.T) {
		_, err := service.GetUser(ctx, "alice")
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
	})

	t.Run("Club survives with empty sets", func(t *testing.T) {
		club, err := clubService.GetClub(ctx, "Chess Club")
		require.NoError(t, err)
		assert.Empty(t, club.Members)
		assert.Equal(t, int64(0), club.FavoriteCount)
		assert.Empty(t, club.Reviews)
	})

	t.Run("No orphaned relationship rows", func(t *testing.T) {
		var memberships, favorites, reviews int64
		require.NoError(t, db.Model(&models.Membership{}).Count(&memberships).Error)
		require.NoError(t, db.Model(&models.Favorite{}).Count(&favorites).Error)
		require.NoError(t, db.Model(&models.Review{}).Count(&reviews).Error)
		assert.Zero(t, memberships)
		assert.Zero(t, favorites)
		assert.Zero(t, reviews)
	})
}
