package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubreview/club-review-service/models"
	"github.com/clubreview/club-review-service/pkg/apperrors"
)

func TestReviewService_CreateReview(t *testing.T) {
	db := SetupTestDB(t)
	service := NewReviewService(db)
	RegisterTestUser(t, db, "alice")
	CreateTestClub(t, db, "chess", "Chess Club")

	ctx := context.Background()

	t.Run("Boundary ratings are accepted", func(t *testing.T) {
		for _, rating := range []int{0, 10} {
			r := rating
			review, err := service.CreateReview(ctx, models.CreateReviewRequest{
				Title:    "boundary",
				Rating:   &r,
				Username: "alice",
				ClubName: "Chess Club",
			})
			require.NoError(t, err)
			assert.Equal(t, rating, review.Rating)
		}
	})

	t.Run("Out of range ratings are rejected", func(t *testing.T) {
		for _, rating := range []int{-1, 11} {
			r := rating
			_, err := service.CreateReview(ctx, models.CreateReviewRequest{
				Title:    "bad",
				Rating:   &r,
				Username: "alice",
				ClubName: "Chess Club",
			})
			require.Error(t, err)
			assert.Equal(t, apperrors.CodeInvalidRating, apperrors.CodeOf(err))
		}
	})

	t.Run("Missing rating", func(t *testing.T) {
		_, err := service.CreateReview(ctx, models.CreateReviewRequest{
			Title:    "no rating",
			Username: "alice",
			ClubName: "Chess Club",
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeMissingField, apperrors.CodeOf(err))
	})

	t.Run("Omitted description defaults to empty string", func(t *testing.T) {
		r := 5
		review, err := service.CreateReview(ctx, models.CreateReviewRequest{
			Title:    "terse",
			Rating:   &r,
			Username: "alice",
			ClubName: "Chess Club",
		})
		require.NoError(t, err)
		assert.Equal(t, "", review.Description)
	})

	t.Run("Unknown user", func(t *testing.T) {
		r := 5
		_, err := service.CreateReview(ctx, models.CreateReviewRequest{
			Title:    "ghost",
			Rating:   &r,
			Username: "nobody",
			ClubName: "Chess Club",
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeInvalidReference, apperrors.CodeOf(err))
	})

	t.Run("Club lookup fault keeps store failure", func(t *testing.T) {
		faultDB := SetupTestDB(t)
		faultService := NewReviewService(faultDB)
		RegisterTestUser(t, faultDB, "carol")
		require.NoError(t, faultDB.Exec("DROP TABLE clubs").Error)

		r := 5
		_, err := faultService.CreateReview(context.Background(), models.CreateReviewRequest{
			Title:    "fault",
			Rating:   &r,
			Username: "carol",
			ClubName: "Chess Club",
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeStoreFailure, apperrors.CodeOf(err))
	})

	t.Run("Unknown club", func(t *testing.T) {
		r := 5
		_, err := service.CreateReview(ctx, models.CreateReviewRequest{
			Title:    "ghost",
			Rating:   &r,
			Username: "alice",
			ClubName: "Nope",
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeInvalidReference, apperrors.CodeOf(err))
	})
}

func TestReviewService_UpdateReview(t *testing.T) {
	db := SetupTestDB(t)
	service := NewReviewService(db)
	RegisterTestUser(t, db, "alice")
	CreateTestClub(t, db, "chess", "Chess Club")
	review := CreateTestReview(t, db, "alice", "Chess Club", 6)

	ctx := context.Background()

	t.Run("Partial update keeps other fields", func(t *testing.T) {
		rating := 8
		updated, err := service.UpdateReview(ctx, review.ID, models.UpdateReviewRequest{
			Rating: &rating,
		})
		require.NoError(t, err)
		assert.Equal(t, 8, updated.Rating)
		assert.Equal(t, "test review", updated.Title)
		assert.Equal(t, "alice", updated.User)
		assert.Equal(t, "Chess Club", updated.Club)
	})

	t.Run("Out of range rating rejected", func(t *testing.T) {
		rating := 11
		_, err := service.UpdateReview(ctx, review.ID, models.UpdateReviewRequest{Rating: &rating})
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeInvalidRating, apperrors.CodeOf(err))
	})

	t.Run("Unknown review", func(t *testing.T) {
		_, err := service.UpdateReview(ctx, 9999, models.UpdateReviewRequest{})
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
	})
}

func TestReviewService_DeleteUserReview(t *testing.T) {
	db := SetupTestDB(t)
	service := NewReviewService(db)
	RegisterTestUser(t, db, "alice")
	RegisterTestUser(t, db, "bob")
	CreateTestClub(t, db, "chess", "Chess Club")
	review := CreateTestReview(t, db, "alice", "Chess Club", 6)

	ctx := context.Background()

	t.Run("Deleting someone else's review is forbidden", func(t *testing.T) {
		err := service.DeleteUserReview(ctx, "bob", review.ID)
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeForbidden, apperrors.CodeOf(err))

		_, err = service.GetReview(ctx, review.ID)
		require.NoError(t, err)
	})

	t.Run("Owner can delete", func(t *testing.T) {
		require.NoError(t, service.DeleteUserReview(ctx, "alice", review.ID))
		_, err := service.GetReview(ctx, review.ID)
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
	})
}

func TestReviewService_DeleteClubReview(t *testing.T) {
	db := SetupTestDB(t)
	service := NewReviewService(db)
	RegisterTestUser(t, db, "alice")
	CreateTestClub(t, db, "chess", "Chess Club")
	CreateTestClub(t, db, "go", "Go Club")
	review := CreateTestReview(t, db, "alice", "Chess Club", 6)

	ctx := context.Background()

	t.Run("Wrong club is forbidden", func(t *testing.T) {
		err := service.DeleteClubReview(ctx, "Go Club", review.ID)
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeForbidden, apperrors.CodeOf(err))
	})

	t.Run("Owning club can delete", func(t *testing.T) {
		require.NoError(t, service.DeleteClubReview(ctx, "Chess Club", review.ID))
		_, err := service.GetReview(ctx, review.ID)
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
	})
}

func TestReviewService_Listings(t *testing.T) {
	db := SetupTestDB(t)
	service := NewReviewService(db)
	RegisterTestUser(t, db, "alice")
	RegisterTestUser(t, db, "bob")
	CreateTestClub(t, db, "chess", "Chess Club")
	CreateTestClub(t, db, "go", "Go Club")

	first := CreateTestReview(t, db, "alice", "Chess Club", 3)
	second := CreateTestReview(t, db, "bob", "Chess Club", 7)
	CreateTestReview(t, db, "alice", "Go Club", 9)

	ctx := context.Background()

	t.Run("By club", func(t *testing.T) {
		reviews, err := service.ListByClub(ctx, "Chess Club")
		require.NoError(t, err)
		require.Len(t, reviews, 2)
		assert.Equal(t, first.ID, reviews[0].ID)
		assert.Equal(t, second.ID, reviews[1].ID)
	})

	t.Run("By user", func(t *testing.T) {
		reviews, err := service.ListByUser(ctx, "alice")
		require.NoError(t, err)
		assert.Len(t, reviews, 2)
	})
}
