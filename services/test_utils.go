package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/clubreview/club-review-service/database"
	"github.com/clubreview/club-review-service/models"
)

// SetupTestDB creates an in-memory SQLite database for testing and migrates
// the full schema.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

// RegisterTestUser creates a user through the auth service so the stored
// password hash is real.
func RegisterTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user, err := NewAuthService(db).Register(context.Background(), models.RegisterRequest{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "hunter22",
		FirstName: "Test",
		LastName:  "User",
	})
	require.NoError(t, err)
	return user
}

// CreateTestClub creates a club with optional tags.
func CreateTestClub(t *testing.T, db *gorm.DB, code, name string, tags ...string) *models.ClubResponse {
	t.Helper()

	club, err := NewClubService(db).CreateClub(context.Background(), models.CreateClubRequest{
		Code:        code,
		Name:        name,
		Description: "a club for testing",
		Tags:        tags,
	})
	require.NoError(t, err)
	return club
}

// CreateTestReview posts a review tying the given user and club together.
func CreateTestReview(t *testing.T, db *gorm.DB, username, clubName string, rating int) *models.ReviewResponse {
	t.Helper()

	review, err := NewReviewService(db).CreateReview(context.Background(), models.CreateReviewRequest{
		Title:    "test review",
		Rating:   &rating,
		Username: username,
		ClubName: clubName,
	})
	require.NoError(t, err)
	return review
}
