package services

import (
	"context"
	"log/slog"
	"strconv"

	"gorm.io/gorm"

	"github.com/clubreview/club-review-service/models"
	"github.com/clubreview/club-review-service/pkg/apperrors"
)

// ReviewService handles club reviews. A review's user and club are fixed at
// creation; only title, rating and description can change afterwards.
type ReviewService struct {
	db *gorm.DB
}

// NewReviewService creates a new review service instance
func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// GetReviews returns all reviews ordered by id.
func (s *ReviewService) GetReviews(ctx context.Context) ([]models.ReviewResponse, error) {
	tx := s.db.WithContext(ctx)

	var reviews []models.Review
	if err := tx.Order("id").Find(&reviews).Error; err != nil {
		return nil, apperrors.StoreFailure("list reviews", err)
	}
	return buildReviewResponses(tx, reviews)
}

// GetReview returns a single review by id.
func (s *ReviewService) GetReview(ctx context.Context, id uint) (*models.ReviewResponse, error) {
	tx := s.db.WithContext(ctx)
	review, err := getReviewByID(tx, id)
	if err != nil {
		return nil, err
	}
	return buildReviewResponse(tx, review)
}

// ListByUser returns the reviews written by the given user.
func (s *ReviewService) ListByUser(ctx context.Context, username string) ([]models.ReviewResponse, error) {
	tx := s.db.WithContext(ctx)
	user, err := getUserByUsername(tx, username)
	if err != nil {
		return nil, err
	}

	var reviews []models.Review
	if err := tx.Where("user_id = ?", user.ID).Order("id").Find(&reviews).Error; err != nil {
		return nil, apperrors.StoreFailure("list reviews", err)
	}
	return buildReviewResponses(tx, reviews)
}

// ListByClub returns the reviews posted for the given club.
func (s *ReviewService) ListByClub(ctx context.Context, clubName string) ([]models.ReviewResponse, error) {
	tx := s.db.WithContext(ctx)
	club, err := getClubByName(tx, clubName)
	if err != nil {
		return nil, err
	}

	var reviews []models.Review
	if err := tx.Where("club_id = ?", club.ID).Order("id").Find(&reviews).Error; err != nil {
		return nil, apperrors.StoreFailure("list reviews", err)
	}
	return buildReviewResponses(tx, reviews)
}

// CreateReview posts a review for a club. Title, rating, username and club
// name are required; the rating must be inside the allowed bounds and an
// omitted description is stored as the empty string.
func (s *ReviewService) CreateReview(ctx context.Context, req models.CreateReviewRequest) (*models.ReviewResponse, error) {
	switch {
	case req.Title == "":
		return nil, apperrors.MissingField("title")
	case req.Rating == nil:
		return nil, apperrors.MissingField("rating")
	case req.Username == "":
		return nil, apperrors.MissingField("username")
	case req.ClubName == "":
		return nil, apperrors.MissingField("club_name")
	}
	if !models.ValidRating(*req.Rating) {
		return nil, apperrors.InvalidRating(*req.Rating)
	}

	description := ""
	if req.Description != nil {
		description = *req.Description
	}

	review := &models.Review{
		Title:       req.Title,
		Rating:      *req.Rating,
		Description: description,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := getUserByUsername(tx, req.Username)
		if err != nil {
			return asInvalidReference(err, "user", req.Username)
		}
		club, err := getClubByName(tx, req.ClubName)
		if err != nil {
			return asInvalidReference(err, "club", req.ClubName)
		}

		review.UserID = user.ID
		review.ClubID = club.ID
		if err := tx.Create(review).Error; err != nil {
			return apperrors.StoreFailure("create review", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Created review", "id", review.ID, "club", req.ClubName, "user", req.Username)
	return buildReviewResponse(s.db.WithContext(ctx), review)
}

// UpdateReview applies a partial update to a review's mutable fields. The
// owning user and club never change.
func (s *ReviewService) UpdateReview(ctx context.Context, id uint, req models.UpdateReviewRequest) (*models.ReviewResponse, error) {
	if req.Rating != nil && !models.ValidRating(*req.Rating) {
		return nil, apperrors.InvalidRating(*req.Rating)
	}

	var updated *models.Review
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		review, err := getReviewByID(tx, id)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if req.Title != nil {
			updates["title"] = *req.Title
		}
		if req.Rating != nil {
			updates["rating"] = *req.Rating
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}

		if len(updates) > 0 {
			if err := tx.Model(review).Updates(updates).Error; err != nil {
				return apperrors.StoreFailure("update review", err)
			}
			if err := tx.First(review, review.ID).Error; err != nil {
				return apperrors.StoreFailure("reload review", err)
			}
		}
		updated = review
		return nil
	})
	if err != nil {
		return nil, err
	}

	return buildReviewResponse(s.db.WithContext(ctx), updated)
}

// DeleteReview removes a review by id with no ownership check.
func (s *ReviewService) DeleteReview(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		review, err := getReviewByID(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(review).Error; err != nil {
			return apperrors.StoreFailure("delete review", err)
		}
		slog.Info("Deleted review", "id", id)
		return nil
	})
}

// DeleteUserReview removes a review on behalf of a user. Deleting a review
// the user does not own fails with Forbidden.
func (s *ReviewService) DeleteUserReview(ctx context.Context, username string, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := getUserByUsername(tx, username)
		if err != nil {
			return err
		}
		review, err := getReviewByID(tx, id)
		if err != nil {
			return err
		}
		if review.UserID != user.ID {
			return apperrors.Forbidden("review " + formatID(id) + " does not belong to " + username)
		}
		if err := tx.Delete(review).Error; err != nil {
			return apperrors.StoreFailure("delete review", err)
		}
		slog.Info("Deleted review", "id", id, "user", username)
		return nil
	})
}

// DeleteClubReview removes a review through a club's review list. Deleting a
// review posted for a different club fails with Forbidden.
func (s *ReviewService) DeleteClubReview(ctx context.Context, clubName string, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		club, err := getClubByName(tx, clubName)
		if err != nil {
			return err
		}
		review, err := getReviewByID(tx, id)
		if err != nil {
			return err
		}
		if review.ClubID != club.ID {
			return apperrors.Forbidden("review " + formatID(id) + " was not posted for " + clubName)
		}
		if err := tx.Delete(review).Error; err != nil {
			return apperrors.StoreFailure("delete review", err)
		}
		slog.Info("Deleted review", "id", id, "club", clubName)
		return nil
	})
}

// buildReviewResponse resolves the owning user and club names into the API
// view.
func buildReviewResponse(tx *gorm.DB, review *models.Review) (*models.ReviewResponse, error) {
	var user models.User
	if err := tx.First(&user, review.UserID).Error; err != nil {
		return nil, apperrors.StoreFailure("get review user", err)
	}
	var club models.Club
	if err := tx.First(&club, review.ClubID).Error; err != nil {
		return nil, apperrors.StoreFailure("get review club", err)
	}

	return &models.ReviewResponse{
		ID:          review.ID,
		Title:       review.Title,
		Rating:      review.Rating,
		Description: review.Description,
		User:        user.Username,
		Club:        club.Name,
	}, nil
}

func buildReviewResponses(tx *gorm.DB, reviews []models.Review) ([]models.ReviewResponse, error) {
	responses := make([]models.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		resp, err := buildReviewResponse(tx, &reviews[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
