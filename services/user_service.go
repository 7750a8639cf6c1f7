package services

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clubreview/club-review-service/models"
	"github.com/clubreview/club-review-service/pkg/apperrors"
)

// UserService handles user accounts and the user side of the relationship
// sets (favorites, memberships).
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a new user service instance
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// GetUsers returns all users with their relationship sets resolved.
func (s *UserService) GetUsers(ctx context.Context) ([]models.UserResponse, error) {
	tx := s.db.WithContext(ctx)

	var users []models.User
	if err := tx.Order("username").Find(&users).Error; err != nil {
		return nil, apperrors.StoreFailure("list users", err)
	}

	responses := make([]models.UserResponse, 0, len(users))
	for i := range users {
		resp, err := buildUserResponse(tx, &users[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

// GetUser returns a single user by username.
func (s *UserService) GetUser(ctx context.Context, username string) (*models.UserResponse, error) {
	tx := s.db.WithContext(ctx)
	user, err := getUserByUsername(tx, username)
	if err != nil {
		return nil, err
	}
	return buildUserResponse(tx, user)
}

// UpdateUser applies a partial update to the user's profile fields. Absent
// fields keep their current values.
func (s *UserService) UpdateUser(ctx context.Context, username string, req models.UpdateUserRequest) (*models.UserResponse, error) {
	var updated *models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := getUserByUsername(tx, username)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if req.Username != nil && *req.Username != user.Username {
			var count int64
			if err := tx.Model(&models.User{}).Where("username = ?", *req.Username).Count(&count).Error; err != nil {
				return apperrors.StoreFailure("check username", err)
			}
			if count > 0 {
				return apperrors.DuplicateKey("username", *req.Username)
			}
			updates["username"] = *req.Username
		}
		if req.Email != nil && *req.Email != user.Email {
			var count int64
			if err := tx.Model(&models.User{}).Where("email = ?", *req.Email).Count(&count).Error; err != nil {
				return apperrors.StoreFailure("check email", err)
			}
			if count > 0 {
				return apperrors.DuplicateKey("email", *req.Email)
			}
			updates["email"] = *req.Email
		}
		if req.FirstName != nil {
			updates["first_name"] = *req.FirstName
		}
		if req.LastName != nil {
			updates["last_name"] = *req.LastName
		}

		if len(updates) > 0 {
			if err := tx.Model(user).Updates(updates).Error; err != nil {
				return apperrors.StoreFailure("update user", err)
			}
			if err := tx.First(user, user.ID).Error; err != nil {
				return apperrors.StoreFailure("reload user", err)
			}
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	tx := s.db.WithContext(ctx)
	return buildUserResponse(tx, updated)
}

// DeleteUser removes a user and every relationship row that references it.
// No membership, favorite or review may survive its user.
func (s *UserService) DeleteUser(ctx context.Context, username string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := getUserByUsername(tx, username)
		if err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Membership{}).Error; err != nil {
			return apperrors.StoreFailure("delete memberships", err)
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Favorite{}).Error; err != nil {
			return apperrors.StoreFailure("delete favorites", err)
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Review{}).Error; err != nil {
			return apperrors.StoreFailure("delete reviews", err)
		}
		if err := tx.Delete(user).Error; err != nil {
			return apperrors.StoreFailure("delete user", err)
		}

		slog.Info("Deleted user", "username", username)
		return nil
	})
}

// ListFavorites returns the names of the clubs the user has favorited.
func (s *UserService) ListFavorites(ctx context.Context, username string) ([]string, error) {
	tx := s.db.WithContext(ctx)
	user, err := getUserByUsername(tx, username)
	if err != nil {
		return nil, err
	}
	return userFavoriteNames(tx, user.ID)
}

// AddFavorite marks a club as one of the user's favorites. Adding a club
// that is already favorited is a no-op.
func (s *UserService) AddFavorite(ctx context.Context, username, clubName string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := getUserByUsername(tx, username)
		if err != nil {
			return err
		}
		club, err := getClubByName(tx, clubName)
		if err != nil {
			return asInvalidReference(err, "club", clubName)
		}

		favorite := models.Favorite{UserID: user.ID, ClubID: club.ID}
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&favorite)
		if result.Error != nil {
			return apperrors.StoreFailure("add favorite", result.Error)
		}
		return nil
	})
}

// RemoveFavorite unmarks a club as a favorite. Removing a link that does not
// exist fails with LinkNotFound.
func (s *UserService) RemoveFavorite(ctx context.Context, username, clubName string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := getUserByUsername(tx, username)
		if err != nil {
			return err
		}
		club, err := getClubByName(tx, clubName)
		if err != nil {
			return asInvalidReference(err, "club", clubName)
		}

		result := tx.Where("user_id = ? AND club_id = ?", user.ID, club.ID).Delete(&models.Favorite{})
		if result.Error != nil {
			return apperrors.StoreFailure("remove favorite", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.LinkNotFound("favorite", username, clubName)
		}
		return nil
	})
}

// JoinClub enrolls the user in a club as a plain member. Joining a club the
// user already belongs to is a no-op.
func (s *UserService) JoinClub(ctx context.Context, username, clubName string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := getUserByUsername(tx, username)
		if err != nil {
			return err
		}
		club, err := getClubByName(tx, clubName)
		if err != nil {
			return asInvalidReference(err, "club", clubName)
		}

		membership := models.Membership{
			UserID:   user.ID,
			ClubID:   club.ID,
			Role:     models.RoleMember,
			JoinedAt: time.Now().UTC(),
		}
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&membership)
		if result.Error != nil {
			return apperrors.StoreFailure("join club", result.Error)
		}
		return nil
	})
}

// LeaveClub withdraws the user from a club. Leaving a club the user is not a
// member of fails with LinkNotFound.
func (s *UserService) LeaveClub(ctx context.Context, username, clubName string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := getUserByUsername(tx, username)
		if err != nil {
			return err
		}
		club, err := getClubByName(tx, clubName)
		if err != nil {
			return asInvalidReference(err, "club", clubName)
		}

		result := tx.Where("user_id = ? AND club_id = ?", user.ID, club.ID).Delete(&models.Membership{})
		if result.Error != nil {
			return apperrors.StoreFailure("leave club", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.LinkNotFound("membership", username, clubName)
		}
		return nil
	})
}

// ListClubs returns the names of the clubs the user belongs to, in any role.
func (s *UserService) ListClubs(ctx context.Context, username string) ([]string, error) {
	tx := s.db.WithContext(ctx)
	user, err := getUserByUsername(tx, username)
	if err != nil {
		return nil, err
	}
	return userClubNames(tx, user.ID)
}

// ListOfficerClubs returns the names of the clubs where the user holds an
// officer or founder role.
func (s *UserService) ListOfficerClubs(ctx context.Context, username string) ([]string, error) {
	tx := s.db.WithContext(ctx)
	user, err := getUserByUsername(tx, username)
	if err != nil {
		return nil, err
	}
	return userClubNames(tx, user.ID, models.RoleOfficer, models.RoleFounder)
}

// buildUserResponse resolves a user's relationship sets into the API view.
func buildUserResponse(tx *gorm.DB, user *models.User) (*models.UserResponse, error) {
	favorites, err := userFavoriteNames(tx, user.ID)
	if err != nil {
		return nil, err
	}
	membership, err := userClubNames(tx, user.ID)
	if err != nil {
		return nil, err
	}
	officership, err := userClubNames(tx, user.ID, models.RoleOfficer, models.RoleFounder)
	if err != nil {
		return nil, err
	}
	reviews, err := reviewIDsBy(tx, "user_id", user.ID)
	if err != nil {
		return nil, err
	}

	return &models.UserResponse{
		Username:    user.Username,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Favorites:   favorites,
		Membership:  membership,
		Officership: officership,
		Reviews:     reviews,
	}, nil
}
