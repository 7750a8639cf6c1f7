package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/clubreview/club-review-service/models"
	"github.com/clubreview/club-review-service/pkg/apperrors"
)

// Natural-key lookups shared by the services. A missing row comes back as a
// typed NotFound, never as a raw gorm error.

func getUserByUsername(tx *gorm.DB, username string) (*models.User, error) {
	var user models.User
	result := tx.Where("username = ?", username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user", username)
		}
		return nil, apperrors.StoreFailure("get user", result.Error)
	}
	return &user, nil
}

func getClubByName(tx *gorm.DB, name string) (*models.Club, error) {
	var club models.Club
	result := tx.Where("name = ?", name).First(&club)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("club", name)
		}
		return nil, apperrors.StoreFailure("get club", result.Error)
	}
	return &club, nil
}

func getTagByName(tx *gorm.DB, name string) (*models.Tag, error) {
	var tag models.Tag
	result := tx.Where("name = ?", name).First(&tag)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("tag", name)
		}
		return nil, apperrors.StoreFailure("get tag", result.Error)
	}
	return &tag, nil
}

func getReviewByID(tx *gorm.DB, id uint) (*models.Review, error) {
	var review models.Review
	result := tx.First(&review, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("review", formatID(id))
		}
		return nil, apperrors.StoreFailure("get review", result.Error)
	}
	return &review, nil
}

// asInvalidReference converts a NotFound lookup error into InvalidReference
// for relationship operations, where the caller named a nonexistent endpoint.
// Infrastructure errors pass through unchanged so a store fault never turns
// into a client error.
func asInvalidReference(err error, kind, key string) error {
	if apperrors.IsCode(err, apperrors.CodeNotFound) {
		return apperrors.InvalidReference(kind, key)
	}
	return err
}

// findOrCreateTag returns the tag with the given name, creating it when
// absent.
func findOrCreateTag(tx *gorm.DB, name string) (*models.Tag, error) {
	tag, err := getTagByName(tx, name)
	if err == nil {
		return tag, nil
	}
	if !apperrors.IsCode(err, apperrors.CodeNotFound) {
		return nil, err
	}

	tag = &models.Tag{Name: name}
	if result := tx.Create(tag); result.Error != nil {
		return nil, apperrors.StoreFailure("create tag", result.Error)
	}
	return tag, nil
}

// Derived relationship projections used by the response builders.

func favoriteCount(tx *gorm.DB, clubID uint) (int64, error) {
	var count int64
	if err := tx.Model(&models.Favorite{}).Where("club_id = ?", clubID).Count(&count).Error; err != nil {
		return 0, apperrors.StoreFailure("count favorites", err)
	}
	return count, nil
}

func clubTagNames(tx *gorm.DB, clubID uint) ([]string, error) {
	names := make([]string, 0)
	err := tx.Model(&models.Tag{}).
		Joins("JOIN club_tags ON club_tags.tag_id = tags.id").
		Where("club_tags.club_id = ?", clubID).
		Pluck("tags.name", &names).Error
	if err != nil {
		return nil, apperrors.StoreFailure("list club tags", err)
	}
	return names, nil
}

func clubMembers(tx *gorm.DB, clubID uint, roles ...models.MemberRole) ([]models.User, error) {
	users := make([]models.User, 0)
	query := tx.Model(&models.User{}).
		Joins("JOIN memberships ON memberships.user_id = users.id").
		Where("memberships.club_id = ?", clubID)
	if len(roles) > 0 {
		query = query.Where("memberships.role IN ?", roles)
	}
	if err := query.Find(&users).Error; err != nil {
		return nil, apperrors.StoreFailure("list club members", err)
	}
	return users, nil
}

func userClubNames(tx *gorm.DB, userID uint, roles ...models.MemberRole) ([]string, error) {
	names := make([]string, 0)
	query := tx.Model(&models.Club{}).
		Joins("JOIN memberships ON memberships.club_id = clubs.id").
		Where("memberships.user_id = ?", userID)
	if len(roles) > 0 {
		query = query.Where("memberships.role IN ?", roles)
	}
	if err := query.Pluck("clubs.name", &names).Error; err != nil {
		return nil, apperrors.StoreFailure("list user clubs", err)
	}
	return names, nil
}

func userFavoriteNames(tx *gorm.DB, userID uint) ([]string, error) {
	names := make([]string, 0)
	err := tx.Model(&models.Club{}).
		Joins("JOIN favorites ON favorites.club_id = clubs.id").
		Where("favorites.user_id = ?", userID).
		Pluck("clubs.name", &names).Error
	if err != nil {
		return nil, apperrors.StoreFailure("list user favorites", err)
	}
	return names, nil
}

func reviewIDsBy(tx *gorm.DB, column string, id uint) ([]uint, error) {
	ids := make([]uint, 0)
	err := tx.Model(&models.Review{}).
		Where(column+" = ?", id).
		Order("id").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, apperrors.StoreFailure("list reviews", err)
	}
	return ids, nil
}
