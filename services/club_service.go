package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clubreview/club-review-service/models"
	"github.com/clubreview/club-review-service/pkg/apperrors"
)

// ClubService handles the club directory and the club side of the
// relationship sets (members, tags).
type ClubService struct {
	db *gorm.DB
}

// NewClubService creates a new club service instance
func NewClubService(db *gorm.DB) *ClubService {
	return &ClubService{db: db}
}

// GetClubs returns all clubs with their relationship sets resolved.
func (s *ClubService) GetClubs(ctx context.Context) ([]models.ClubResponse, error) {
	tx := s.db.WithContext(ctx)

	var clubs []models.Club
	if err := tx.Order("name").Find(&clubs).Error; err != nil {
		return nil, apperrors.StoreFailure("list clubs", err)
	}
	return buildClubResponses(tx, clubs)
}

// GetClub returns a single club by name.
func (s *ClubService) GetClub(ctx context.Context, name string) (*models.ClubResponse, error) {
	tx := s.db.WithContext(ctx)
	club, err := getClubByName(tx, name)
	if err != nil {
		return nil, err
	}
	return buildClubResponse(tx, club)
}

// SearchClubs returns the clubs whose name contains the query string,
// case-insensitively.
func (s *ClubService) SearchClubs(ctx context.Context, query string) ([]models.ClubResponse, error) {
	tx := s.db.WithContext(ctx)

	var clubs []models.Club
	pattern := "%" + strings.ToLower(query) + "%"
	if err := tx.Where("LOWER(name) LIKE ?", pattern).Order("name").Find(&clubs).Error; err != nil {
		return nil, apperrors.StoreFailure("search clubs", err)
	}
	return buildClubResponses(tx, clubs)
}

// CreateClub adds a club to the directory. Code and name must each be unique
// on their own; any listed tags are find-or-created and linked.
func (s *ClubService) CreateClub(ctx context.Context, req models.CreateClubRequest) (*models.ClubResponse, error) {
	if req.Code == "" {
		return nil, apperrors.MissingField("code")
	}
	if req.Name == "" {
		return nil, apperrors.MissingField("name")
	}

	club := &models.Club{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Club{}).Where("code = ?", req.Code).Count(&count).Error; err != nil {
			return apperrors.StoreFailure("check club code", err)
		}
		if count > 0 {
			return apperrors.DuplicateKey("club code", req.Code)
		}
		if err := tx.Model(&models.Club{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
			return apperrors.StoreFailure("check club name", err)
		}
		if count > 0 {
			return apperrors.DuplicateKey("club name", req.Name)
		}
		if err := tx.Create(club).Error; err != nil {
			return apperrors.StoreFailure("create club", err)
		}

		for _, tagName := range req.Tags {
			tag, err := findOrCreateTag(tx, tagName)
			if err != nil {
				return err
			}
			link := models.ClubTag{ClubID: club.ID, TagID: tag.ID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
				return apperrors.StoreFailure("tag club", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Created club", "name", club.Name, "code", club.Code)
	return buildClubResponse(s.db.WithContext(ctx), club)
}

// UpdateClub applies a partial update to a club's own fields. Tags and
// members are managed through their own endpoints.
func (s *ClubService) UpdateClub(ctx context.Context, name string, req models.UpdateClubRequest) (*models.ClubResponse, error) {
	var updated *models.Club
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		club, err := getClubByName(tx, name)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if req.Code != nil && *req.Code != club.Code {
			var count int64
			if err := tx.Model(&models.Club{}).Where("code = ?", *req.Code).Count(&count).Error; err != nil {
				return apperrors.StoreFailure("check club code", err)
			}
			if count > 0 {
				return apperrors.DuplicateKey("club code", *req.Code)
			}
			updates["code"] = *req.Code
		}
		if req.Name != nil && *req.Name != club.Name {
			var count int64
			if err := tx.Model(&models.Club{}).Where("name = ?", *req.Name).Count(&count).Error; err != nil {
				return apperrors.StoreFailure("check club name", err)
			}
			if count > 0 {
				return apperrors.DuplicateKey("club name", *req.Name)
			}
			updates["name"] = *req.Name
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}

		if len(updates) > 0 {
			if err := tx.Model(club).Updates(updates).Error; err != nil {
				return apperrors.StoreFailure("update club", err)
			}
			if err := tx.First(club, club.ID).Error; err != nil {
				return apperrors.StoreFailure("reload club", err)
			}
		}
		updated = club
		return nil
	})
	if err != nil {
		return nil, err
	}

	return buildClubResponse(s.db.WithContext(ctx), updated)
}

// DeleteClub removes a club and every relationship row that references it.
func (s *ClubService) DeleteClub(ctx context.Context, name string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		club, err := getClubByName(tx, name)
		if err != nil {
			return err
		}

		if err := tx.Where("club_id = ?", club.ID).Delete(&models.Membership{}).Error; err != nil {
			return apperrors.StoreFailure("delete memberships", err)
		}
		if err := tx.Where("club_id = ?", club.ID).Delete(&models.Favorite{}).Error; err != nil {
			return apperrors.StoreFailure("delete favorites", err)
		}
		if err := tx.Where("club_id = ?", club.ID).Delete(&models.ClubTag{}).Error; err != nil {
			return apperrors.StoreFailure("delete club tags", err)
		}
		if err := tx.Where("club_id = ?", club.ID).Delete(&models.Review{}).Error; err != nil {
			return apperrors.StoreFailure("delete reviews", err)
		}
		if err := tx.Delete(club).Error; err != nil {
			return apperrors.StoreFailure("delete club", err)
		}

		slog.Info("Deleted club", "name", name)
		return nil
	})
}

// ListTags returns the names of the tags attached to a club.
func (s *ClubService) ListTags(ctx context.Context, clubName string) ([]string, error) {
	tx := s.db.WithContext(ctx)
	club, err := getClubByName(tx, clubName)
	if err != nil {
		return nil, err
	}
	return clubTagNames(tx, club.ID)
}

// AddTag attaches a tag to a club, creating the tag when absent. Attaching a
// tag the club already has is a no-op.
func (s *ClubService) AddTag(ctx context.Context, clubName, tagName string) error {
	if tagName == "" {
		return apperrors.MissingField("name")
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		club, err := getClubByName(tx, clubName)
		if err != nil {
			return err
		}
		tag, err := findOrCreateTag(tx, tagName)
		if err != nil {
			return err
		}

		link := models.ClubTag{ClubID: club.ID, TagID: tag.ID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
			return apperrors.StoreFailure("tag club", err)
		}
		return nil
	})
}

// RemoveTag detaches a tag from a club. Detaching a tag the club does not
// have fails with LinkNotFound.
func (s *ClubService) RemoveTag(ctx context.Context, clubName, tagName string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		club, err := getClubByName(tx, clubName)
		if err != nil {
			return err
		}
		tag, err := getTagByName(tx, tagName)
		if err != nil {
			return asInvalidReference(err, "tag", tagName)
		}

		result := tx.Where("club_id = ? AND tag_id = ?", club.ID, tag.ID).Delete(&models.ClubTag{})
		if result.Error != nil {
			return apperrors.StoreFailure("untag club", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.LinkNotFound("tag", clubName, tagName)
		}
		return nil
	})
}

// ListMembers returns the usernames of a club's members in all roles.
func (s *ClubService) ListMembers(ctx context.Context, clubName string) ([]string, error) {
	return s.memberUsernames(ctx, clubName)
}

// ListOfficers returns the usernames of a club's officers and founders.
func (s *ClubService) ListOfficers(ctx context.Context, clubName string) ([]string, error) {
	return s.memberUsernames(ctx, clubName, models.RoleOfficer, models.RoleFounder)
}

// ListMemberEmails returns the email addresses of a club's members, for
// officer-facing contact lists.
func (s *ClubService) ListMemberEmails(ctx context.Context, clubName string) ([]string, error) {
	tx := s.db.WithContext(ctx)
	club, err := getClubByName(tx, clubName)
	if err != nil {
		return nil, err
	}
	members, err := clubMembers(tx, club.ID)
	if err != nil {
		return nil, err
	}
	emails := make([]string, 0, len(members))
	for i := range members {
		emails = append(emails, members[i].Email)
	}
	return emails, nil
}

func (s *ClubService) memberUsernames(ctx context.Context, clubName string, roles ...models.MemberRole) ([]string, error) {
	tx := s.db.WithContext(ctx)
	club, err := getClubByName(tx, clubName)
	if err != nil {
		return nil, err
	}
	members, err := clubMembers(tx, club.ID, roles...)
	if err != nil {
		return nil, err
	}
	usernames := make([]string, 0, len(members))
	for i := range members {
		usernames = append(usernames, members[i].Username)
	}
	return usernames, nil
}

// AddMember enrolls a user in a club with the given role. Enrolling a user
// who is already a member is a no-op and keeps the original role and join
// date.
func (s *ClubService) AddMember(ctx context.Context, clubName, username string, role models.MemberRole) error {
	if !role.Valid() {
		return apperrors.InvalidReference("role", role.String())
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		club, err := getClubByName(tx, clubName)
		if err != nil {
			return err
		}
		user, err := getUserByUsername(tx, username)
		if err != nil {
			return asInvalidReference(err, "user", username)
		}

		membership := models.Membership{
			UserID:   user.ID,
			ClubID:   club.ID,
			Role:     role,
			JoinedAt: time.Now().UTC(),
		}
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&membership)
		if result.Error != nil {
			return apperrors.StoreFailure("add member", result.Error)
		}
		return nil
	})
}

// RemoveMember withdraws a user from a club. Removing a user who is not a
// member fails with LinkNotFound.
func (s *ClubService) RemoveMember(ctx context.Context, clubName, username string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		club, err := getClubByName(tx, clubName)
		if err != nil {
			return err
		}
		user, err := getUserByUsername(tx, username)
		if err != nil {
			return asInvalidReference(err, "user", username)
		}

		result := tx.Where("club_id = ? AND user_id = ?", club.ID, user.ID).Delete(&models.Membership{})
		if result.Error != nil {
			return apperrors.StoreFailure("remove member", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.LinkNotFound("membership", clubName, username)
		}
		return nil
	})
}

// buildClubResponse resolves a club's relationship sets into the API view.
func buildClubResponse(tx *gorm.DB, club *models.Club) (*models.ClubResponse, error) {
	count, err := favoriteCount(tx, club.ID)
	if err != nil {
		return nil, err
	}
	tags, err := clubTagNames(tx, club.ID)
	if err != nil {
		return nil, err
	}
	members, err := clubMembers(tx, club.ID)
	if err != nil {
		return nil, err
	}
	officers, err := clubMembers(tx, club.ID, models.RoleOfficer, models.RoleFounder)
	if err != nil {
		return nil, err
	}
	reviews, err := reviewIDsBy(tx, "club_id", club.ID)
	if err != nil {
		return nil, err
	}

	memberNames := make([]string, 0, len(members))
	for i := range members {
		memberNames = append(memberNames, members[i].Username)
	}
	officerNames := make([]string, 0, len(officers))
	for i := range officers {
		officerNames = append(officerNames, officers[i].Username)
	}

	return &models.ClubResponse{
		Code:          club.Code,
		Name:          club.Name,
		Description:   club.Description,
		FavoriteCount: count,
		Tags:          tags,
		Members:       memberNames,
		Officers:      officerNames,
		Reviews:       reviews,
	}, nil
}

func buildClubResponses(tx *gorm.DB, clubs []models.Club) ([]models.ClubResponse, error) {
	responses := make([]models.ClubResponse, 0, len(clubs))
	for i := range clubs {
		resp, err := buildClubResponse(tx, &clubs[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}
