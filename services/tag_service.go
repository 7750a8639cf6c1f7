package services

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"github.com/clubreview/club-review-service/models"
	"github.com/clubreview/club-review-service/pkg/apperrors"
)

// TagService handles the tag catalog. Tag<->club links are managed from the
// club side; deleting a tag detaches it everywhere.
type TagService struct {
	db *gorm.DB
}

// NewTagService creates a new tag service instance
func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

// GetTags returns all tags with their derived club counts.
func (s *TagService) GetTags(ctx context.Context) ([]models.TagResponse, error) {
	tx := s.db.WithContext(ctx)

	var tags []models.Tag
	if err := tx.Order("name").Find(&tags).Error; err != nil {
		return nil, apperrors.StoreFailure("list tags", err)
	}

	responses := make([]models.TagResponse, 0, len(tags))
	for i := range tags {
		resp, err := buildTagResponse(tx, &tags[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

// GetTag returns a single tag by name.
func (s *TagService) GetTag(ctx context.Context, name string) (*models.TagResponse, error) {
	tx := s.db.WithContext(ctx)
	tag, err := getTagByName(tx, name)
	if err != nil {
		return nil, err
	}
	return buildTagResponse(tx, tag)
}

// CreateTag adds a tag to the catalog. The name must be unique.
func (s *TagService) CreateTag(ctx context.Context, req models.CreateTagRequest) (*models.TagResponse, error) {
	if req.Name == "" {
		return nil, apperrors.MissingField("name")
	}

	tag := &models.Tag{Name: req.Name}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Tag{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
			return apperrors.StoreFailure("check tag name", err)
		}
		if count > 0 {
			return apperrors.DuplicateKey("tag", req.Name)
		}
		if err := tx.Create(tag).Error; err != nil {
			return apperrors.StoreFailure("create tag", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Created tag", "name", tag.Name)
	return buildTagResponse(s.db.WithContext(ctx), tag)
}

// UpdateTag renames a tag. Clubs tagged with it follow the rename.
func (s *TagService) UpdateTag(ctx context.Context, name string, req models.UpdateTagRequest) (*models.TagResponse, error) {
	var updated *models.Tag
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tag, err := getTagByName(tx, name)
		if err != nil {
			return err
		}

		if req.Name != nil && *req.Name != tag.Name {
			if *req.Name == "" {
				return apperrors.MissingField("name")
			}
			var count int64
			if err := tx.Model(&models.Tag{}).Where("name = ?", *req.Name).Count(&count).Error; err != nil {
				return apperrors.StoreFailure("check tag name", err)
			}
			if count > 0 {
				return apperrors.DuplicateKey("tag", *req.Name)
			}
			if err := tx.Model(tag).Update("name", *req.Name).Error; err != nil {
				return apperrors.StoreFailure("update tag", err)
			}
			if err := tx.First(tag, tag.ID).Error; err != nil {
				return apperrors.StoreFailure("reload tag", err)
			}
		}
		updated = tag
		return nil
	})
	if err != nil {
		return nil, err
	}

	return buildTagResponse(s.db.WithContext(ctx), updated)
}

// DeleteTag removes a tag and detaches it from every club.
func (s *TagService) DeleteTag(ctx context.Context, name string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tag, err := getTagByName(tx, name)
		if err != nil {
			return err
		}

		if err := tx.Where("tag_id = ?", tag.ID).Delete(&models.ClubTag{}).Error; err != nil {
			return apperrors.StoreFailure("detach tag", err)
		}
		if err := tx.Delete(tag).Error; err != nil {
			return apperrors.StoreFailure("delete tag", err)
		}

		slog.Info("Deleted tag", "name", name)
		return nil
	})
}

// buildTagResponse resolves a tag's club set into the API view.
func buildTagResponse(tx *gorm.DB, tag *models.Tag) (*models.TagResponse, error) {
	names := make([]string, 0)
	err := tx.Model(&models.Club{}).
		Joins("JOIN club_tags ON club_tags.club_id = clubs.id").
		Where("club_tags.tag_id = ?", tag.ID).
		Order("clubs.name").
		Pluck("clubs.name", &names).Error
	if err != nil {
		return nil, apperrors.StoreFailure("list tagged clubs", err)
	}

	return &models.TagResponse{
		Name:             tag.Name,
		TaggedClubsCount: int64(len(names)),
		TaggedClubs:      names,
	}, nil
}
