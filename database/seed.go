package database

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clubreview/club-review-service/models"
)

// seedClub is one entry in the clubs seed file.
type seedClub struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// Seed loads the default account and, when a clubs file is configured, the
// club directory. Seeding is idempotent: rows that already exist are left
// untouched, so it is safe to run on every start.
func Seed(db *gorm.DB, clubsFile string) error {
	if err := seedDefaultUser(db); err != nil {
		return err
	}
	if clubsFile == "" {
		return nil
	}
	return SeedClubsFromFile(db, clubsFile)
}

func seedDefaultUser(db *gorm.DB) error {
	var existing models.User
	err := db.Where("username = ?", "josh").First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check default user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("awooga"), models.PasswordHashCost)
	if err != nil {
		return fmt.Errorf("failed to hash default password: %w", err)
	}

	user := models.User{
		Username:  "josh",
		Email:     "josh@upenn.edu",
		Password:  string(hash),
		FirstName: "Josh",
		LastName:  "Joshua",
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to create default user: %w", err)
	}

	slog.Info("Seeded default user", "username", user.Username)
	return nil
}

// SeedClubsFromFile loads clubs from a JSON file of
// [{"code", "name", "description", "tags": [...]}] entries. Tags are
// find-or-created; clubs that already exist by name are skipped.
func SeedClubsFromFile(db *gorm.DB, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read clubs file %s: %w", path, err)
	}

	var clubs []seedClub
	if err := json.Unmarshal(data, &clubs); err != nil {
		return fmt.Errorf("failed to parse clubs file %s: %w", path, err)
	}

	seeded := 0
	for _, entry := range clubs {
		created, err := seedClubEntry(db, entry)
		if err != nil {
			return err
		}
		if created {
			seeded++
		}
	}

	slog.Info("Seeded clubs", "file", path, "created", seeded, "total", len(clubs))
	return nil
}

func seedClubEntry(db *gorm.DB, entry seedClub) (bool, error) {
	var count int64
	if err := db.Model(&models.Club{}).Where("name = ?", entry.Name).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check club %s: %w", entry.Name, err)
	}
	if count > 0 {
		return false, nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		club := models.Club{
			Code:        entry.Code,
			Name:        entry.Name,
			Description: entry.Description,
		}
		if err := tx.Create(&club).Error; err != nil {
			return fmt.Errorf("failed to create club %s: %w", entry.Name, err)
		}

		for _, tagName := range entry.Tags {
			var tag models.Tag
			err := tx.Where("name = ?", tagName).First(&tag).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				tag = models.Tag{Name: tagName}
				err = tx.Create(&tag).Error
			}
			if err != nil {
				return fmt.Errorf("failed to resolve tag %s: %w", tagName, err)
			}

			link := models.ClubTag{ClubID: club.ID, TagID: tag.ID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
				return fmt.Errorf("failed to tag club %s: %w", entry.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
