package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/clubreview/club-review-service/models"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func writeClubsFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "clubs.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSeedIsIdempotent(t *testing.T) {
	db := setupSeedTestDB(t)
	clubsFile := writeClubsFile(t, `[
		{"code": "chess", "name": "Chess Club", "description": "rooks", "tags": ["Games"]},
		{"code": "go", "name": "Go Club", "description": "stones", "tags": ["Games"]}
	]`)

	require.NoError(t, Seed(db, clubsFile))
	require.NoError(t, Seed(db, clubsFile))

	var users, clubs, tags, links int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Club{}).Count(&clubs).Error)
	require.NoError(t, db.Model(&models.Tag{}).Count(&tags).Error)
	require.NoError(t, db.Model(&models.ClubTag{}).Count(&links).Error)

	assert.Equal(t, int64(1), users)
	assert.Equal(t, int64(2), clubs)
	assert.Equal(t, int64(1), tags)
	assert.Equal(t, int64(2), links)
}

func TestSeedDefaultUserPassword(t *testing.T) {
	db := setupSeedTestDB(t)
	require.NoError(t, Seed(db, ""))

	var user models.User
	require.NoError(t, db.Where("username = ?", "josh").First(&user).Error)
	assert.Equal(t, "josh@upenn.edu", user.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("awooga")))

	cost, err := bcrypt.Cost([]byte(user.Password))
	require.NoError(t, err)
	assert.Equal(t, models.PasswordHashCost, cost)
}

func TestSeedMissingClubsFile(t *testing.T) {
	db := setupSeedTestDB(t)
	err := Seed(db, "does-not-exist.json")
	assert.Error(t, err)
}
