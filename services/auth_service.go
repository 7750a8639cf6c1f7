package services

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/clubreview/club-review-service/models"
	"github.com/clubreview/club-review-service/pkg/apperrors"
)

// AuthService handles registration and credential checks.
type AuthService struct {
	db *gorm.DB
}

// NewAuthService creates a new auth service instance
func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// Register creates a new user account. All fields are required; username and
// email must be unique.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	switch {
	case req.Username == "":
		return nil, apperrors.MissingField("username")
	case req.Email == "":
		return nil, apperrors.MissingField("email")
	case req.Password == "":
		return nil, apperrors.MissingField("password")
	case req.FirstName == "":
		return nil, apperrors.MissingField("first_name")
	case req.LastName == "":
		return nil, apperrors.MissingField("last_name")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), models.PasswordHashCost)
	if err != nil {
		return nil, apperrors.StoreFailure("hash password", err)
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  string(hash),
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
			return apperrors.StoreFailure("check username", err)
		}
		if count > 0 {
			return apperrors.DuplicateKey("username", req.Username)
		}
		if err := tx.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
			return apperrors.StoreFailure("check email", err)
		}
		if count > 0 {
			return apperrors.DuplicateKey("email", req.Email)
		}
		if err := tx.Create(user).Error; err != nil {
			return apperrors.StoreFailure("create user", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Registered user", "username", user.Username)
	return user, nil
}

// Login resolves the identifier first as a username, then as an email, and
// verifies the password. Every failure mode returns the same
// InvalidCredentials error so callers cannot probe which part was wrong.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.User, error) {
	if req.Identifier == "" {
		return nil, apperrors.MissingField("identifier")
	}
	if req.Password == "" {
		return nil, apperrors.MissingField("password")
	}

	var user models.User
	result := s.db.WithContext(ctx).Where("username = ?", req.Identifier).First(&user)
	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.StoreFailure("lookup user", result.Error)
		}
		result = s.db.WithContext(ctx).Where("email = ?", req.Identifier).First(&user)
		if result.Error != nil {
			if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return nil, apperrors.StoreFailure("lookup user", result.Error)
			}
			return nil, apperrors.InvalidCredentials()
		}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperrors.InvalidCredentials()
	}

	slog.Info("User logged in", "username", user.Username)
	return &user, nil
}

// ChangePassword replaces the stored hash for the given user.
func (s *AuthService) ChangePassword(ctx context.Context, username, newPassword string) error {
	if newPassword == "" {
		return apperrors.MissingField("password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), models.PasswordHashCost)
	if err != nil {
		return apperrors.StoreFailure("hash password", err)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := getUserByUsername(tx, username)
		if err != nil {
			return err
		}
		if err := tx.Model(user).Update("password", string(hash)).Error; err != nil {
			return apperrors.StoreFailure("update password", err)
		}
		slog.Info("Password changed", "username", username)
		return nil
	})
}
