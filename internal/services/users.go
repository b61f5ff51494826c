package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tribune/internal/models"
	"tribune/internal/utils"
)

// UserService is the credential store: it owns username/password-hash
// persistence and nothing else.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Register hashes the password and persists the new user. Usernames are
// matched exactly (case-sensitive). Returns ErrDuplicateUsername when taken.
func (s *UserService) Register(username, password string) (*models.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username: username,
		Password: hash,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateUsername
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateUsername) || isUniqueViolation(err) {
			// The unique index catches the race two registrations can win.
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &user, nil
}

// Authenticate verifies username/password. Unknown user and wrong password
// both return ErrInvalidCredentials so callers cannot enumerate usernames.
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// GetByID resolves a session user id back to a user.
func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &user, nil
}
