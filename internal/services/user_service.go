package services

import (
	"errors"
	"fmt"

	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/models"
	"gorm.io/gorm"
)

type UserService interface {
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	// GetOrCreateUser returns the user with email, creating it with role when missing
	GetOrCreateUser(email, name, role string) (*models.User, bool, error)
}

type userService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) UserService {
	return &userService{db: db}
}

func (s *userService) CreateUser(user *models.User) error {
	var existing models.User
	if err := s.db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return fmt.Errorf("%w: user %s already exists", models.ErrUniquenessViolation, user.Email)
	}

	return translateError(s.db.Create(user).Error)
}

func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (s *userService) GetOrCreateUser(email, name, role string) (*models.User, bool, error) {
	user, err := s.GetUserByEmail(email)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, false, err
	}

	user = &models.User{Email: email, Name: name, Role: role}
	if err := s.CreateUser(user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}
