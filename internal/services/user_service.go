package services

import (
	"errors"
	"strings"

	"github.com/thekingpuff/kingpuff-api/internal/models"
	"gorm.io/gorm"
)

// ErrUserExists is returned when registering an email that already has
// an account.
var ErrUserExists = errors.New("user_already_exists")

type UserService interface {
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
}

type userService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) UserService {
	return &userService{db: db}
}

func (s *userService) CreateUser(user *models.User) error {
	user.Correo = strings.ToLower(strings.TrimSpace(user.Correo))

	var existing models.User
	if err := s.db.Where("correo = ?", user.Correo).First(&existing).Error; err == nil {
		return ErrUserExists
	}

	if user.Cart == nil {
		user.Cart = []models.CartItem{}
	}
	return s.db.Create(user).Error
}

func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("correo = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
