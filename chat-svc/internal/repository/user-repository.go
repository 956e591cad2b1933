package repository

import (
	"errors"
	"fmt"
	"log"

	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/domain"
	"gorm.io/gorm"
)

type UserRepository interface {
	WithTx(tx *gorm.DB) UserRepository

	CreateUser(user *domain.User) (*domain.User, error)
	FindUserByID(userID uint) (*domain.User, bool, error)
	FindUserByEmail(email string) (*domain.User, bool, error)
	FindUserByGoogleSub(sub string) (*domain.User, bool, error)
	SaveUser(user *domain.User) error
	UpdateUser(userID uint, fields map[string]any) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) WithTx(tx *gorm.DB) UserRepository {
	return &userRepository{db: tx}
}

func (r *userRepository) CreateUser(user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("nil user")
	}

	if err := r.db.Create(user).Error; err != nil {
		log.Printf("create user error: %v", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (r *userRepository) FindUserByID(userID uint) (*domain.User, bool, error) {
	user := &domain.User{}
	found, err := findOne(r.db.Where("id = ?", userID), user, "user by id")
	if err != nil || !found {
		return nil, false, err
	}
	return user, true, nil
}

func (r *userRepository) FindUserByEmail(email string) (*domain.User, bool, error) {
	user := &domain.User{}
	found, err := findOne(r.db.Where("email = ?", domain.NormalizeEmail(email)), user, "user by email")
	if err != nil || !found {
		return nil, false, err
	}
	return user, true, nil
}

func (r *userRepository) FindUserByGoogleSub(sub string) (*domain.User, bool, error) {
	user := &domain.User{}
	found, err := findOne(r.db.Where("google_sub = ?", sub), user, "user by google sub")
	if err != nil || !found {
		return nil, false, err
	}
	return user, true, nil
}

func (r *userRepository) SaveUser(user *domain.User) error {
	if user == nil {
		return errors.New("nil user")
	}

	if err := r.db.Save(user).Error; err != nil {
		log.Printf("save user error: %v", err)
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *userRepository) UpdateUser(userID uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	if err := r.db.Model(&domain.User{}).Where("id = ?", userID).Updates(fields).Error; err != nil {
		log.Printf("update user error: %v", err)
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}
