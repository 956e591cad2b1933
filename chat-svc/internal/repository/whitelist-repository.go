package repository

import (
	"errors"
	"fmt"
	"log"

	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/domain"
	"gorm.io/gorm"
)

type WhitelistRepository interface {
	Add(entry *domain.WhitelistEntry) error
	FindByEmail(email string) (*domain.WhitelistEntry, bool, error)
	List() ([]domain.WhitelistEntry, error)
	DeleteByID(id uint) (bool, error)
}

type whitelistRepository struct {
	db *gorm.DB
}

func NewWhitelistRepository(db *gorm.DB) WhitelistRepository {
	return &whitelistRepository{db: db}
}

func (r *whitelistRepository) Add(entry *domain.WhitelistEntry) error {
	if entry == nil {
		return errors.New("nil whitelist entry")
	}
	entry.Email = domain.NormalizeEmail(entry.Email)
	if err := r.db.Create(entry).Error; err != nil {
		log.Printf("add whitelist error: %v", err)
		return fmt.Errorf("failed to add whitelist entry: %w", err)
	}
	return nil
}

func (r *whitelistRepository) FindByEmail(email string) (*domain.WhitelistEntry, bool, error) {
	entry := &domain.WhitelistEntry{}
	found, err := findOne(r.db.Where("email = ?", domain.NormalizeEmail(email)), entry, "whitelist entry")
	if err != nil || !found {
		return nil, false, err
	}
	return entry, true, nil
}

func (r *whitelistRepository) List() ([]domain.WhitelistEntry, error) {
	var entries []domain.WhitelistEntry
	if err := r.db.Order("added_at DESC").Order("id DESC").Find(&entries).Error; err != nil {
		log.Printf("list whitelist error: %v", err)
		return nil, fmt.Errorf("failed to list whitelist: %w", err)
	}
	return entries, nil
}

func (r *whitelistRepository) DeleteByID(id uint) (bool, error) {
	res := r.db.Where("id = ?", id).Delete(&domain.WhitelistEntry{})
	if res.Error != nil {
		log.Printf("delete whitelist error: %v", res.Error)
		return false, fmt.Errorf("failed to delete whitelist entry: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}
