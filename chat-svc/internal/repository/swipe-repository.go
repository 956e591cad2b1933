package repository

import (
	"errors"
	"fmt"
	"log"

	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/domain"
	"gorm.io/gorm"
)

type SwipeRepository interface {
	WithTx(tx *gorm.DB) SwipeRepository

	// Create fails with a duplicate key error when (swiper, target) already exists.
	Create(s *domain.Swipe) error
	HasReciprocalLike(a, b uint) (bool, error)
	LockPair(a, b uint) error
	DeleteByUser(userID uint) error
}

type swipeRepository struct {
	db *gorm.DB
}

func NewSwipeRepository(db *gorm.DB) SwipeRepository {
	return &swipeRepository{db: db}
}

func (r *swipeRepository) WithTx(tx *gorm.DB) SwipeRepository {
	return &swipeRepository{db: tx}
}

func (r *swipeRepository) Create(s *domain.Swipe) error {
	if s == nil {
		return errors.New("nil swipe")
	}
	if err := r.db.Create(s).Error; err != nil {
		log.Printf("create swipe error: %v", err)
		return fmt.Errorf("failed to create swipe: %w", err)
	}
	return nil
}

// HasReciprocalLike reports whether b has liked a.
func (r *swipeRepository) HasReciprocalLike(a, b uint) (bool, error) {
	var n int64
	err := r.db.Model(&domain.Swipe{}).
		Where("swiper_id = ? AND target_id = ? AND direction = ?", b, a, domain.SwipeLike).
		Count(&n).Error
	if err != nil {
		log.Printf("reciprocal like error: %v", err)
		return false, fmt.Errorf("failed to check reciprocal like: %w", err)
	}
	return n > 0, nil
}

// LockPair takes a transaction scoped advisory lock on the unordered pair so two
// mutual likes committing at the same time cannot both miss each other.
// Only postgres has advisory locks; sqlite already serialises writers.
func (r *swipeRepository) LockPair(a, b uint) error {
	if r.db.Dialector.Name() != "postgres" {
		return nil
	}
	if a > b {
		a, b = b, a
	}
	key := int64(a)<<32 | int64(b)
	if err := r.db.Exec("SELECT pg_advisory_xact_lock(?)", key).Error; err != nil {
		log.Printf("swipe pair lock error: %v", err)
		return fmt.Errorf("failed to lock swipe pair: %w", err)
	}
	return nil
}

func (r *swipeRepository) DeleteByUser(userID uint) error {
	err := r.db.Where("swiper_id = ? OR target_id = ?", userID, userID).Delete(&domain.Swipe{}).Error
	if err != nil {
		log.Printf("delete swipes error: %v", err)
		return fmt.Errorf("failed to delete swipes: %w", err)
	}
	return nil
}
