package repository

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/domain"
	"gorm.io/gorm"
)

type MemberProfileRepository interface {
	WithTx(tx *gorm.DB) MemberProfileRepository

	Create(p *domain.MemberProfile) error
	Save(p *domain.MemberProfile) error
	FindByID(id uint) (*domain.MemberProfile, bool, error)
	FindByUserID(userID uint) (*domain.MemberProfile, bool, error)
	DeleteByUserID(userID uint) error

	Approve(id uint, adminID uint, at time.Time) (bool, error)

	// Discoverable lists approved profiles the swiper has not swiped on yet.
	Discoverable(swiperID uint) ([]domain.MemberProfile, error)
	List(approved *bool, limit, offset int) ([]domain.MemberProfile, error)
	Count(approved *bool) (int64, error)
}

type memberProfileRepository struct {
	db *gorm.DB
}

func NewMemberProfileRepository(db *gorm.DB) MemberProfileRepository {
	return &memberProfileRepository{db: db}
}

func (r *memberProfileRepository) WithTx(tx *gorm.DB) MemberProfileRepository {
	return &memberProfileRepository{db: tx}
}

func (r *memberProfileRepository) Create(p *domain.MemberProfile) error {
	if p == nil {
		return errors.New("nil member profile")
	}
	if err := r.db.Omit("User").Create(p).Error; err != nil {
		log.Printf("create member profile error: %v", err)
		return fmt.Errorf("failed to create member profile: %w", err)
	}
	return nil
}

func (r *memberProfileRepository) Save(p *domain.MemberProfile) error {
	if p == nil {
		return errors.New("nil member profile")
	}
	if err := r.db.Omit("User").Save(p).Error; err != nil {
		log.Printf("save member profile error: %v", err)
		return fmt.Errorf("failed to save member profile: %w", err)
	}
	return nil
}

func (r *memberProfileRepository) FindByID(id uint) (*domain.MemberProfile, bool, error) {
	p := &domain.MemberProfile{}
	found, err := findOne(r.db.Preload("User").Where("id = ?", id), p, "member profile")
	if err != nil || !found {
		return nil, false, err
	}
	return p, true, nil
}

func (r *memberProfileRepository) FindByUserID(userID uint) (*domain.MemberProfile, bool, error) {
	p := &domain.MemberProfile{}
	found, err := findOne(r.db.Preload("User").Where("user_id = ?", userID), p, "member profile by user")
	if err != nil || !found {
		return nil, false, err
	}
	return p, true, nil
}

func (r *memberProfileRepository) DeleteByUserID(userID uint) error {
	if err := r.db.Where("user_id = ?", userID).Delete(&domain.MemberProfile{}).Error; err != nil {
		log.Printf("delete member profile error: %v", err)
		return fmt.Errorf("failed to delete member profile: %w", err)
	}
	return nil
}

func (r *memberProfileRepository) Approve(id uint, adminID uint, at time.Time) (bool, error) {
	res := r.db.Model(&domain.MemberProfile{}).
		Where("id = ? AND is_approved = ?", id, false).
		Updates(map[string]any{
			"is_approved": true,
			"approved_by": adminID,
			"approved_at": at,
		})
	if res.Error != nil {
		log.Printf("approve member profile error: %v", res.Error)
		return false, fmt.Errorf("failed to approve member profile: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *memberProfileRepository) Discoverable(swiperID uint) ([]domain.MemberProfile, error) {
	var profiles []domain.MemberProfile

	swiped := r.db.Model(&domain.Swipe{}).Select("target_id").Where("swiper_id = ?", swiperID)
	err := r.db.Preload("User").
		Where("is_approved = ? AND user_id <> ?", true, swiperID).
		Where("user_id NOT IN (?)", swiped).
		Order("id ASC").
		Find(&profiles).Error
	if err != nil {
		log.Printf("discover member profiles error: %v", err)
		return nil, fmt.Errorf("failed to list member profiles: %w", err)
	}
	return profiles, nil
}

func (r *memberProfileRepository) List(approved *bool, limit, offset int) ([]domain.MemberProfile, error) {
	var profiles []domain.MemberProfile

	q := r.db.Preload("User").Order("created_at ASC").Order("id ASC")
	if approved != nil {
		q = q.Where("is_approved = ?", *approved)
	}
	if err := paginate(q, limit, offset).Find(&profiles).Error; err != nil {
		log.Printf("list member profiles error: %v", err)
		return nil, fmt.Errorf("failed to list member profiles: %w", err)
	}
	return profiles, nil
}

func (r *memberProfileRepository) Count(approved *bool) (int64, error) {
	var n int64
	q := r.db.Model(&domain.MemberProfile{})
	if approved != nil {
		q = q.Where("is_approved = ?", *approved)
	}
	if err := q.Count(&n).Error; err != nil {
		log.Printf("count member profiles error: %v", err)
		return 0, fmt.Errorf("failed to count member profiles: %w", err)
	}
	return n, nil
}
