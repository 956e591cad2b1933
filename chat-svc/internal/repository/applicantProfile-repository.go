package repository

import (
	"errors"
	"fmt"
	"log"

	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/domain"
	"gorm.io/gorm"
)

type ApplicantProfileRepository interface {
	WithTx(tx *gorm.DB) ApplicantProfileRepository

	Create(p *domain.ApplicantProfile) error
	Save(p *domain.ApplicantProfile) error
	FindByID(id uint) (*domain.ApplicantProfile, bool, error)
	FindByUserID(userID uint) (*domain.ApplicantProfile, bool, error)
	DeleteByUserID(userID uint) error

	// MarkMatched flips has_been_matched false -> true; false means it was already set.
	MarkMatched(id uint) (bool, error)

	Discoverable(swiperID uint) ([]domain.ApplicantProfile, error)
	List(matched *bool, limit, offset int) ([]domain.ApplicantProfile, error)
	Count(matched *bool) (int64, error)
}

type applicantProfileRepository struct {
	db *gorm.DB
}

func NewApplicantProfileRepository(db *gorm.DB) ApplicantProfileRepository {
	return &applicantProfileRepository{db: db}
}

func (r *applicantProfileRepository) WithTx(tx *gorm.DB) ApplicantProfileRepository {
	return &applicantProfileRepository{db: tx}
}

func (r *applicantProfileRepository) Create(p *domain.ApplicantProfile) error {
	if p == nil {
		return errors.New("nil applicant profile")
	}
	if err := r.db.Omit("User").Create(p).Error; err != nil {
		log.Printf("create applicant profile error: %v", err)
		return fmt.Errorf("failed to create applicant profile: %w", err)
	}
	return nil
}

func (r *applicantProfileRepository) Save(p *domain.ApplicantProfile) error {
	if p == nil {
		return errors.New("nil applicant profile")
	}
	if err := r.db.Omit("User").Save(p).Error; err != nil {
		log.Printf("save applicant profile error: %v", err)
		return fmt.Errorf("failed to save applicant profile: %w", err)
	}
	return nil
}

func (r *applicantProfileRepository) FindByID(id uint) (*domain.ApplicantProfile, bool, error) {
	p := &domain.ApplicantProfile{}
	found, err := findOne(r.db.Preload("User").Where("id = ?", id), p, "applicant profile")
	if err != nil || !found {
		return nil, false, err
	}
	return p, true, nil
}

func (r *applicantProfileRepository) FindByUserID(userID uint) (*domain.ApplicantProfile, bool, error) {
	p := &domain.ApplicantProfile{}
	found, err := findOne(r.db.Preload("User").Where("user_id = ?", userID), p, "applicant profile by user")
	if err != nil || !found {
		return nil, false, err
	}
	return p, true, nil
}

func (r *applicantProfileRepository) DeleteByUserID(userID uint) error {
	if err := r.db.Where("user_id = ?", userID).Delete(&domain.ApplicantProfile{}).Error; err != nil {
		log.Printf("delete applicant profile error: %v", err)
		return fmt.Errorf("failed to delete applicant profile: %w", err)
	}
	return nil
}

func (r *applicantProfileRepository) MarkMatched(id uint) (bool, error) {
	res := r.db.Model(&domain.ApplicantProfile{}).
		Where("id = ? AND has_been_matched = ?", id, false).
		Update("has_been_matched", true)
	if res.Error != nil {
		log.Printf("mark applicant matched error: %v", res.Error)
		return false, fmt.Errorf("failed to mark applicant matched: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *applicantProfileRepository) Discoverable(swiperID uint) ([]domain.ApplicantProfile, error) {
	var profiles []domain.ApplicantProfile

	swiped := r.db.Model(&domain.Swipe{}).Select("target_id").Where("swiper_id = ?", swiperID)
	err := r.db.Preload("User").
		Where("has_been_matched = ? AND user_id <> ?", false, swiperID).
		Where("user_id NOT IN (?)", swiped).
		Order("id ASC").
		Find(&profiles).Error
	if err != nil {
		log.Printf("discover applicant profiles error: %v", err)
		return nil, fmt.Errorf("failed to list applicant profiles: %w", err)
	}
	return profiles, nil
}

func (r *applicantProfileRepository) List(matched *bool, limit, offset int) ([]domain.ApplicantProfile, error) {
	var profiles []domain.ApplicantProfile

	q := r.db.Preload("User").Order("created_at ASC").Order("id ASC")
	if matched != nil {
		q = q.Where("has_been_matched = ?", *matched)
	}
	if err := paginate(q, limit, offset).Find(&profiles).Error; err != nil {
		log.Printf("list applicant profiles error: %v", err)
		return nil, fmt.Errorf("failed to list applicant profiles: %w", err)
	}
	return profiles, nil
}

func (r *applicantProfileRepository) Count(matched *bool) (int64, error) {
	var n int64
	q := r.db.Model(&domain.ApplicantProfile{})
	if matched != nil {
		q = q.Where("has_been_matched = ?", *matched)
	}
	if err := q.Count(&n).Error; err != nil {
		log.Printf("count applicant profiles error: %v", err)
		return 0, fmt.Errorf("failed to count applicant profiles: %w", err)
	}
	return n, nil
}
