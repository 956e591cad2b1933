package repository

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/domain"
	"gorm.io/gorm"
)

type InviteCodeRepository interface {
	WithTx(tx *gorm.DB) InviteCodeRepository

	Create(code *domain.InviteCode) error
	FindByCode(code string) (*domain.InviteCode, bool, error)
	List() ([]domain.InviteCode, error)
	Deactivate(id uint) (bool, error)

	// Redeem counts one use if the code is still usable at now.
	Redeem(id uint, now time.Time) (bool, error)
}

type inviteCodeRepository struct {
	db *gorm.DB
}

func NewInviteCodeRepository(db *gorm.DB) InviteCodeRepository {
	return &inviteCodeRepository{db: db}
}

func (r *inviteCodeRepository) WithTx(tx *gorm.DB) InviteCodeRepository {
	return &inviteCodeRepository{db: tx}
}

func (r *inviteCodeRepository) Create(code *domain.InviteCode) error {
	if code == nil {
		return errors.New("nil invite code")
	}
	if err := r.db.Create(code).Error; err != nil {
		log.Printf("create invite code error: %v", err)
		return fmt.Errorf("failed to create invite code: %w", err)
	}
	return nil
}

func (r *inviteCodeRepository) FindByCode(code string) (*domain.InviteCode, bool, error) {
	c := &domain.InviteCode{}
	found, err := findOne(r.db.Where("code = ?", code), c, "invite code")
	if err != nil || !found {
		return nil, false, err
	}
	return c, true, nil
}

func (r *inviteCodeRepository) List() ([]domain.InviteCode, error) {
	var codes []domain.InviteCode
	if err := r.db.Order("created_at DESC").Order("id DESC").Find(&codes).Error; err != nil {
		log.Printf("list invite codes error: %v", err)
		return nil, fmt.Errorf("failed to list invite codes: %w", err)
	}
	return codes, nil
}

func (r *inviteCodeRepository) Deactivate(id uint) (bool, error) {
	res := r.db.Model(&domain.InviteCode{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if res.Error != nil {
		log.Printf("deactivate invite code error: %v", res.Error)
		return false, fmt.Errorf("failed to deactivate invite code: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *inviteCodeRepository) Redeem(id uint, now time.Time) (bool, error) {
	res := r.db.Model(&domain.InviteCode{}).
		Where("id = ? AND is_active = ?", id, true).
		Where("max_uses = 0 OR uses < max_uses").
		Where("expires_at IS NULL OR expires_at > ?", now).
		Update("uses", gorm.Expr("uses + 1"))
	if res.Error != nil {
		log.Printf("redeem invite code error: %v", res.Error)
		return false, fmt.Errorf("failed to redeem invite code: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}
