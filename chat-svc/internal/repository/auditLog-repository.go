package repository

import (
	"fmt"
	"log"

	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/domain"
	"gorm.io/gorm"
)

type AuditLogRepository interface {
	WithTx(tx *gorm.DB) AuditLogRepository
	Create(entry *domain.AuditLog) error
	List(limit, offset int) ([]domain.AuditLog, error)
}

type auditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) WithTx(tx *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: tx}
}

func (r *auditLogRepository) Create(entry *domain.AuditLog) error {
	if err := r.db.Create(entry).Error; err != nil {
		log.Printf("create audit log error: %v", err)
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

func (r *auditLogRepository) List(limit, offset int) ([]domain.AuditLog, error) {
	var entries []domain.AuditLog
	if err := paginate(r.db.Order("created_at DESC").Order("id DESC"), limit, offset).Find(&entries).Error; err != nil {
		log.Printf("list audit log error: %v", err)
		return nil, fmt.Errorf("failed to list audit log: %w", err)
	}
	return entries, nil
}
