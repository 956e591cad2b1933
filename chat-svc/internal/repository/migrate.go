package repository

import (
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/domain"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table chat-svc owns. Order matters for the
// foreign keys.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.MemberProfile{},
		&domain.ApplicantProfile{},
		&domain.Swipe{},
		&domain.Match{},
		&domain.Message{},
		&domain.WhitelistEntry{},
		&domain.InviteCode{},
		&domain.AuditLog{},
	)
}
