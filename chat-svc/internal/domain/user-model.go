package domain

import (
	"strings"
	"time"
)

const (
	UserTypeApplicant = "applicant"
	UserTypeBCMember  = "bc_member"
)

type User struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Email             string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash      string    `json:"-"` // admin login only
	GoogleSub         *string   `gorm:"uniqueIndex" json:"-"`
	Name              string    `gorm:"type:varchar(255)" json:"name"`
	PhotoURL          string    `gorm:"type:varchar(500)" json:"photo_url"`
	UserType          string    `gorm:"type:varchar(20);index" json:"user_type"` // applicant | bc_member | ""
	HasCompletedSetup bool      `gorm:"not null;default:false" json:"has_completed_setup"`
	IsStaff           bool      `gorm:"not null;default:false" json:"is_staff"`
	DateJoined        time.Time `gorm:"autoCreateTime" json:"date_joined"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "bc_users" }

func (u *User) IsApplicant() bool { return u.UserType == UserTypeApplicant }

func (u *User) IsBCMember() bool { return u.UserType == UserTypeBCMember }

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
