package domain

import "time"

type InviteCode struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Code      string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"code"`
	CreatedBy uint       `gorm:"not null" json:"created_by"`
	MaxUses   int        `gorm:"not null;default:0" json:"max_uses"` // 0 = unlimited
	Uses      int        `gorm:"not null;default:0" json:"uses"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	IsActive  bool       `gorm:"not null;default:true" json:"is_active"`
	Note      string     `gorm:"type:text" json:"note"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (InviteCode) TableName() string { return "bc_invite_codes" }

func (c *InviteCode) Usable(now time.Time) bool {
	if !c.IsActive {
		return false
	}
	if c.ExpiresAt != nil && now.After(*c.ExpiresAt) {
		return false
	}
	return c.MaxUses == 0 || c.Uses < c.MaxUses
}
