package domain

import "time"

// WhitelistEntry pre-authorises an email to claim the bc_member role. It does not
// approve the profile; that still takes an admin.
type WhitelistEntry struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	Email   string    `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	Name    string    `gorm:"type:varchar(255)" json:"name"`
	AddedBy *uint     `json:"added_by,omitempty"`
	Notes   string    `gorm:"type:text" json:"notes"`
	AddedAt time.Time `gorm:"autoCreateTime" json:"added_at"`
}

func (WhitelistEntry) TableName() string { return "bc_member_whitelist" }
