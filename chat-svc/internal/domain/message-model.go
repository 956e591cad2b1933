package domain

import "time"

type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MatchID   uint      `gorm:"not null;index" json:"match_id"`
	SenderID  uint      `gorm:"not null;index" json:"sender"`
	Sender    User      `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"-"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	SentAt    time.Time `gorm:"autoCreateTime;index" json:"sent_at"`
	IsRead    bool      `gorm:"not null;default:false" json:"is_read"`
}

func (Message) TableName() string { return "bc_messages" }
