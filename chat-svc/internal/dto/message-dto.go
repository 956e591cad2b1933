package dto

import (
	"time"

	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/domain"
)

type SendMessage struct {
	Content string `json:"content" validate:"required,max=5000"`
}

type MessageResponse struct {
	ID         uint      `json:"id"`
	MatchID    uint      `json:"match_id"`
	Sender     uint      `json:"sender"`
	SenderName string    `json:"sender_name"`
	Content    string    `json:"content"`
	SentAt     time.Time `json:"sent_at"`
	IsRead     bool      `json:"is_read"`
}

func NewMessageResponse(m domain.Message) MessageResponse {
	return MessageResponse{
		ID:         m.ID,
		MatchID:    m.MatchID,
		Sender:     m.SenderID,
		SenderName: m.Sender.Name,
		Content:    m.Content,
		SentAt:     m.SentAt,
		IsRead:     m.IsRead,
	}
}

type MarkReadResponse struct {
	Status  string `json:"status"`
	Updated int64  `json:"updated"`
}
