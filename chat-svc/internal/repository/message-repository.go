package repository

import (
	"errors"
	"fmt"
	"log"

	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/domain"
	"gorm.io/gorm"
)

type MessageRepository interface {
	WithTx(tx *gorm.DB) MessageRepository

	Create(m *domain.Message) error
	ListByMatch(matchID uint) ([]domain.Message, error)
	// MarkRead marks every unread message in the match not sent by readerID.
	MarkRead(matchID, readerID uint) (int64, error)
	DeleteByMatchIDs(ids []uint) error
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) WithTx(tx *gorm.DB) MessageRepository {
	return &messageRepository{db: tx}
}

func (r *messageRepository) Create(m *domain.Message) error {
	if m == nil {
		return errors.New("nil message")
	}
	if err := r.db.Omit("Sender").Create(m).Error; err != nil {
		log.Printf("create message error: %v", err)
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (r *messageRepository) ListByMatch(matchID uint) ([]domain.Message, error) {
	var msgs []domain.Message
	err := r.db.Preload("Sender").
		Where("match_id = ?", matchID).
		Order("sent_at ASC").Order("id ASC").
		Find(&msgs).Error
	if err != nil {
		log.Printf("list messages error: %v", err)
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return msgs, nil
}

func (r *messageRepository) MarkRead(matchID, readerID uint) (int64, error) {
	res := r.db.Model(&domain.Message{}).
		Where("match_id = ? AND sender_id <> ? AND is_read = ?", matchID, readerID, false).
		Update("is_read", true)
	if res.Error != nil {
		log.Printf("mark read error: %v", res.Error)
		return 0, fmt.Errorf("failed to mark messages read: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *messageRepository) DeleteByMatchIDs(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.db.Where("match_id IN ?", ids).Delete(&domain.Message{}).Error; err != nil {
		log.Printf("delete messages error: %v", err)
		return fmt.Errorf("failed to delete messages: %w", err)
	}
	return nil
}
