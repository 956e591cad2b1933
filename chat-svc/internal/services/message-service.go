package services

import (
	"strings"

	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/domain"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/dto"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/interfaces"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/repository"
)

type MessageService interface {
	Post(userID, matchID uint, input dto.SendMessage) (*dto.MessageResponse, error)
	List(userID, matchID uint) ([]dto.MessageResponse, error)
	MarkRead(userID, matchID uint) (*dto.MarkReadResponse, error)
}

type messageService struct {
	matches  repository.MatchRepository
	messages repository.MessageRepository
	notifier interfaces.Notifier
}

func NewMessageService(
	matches repository.MatchRepository,
	messages repository.MessageRepository,
	notifier interfaces.Notifier,
) MessageService {
	return &messageService{
		matches:  matches,
		messages: messages,
		notifier: notifier,
	}
}

func (s *messageService) participantMatch(userID, matchID uint) (*domain.Match, error) {
	m, found, err := s.matches.FindByID(matchID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrMatchNotFound
	}
	if !m.IsParticipant(userID) {
		return nil, ErrNotParticipant
	}
	return m, nil
}

func (s *messageService) Post(userID, matchID uint, input dto.SendMessage) (*dto.MessageResponse, error) {
	input.Content = strings.TrimSpace(input.Content)
	if input.Content == "" {
		return nil, ErrEmptyMessage
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	m, err := s.participantMatch(userID, matchID)
	if err != nil {
		return nil, err
	}
	if m.Status != domain.MatchStatusConfirmed {
		return nil, ErrNotConfirmed
	}

	msg := &domain.Message{
		MatchID:  m.ID,
		SenderID: userID,
		Content:  input.Content,
		IsRead:   false,
	}
	if err := s.messages.Create(msg); err != nil {
		return nil, err
	}

	if m.Applicant.UserID == userID {
		msg.Sender = m.Applicant.User
	} else {
		msg.Sender = m.Member.User
	}

	if s.notifier != nil {
		s.notifier.NotifyNewMessage(*m, *msg)
	}

	out := dto.NewMessageResponse(*msg)
	return &out, nil
}

// List is open to participants once the match is confirmed, and stays readable
// after it is completed.
func (s *messageService) List(userID, matchID uint) ([]dto.MessageResponse, error) {
	m, err := s.participantMatch(userID, matchID)
	if err != nil {
		return nil, err
	}
	if m.Status != domain.MatchStatusConfirmed && m.Status != domain.MatchStatusCompleted {
		return nil, ErrNotConfirmed
	}

	msgs, err := s.messages.ListByMatch(m.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MessageResponse, 0, len(msgs))
	for _, msg := range msgs {
		out = append(out, dto.NewMessageResponse(msg))
	}
	return out, nil
}

func (s *messageService) MarkRead(userID, matchID uint) (*dto.MarkReadResponse, error) {
	m, err := s.participantMatch(userID, matchID)
	if err != nil {
		return nil, err
	}

	n, err := s.messages.MarkRead(m.ID, userID)
	if err != nil {
		return nil, err
	}
	return &dto.MarkReadResponse{Status: "ok", Updated: n}, nil
}
