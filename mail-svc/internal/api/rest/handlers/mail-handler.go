package handlers

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/SundayYogurt/CoffeeChat-Backend/mail-svc/internal/dto"
	"github.com/SundayYogurt/CoffeeChat-Backend/mail-svc/internal/services"
)

type MailHandler struct {
	MailService *services.MailService
}

func NewMailHandler(ms *services.MailService) *MailHandler {
	return &MailHandler{MailService: ms}
}

// HandleMessage mails one notification event. Unknown event types are skipped so
// newer producers do not wedge the consumer.
func (h *MailHandler) HandleMessage(key, value []byte) error {
	var event dto.NotificationEvent
	if err := json.Unmarshal(value, &event); err != nil {
		log.Printf("invalid event payload: %s\n", value)
		return err
	}
	if event.Type == "" {
		event.Type = string(key)
	}

	log.Printf("event received: type=%s id=%s match=%d recipients=%d",
		event.Type, event.EventID, event.MatchID, len(event.Recipients))

	err := h.MailService.SendNotification(event)
	if errors.Is(err, services.ErrUnknownEvent) {
		log.Printf("skip event %s: %v", event.EventID, err)
		return nil
	}
	return err
}
