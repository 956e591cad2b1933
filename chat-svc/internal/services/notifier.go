package services

import (
	"encoding/json"
	"log"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/domain"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/dto"
	"github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/interfaces"
	"github.com/google/uuid"
)

const previewLimit = 200

// EventNotifier publishes notification events for mail-svc. Publishing happens on
// its own goroutine; errors are logged and dropped.
type EventNotifier struct {
	producer interfaces.ProducerHandler
	wg       sync.WaitGroup
}

func NewEventNotifier(producer interfaces.ProducerHandler) *EventNotifier {
	return &EventNotifier{producer: producer}
}

func (n *EventNotifier) NotifyMatchCreated(m domain.Match) {
	applicant, member := matchParties(m)
	n.publish(dto.NotificationEvent{
		Type:       dto.EventMatchCreated,
		MatchID:    m.ID,
		Recipients: []dto.EventParty{applicant, member},
		Applicant:  &applicant,
		Member:     &member,
	})
}

func (n *EventNotifier) NotifyMatchConfirmed(m domain.Match) {
	applicant, member := matchParties(m)
	n.publish(dto.NotificationEvent{
		Type:       dto.EventMatchConfirmed,
		MatchID:    m.ID,
		Recipients: []dto.EventParty{applicant, member},
		Applicant:  &applicant,
		Member:     &member,
	})
}

func (n *EventNotifier) NotifyNewMessage(m domain.Match, msg domain.Message) {
	recipient, ok := m.Counterpart(msg.SenderID)
	if !ok {
		log.Printf("notify new message: sender %d is not in match %d", msg.SenderID, m.ID)
		return
	}
	n.publish(dto.NotificationEvent{
		Type:       dto.EventNewMessage,
		MatchID:    m.ID,
		Recipients: []dto.EventParty{party(recipient, "")},
		SenderName: msg.Sender.Name,
		Preview:    Preview(msg.Content, previewLimit),
	})
}

// Wait blocks until every in-flight publish returned.
func (n *EventNotifier) Wait() {
	n.wg.Wait()
}

func (n *EventNotifier) publish(ev dto.NotificationEvent) {
	if n == nil || n.producer == nil {
		return
	}
	ev.EventID = uuid.NewString()
	ev.OccurredAt = time.Now().UTC().Format(time.RFC3339)

	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("notification marshal error: %v", err)
		return
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if err := n.producer.PublishMessage([]byte(ev.Type), payload); err != nil {
			log.Printf("publish %s for match %d error: %v", ev.Type, ev.MatchID, err)
		}
	}()
}

func matchParties(m domain.Match) (dto.EventParty, dto.EventParty) {
	applicant := party(m.Applicant.User, m.Applicant.Role)
	member := party(m.Member.User, m.Member.Year+", "+m.Member.Major)
	return applicant, member
}

func party(u domain.User, detail string) dto.EventParty {
	return dto.EventParty{UserID: u.ID, Email: u.Email, Name: u.Name, Detail: detail}
}

// Preview cuts s to at most limit runes, adding "..." when it had to cut.
func Preview(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)
	return string(r[:limit]) + "..."
}
