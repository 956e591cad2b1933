package dto

const (
	EventMatchCreated   = "match.created"
	EventMatchConfirmed = "match.confirmed"
	EventNewMessage     = "message.new"
)

type EventParty struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Detail string `json:"detail,omitempty"`
}

// NotificationEvent is published by chat-svc with the event type as message key.
type NotificationEvent struct {
	EventID    string       `json:"event_id"`
	Type       string       `json:"type"`
	MatchID    uint         `json:"match_id"`
	OccurredAt string       `json:"occurred_at"`
	Recipients []EventParty `json:"recipients"`
	Applicant  *EventParty  `json:"applicant,omitempty"`
	Member     *EventParty  `json:"member,omitempty"`
	SenderName string       `json:"sender_name,omitempty"`
	Preview    string       `json:"preview,omitempty"`
}
