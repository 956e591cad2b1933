package interfaces

import "github.com/SundayYogurt/CoffeeChat-Backend/chat-svc/internal/domain"

// Notifier is best effort. Implementations must not block the caller and must not
// report failures back; callers invoke it only after their transaction committed.
// Matches are passed with Applicant.User and Member.User loaded.
type Notifier interface {
	NotifyMatchCreated(match domain.Match)
	NotifyMatchConfirmed(match domain.Match)
	NotifyNewMessage(match domain.Match, msg domain.Message)
}
