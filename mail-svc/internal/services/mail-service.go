package services

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"strings"

	"github.com/SundayYogurt/CoffeeChat-Backend/mail-svc/internal/dto"
	"github.com/SundayYogurt/CoffeeChat-Backend/mail-svc/internal/interfaces"
)

//go:embed templates/*.html
var templateFS embed.FS

var ErrUnknownEvent = errors.New("unknown event type")

type mailKind struct {
	subject  string
	template string
}

var kinds = map[string]mailKind{
	dto.EventMatchCreated:   {subject: "You have a new coffee chat match", template: "match-created.html"},
	dto.EventMatchConfirmed: {subject: "Your coffee chat match is confirmed", template: "match-confirmed.html"},
	dto.EventNewMessage:     {subject: "New message from your coffee chat match", template: "new-message.html"},
}

type MailService struct {
	sender      interfaces.MailSender
	frontendURL string
	templates   *template.Template
}

func NewMailService(sender interfaces.MailSender, frontendURL string) (*MailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &MailService{
		sender:      sender,
		frontendURL: frontendURL,
		templates:   tmpl,
	}, nil
}

type mailData struct {
	Recipient  dto.EventParty
	Applicant  *dto.EventParty
	Member     *dto.EventParty
	SenderName string
	Preview    string
	Link       string
}

// SendNotification mails every recipient of ev. One failed recipient does not stop
// the others; the joined error is returned.
func (s *MailService) SendNotification(ev dto.NotificationEvent) error {
	kind, ok := kinds[ev.Type]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
	}

	var errs []error
	for _, r := range ev.Recipients {
		if strings.TrimSpace(r.Email) == "" {
			continue
		}

		body, err := s.render(kind.template, mailData{
			Recipient:  r,
			Applicant:  ev.Applicant,
			Member:     ev.Member,
			SenderName: ev.SenderName,
			Preview:    ev.Preview,
			Link:       s.link(ev),
		})
		if err != nil {
			return err
		}

		log.Printf("[MAIL] %s match=%d to=%s", ev.Type, ev.MatchID, r.Email)
		if err := s.sender.Send(r.Email, kind.subject, body); err != nil {
			errs = append(errs, fmt.Errorf("send to %s: %w", r.Email, err))
		}
	}
	return errors.Join(errs...)
}

func (s *MailService) render(name string, data mailData) (string, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *MailService) link(ev dto.NotificationEvent) string {
	if ev.Type == dto.EventMatchCreated {
		return s.frontendURL + "/bc/matches"
	}
	return fmt.Sprintf("%s/bc/matches/%d", s.frontendURL, ev.MatchID)
}
