package interfaces

type ConsumerHandler interface {
	HandleMessage(key, value []byte) error
}

// MailSender delivers one HTML email.
type MailSender interface {
	Send(to, subject, htmlBody string) error
}
