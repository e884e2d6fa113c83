package mailer

import "log"

// NoopMailer logs messages instead of delivering them. Used when no SMTP
// relay is configured.
type NoopMailer struct{}

// NewNoopMailer creates a NoopMailer.
func NewNoopMailer() *NoopMailer {
	return &NoopMailer{}
}

// Send logs the message and reports success.
func (m *NoopMailer) Send(msg Message) error {
	log.Printf("mailer disabled, dropping message to %v: %s", msg.To, msg.Subject)
	return nil
}
