package mailer

// Message is a rendered outbound email.
type Message struct {
	To      []string
	Subject string
	Body    string
}

// Mailer delivers messages to an outbound transport. Delivery is advisory:
// callers must not treat a send failure as a reason to roll back state.
type Mailer interface {
	Send(msg Message) error
}
