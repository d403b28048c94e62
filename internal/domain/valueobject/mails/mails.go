package mails

// Payload is an outgoing email. Body is HTML.
type Payload struct {
	To      string
	Subject string
	Body    string
}
