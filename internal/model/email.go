package model

import "context"

// EmailMessage is one outbound message.
type EmailMessage struct {
	To      string
	Subject string
	Body    string
}

// EmailSender delivers messages out of band. Delivery is best-effort: a
// failed send must not roll back the token issuance that triggered it.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}
