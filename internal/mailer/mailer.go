// Package mailer доставляет письма: SMTP (gomail) или Amazon SES.
package mailer

import (
	"context"
	"errors"
)

// Message: письмо с текстовой и HTML-версией (multipart/alternative).
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

var ErrEmptyRecipient = errors.New("mailer: empty recipient")

func (m Message) validate() error {
	if m.To == "" {
		return ErrEmptyRecipient
	}
	return nil
}
