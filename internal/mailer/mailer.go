// internal/mailer/mailer.go
package mailer

import (
	"io"

	"github.com/go-gomail/gomail"
)

// Attachment is a binary email attachment.
type Attachment struct {
	Filename string
	MIMEType string
	Content  []byte
}

// Mailer sends one composed message. A send is all-or-nothing: either the
// whole message with its attachments is accepted by the relay, or it fails.
type Mailer interface {
	Send(to, subject, htmlBody string, attachments []Attachment) error
}

// SMTPMailer delivers over an authenticated SMTP session with STARTTLS.
// The dialer is built once at startup and reused for every send.
type SMTPMailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

func NewSMTPMailer(host string, port int, user, password, from, fromName string) *SMTPMailer {
	return &SMTPMailer{
		dialer:   gomail.NewDialer(host, port, user, password),
		from:     from,
		fromName: fromName,
	}
}

func (m *SMTPMailer) Send(to, subject, htmlBody string, attachments []Attachment) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	for _, att := range attachments {
		att := att
		msg.Attach(att.Filename,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(att.Content)
				return err
			}),
			gomail.SetHeader(map[string][]string{"Content-Type": {att.MIMEType}}),
		)
	}

	return m.dialer.DialAndSend(msg)
}

var _ Mailer = (*SMTPMailer)(nil)
