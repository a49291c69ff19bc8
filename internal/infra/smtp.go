package infra

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
)

// Mailer sends plain-text mail through an SMTP relay. Sends go through
// the email worker, never the request path.
type Mailer struct {
	addr string
	auth smtp.Auth
	from string
}

func NewMailer(host string, port int, user, password, from string) *Mailer {
	var auth smtp.Auth
	if user != "" {
		auth = smtp.PlainAuth("", user, password, host)
	}
	return &Mailer{
		addr: fmt.Sprintf("%s:%d", host, port),
		auth: auth,
		from: from,
	}
}

// Send delivers one message to all recipients.
func (m *Mailer) Send(to []string, subject, body string) error {
	e := email.NewEmail()
	e.From = m.from
	e.To = to
	e.Subject = subject
	e.Text = []byte(body)
	return e.Send(m.addr, m.auth)
}

// SendWithTimeout bounds the SMTP dialogue; a wedged relay should not
// hold a worker goroutine forever.
func (m *Mailer) SendWithTimeout(to []string, subject, body string, timeout time.Duration) error {
	done := make(chan error, 1)
	go func() { done <- m.Send(to, subject, body) }()
	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		return fmt.Errorf("smtp send to %s timed out after %s", m.addr, timeout)
	}
}
