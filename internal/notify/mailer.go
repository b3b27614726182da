package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/villaflora/go-resto-console/internal/reservations"
)

// Mailer is the raw delivery primitive. One call = one outbound message.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer delivers over plain SMTP (net/smtp). Auth is optional; the
// dev setup points at mailhog without credentials.
type SMTPMailer struct {
	Addr string // host:port
	From string
	User string
	Pass string
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if to == "" {
		return fmt.Errorf("empty recipient")
	}
	var auth smtp.Auth
	if m.User != "" {
		host := m.Addr
		if i := strings.IndexByte(host, ':'); i >= 0 {
			host = host[:i]
		}
		auth = smtp.PlainAuth("", m.User, m.Pass, host)
	}

	msg := strings.Join([]string{
		"From: " + m.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="utf-8"`,
		"",
		body,
	}, "\r\n")

	// net/smtp tidak context-aware; deadline ditangani timeout dial default.
	done := make(chan error, 1)
	go func() { done <- smtp.SendMail(m.Addr, auth, m.From, []string{to}, []byte(msg)) }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// DecisionSender adapts a Mailer to the triage engine: render the outcome
// template for the (already committed) reservation and send it to the
// requester.
type DecisionSender struct {
	Mailer Mailer
}

func (s *DecisionSender) SendDecision(ctx context.Context, rec reservations.Reservation) error {
	subject, body, err := RenderDecision(rec)
	if err != nil {
		return err
	}
	return s.Mailer.Send(ctx, rec.Email, subject, body)
}
