// Package notify delivers purchase confirmations. Delivery is best-effort:
// implementations report failure to the caller but the purchase they confirm
// has already committed.
package notify

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"
)

const (
	defaultFrom    = "info@concertfever.com"
	defaultTimeout = 10 * time.Second
)

// Mailer sends confirmations as HTML email over SMTP. Every send is bounded
// by the configured timeout, so a hung server cannot stall the purchase
// response indefinitely.
type Mailer struct {
	addr    string
	from    string
	timeout time.Duration
}

type MailerOption func(*Mailer)

// WithFrom overrides the default sender address.
func WithFrom(from string) MailerOption {
	return func(m *Mailer) {
		if from != "" {
			m.from = from
		}
	}
}

// WithTimeout overrides the per-send deadline.
func WithTimeout(timeout time.Duration) MailerOption {
	return func(m *Mailer) {
		if timeout > 0 {
			m.timeout = timeout
		}
	}
}

// NewMailer returns a Mailer pointed at the given SMTP host:port.
func NewMailer(addr string, opts ...MailerOption) *Mailer {
	m := &Mailer{addr: addr, from: defaultFrom, timeout: defaultTimeout}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Mailer) SendPurchaseConfirmation(ctx context.Context, email, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", email)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	if err := m.send(ctx, email, msg.String()); err != nil {
		return fmt.Errorf("send confirmation: %w", err)
	}
	return nil
}

// send speaks SMTP over a deadline-bound connection. smtp.SendMail dials
// without a timeout, so the handshake is done by hand here.
func (m *Mailer) send(ctx context.Context, email, msg string) error {
	dialer := net.Dialer{Timeout: m.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", m.addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(m.timeout)); err != nil {
		return err
	}

	host, _, err := net.SplitHostPort(m.addr)
	if err != nil {
		host = m.addr
	}
	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Mail(m.from); err != nil {
		return err
	}
	if err := client.Rcpt(email); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}
