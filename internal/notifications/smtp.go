package notifications

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/vuminhngo/techstore-backend/pkg/config"
)

// SMTPSender delivers rendered emails over plain SMTP with optional auth.
type SMTPSender struct {
	cfg config.SMTPConfig
}

// NewSMTPSender builds a sender from the SMTP configuration.
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Send writes the message to the configured relay. The context deadline
// bounds the whole exchange; it is applied to the connection so a hung relay
// cannot stall the caller.
func (s *SMTPSender) Send(ctx context.Context, email Email) error {
	if !s.cfg.Enabled() {
		return fmt.Errorf("smtp is not configured")
	}
	if email.To == "" {
		return fmt.Errorf("recipient is required")
	}

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("dialing smtp relay: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			conn.Close()
			return fmt.Errorf("setting smtp deadline: %w", err)
		}
	}

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: s.cfg.Host}); err != nil {
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}
	if s.cfg.Username != "" {
		auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(s.cfg.From); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(email.To); err != nil {
		return fmt.Errorf("smtp rcpt to %s: %w", email.To, err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write([]byte(s.buildMessage(email))); err != nil {
		w.Close()
		return fmt.Errorf("writing mail to %s: %w", email.To, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finishing mail to %s: %w", email.To, err)
	}
	return client.Quit()
}

func (s *SMTPSender) buildMessage(email Email) string {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", email.To)
	fmt.Fprintf(&msg, "Subject: %s\r\n", email.Subject)
	fmt.Fprintf(&msg, "Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(email.HTML)
	return msg.String()
}
