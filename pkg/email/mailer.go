package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"go-contact-backend/config"
	"go-contact-backend/internal/domain"
)

// SMTPMailer delivers notification envelopes over SMTP. It supports
// implicit TLS ("ssl", port 465 style) and STARTTLS submission.
type SMTPMailer struct {
	host      string
	port      string
	username  string
	password  string
	secure    string
	fromEmail string
	fromName  string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		secure:   cfg.SMTPSecure,
		// The SMTP login doubles as the verified sender address
		fromEmail: cfg.SMTPUsername,
		fromName:  cfg.SiteName + " Contact Form",
	}
}

// IsConfigured reports whether the transport has the settings it needs.
// Sending through an unconfigured mailer fails; it never panics.
func (m *SMTPMailer) IsConfigured() bool {
	return m.host != "" && m.username != "" && m.password != ""
}

func (m *SMTPMailer) Send(ctx context.Context, env domain.Envelope) error {
	if !m.IsConfigured() {
		return fmt.Errorf("smtp transport is not configured")
	}

	msg := m.buildMessage(env)

	recipients := []string{env.To}
	if env.BCC != "" {
		recipients = append(recipients, env.BCC)
	}

	addr := net.JoinHostPort(m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	if m.secure == "ssl" {
		return m.sendImplicitTLS(ctx, addr, auth, recipients, msg)
	}

	if err := smtp.SendMail(addr, auth, m.fromEmail, recipients, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// sendImplicitTLS performs the submission over a TLS connection opened
// up front, as port-465 providers require.
func (m *SMTPMailer) sendImplicitTLS(ctx context.Context, addr string, auth smtp.Auth, recipients []string, msg []byte) error {
	dialer := &net.Dialer{Timeout: 10 * time.Second}
	if deadline, ok := ctx.Deadline(); ok {
		dialer.Deadline = deadline
	}

	conn, err := tls.DialWithDialer(dialer, "tcp", addr, &tls.Config{
		ServerName: m.host,
		MinVersion: tls.VersionTLS12,
	})
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := client.Mail(m.fromEmail); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	for _, rcpt := range recipients {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp rcpt %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close: %w", err)
	}

	return client.Quit()
}

// buildMessage assembles the MIME message. BCC recipients are added to
// the SMTP envelope only, never to the headers.
func (m *SMTPMailer) buildMessage(env domain.Envelope) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "From: %s <%s>\r\n", m.fromName, m.fromEmail)
	if env.ToName != "" {
		fmt.Fprintf(&b, "To: %s <%s>\r\n", env.ToName, env.To)
	} else {
		fmt.Fprintf(&b, "To: %s\r\n", env.To)
	}
	if env.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", env.ReplyTo)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", env.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(env.HTMLBody)

	return []byte(b.String())
}
