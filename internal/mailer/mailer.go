// Package mailer sends transactional email over SMTP. Sending is
// best-effort everywhere in this service: callers log failures and move
// on, because a notification must never roll back the operation that
// triggered it.
package mailer

import (
	"crypto/tls"
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/hackhub/hackhub-server/internal/config"
)

// Message is a single outbound email. Body carries HTML; Text is the
// plain-text alternative used for logging and non-HTML fallbacks.
type Message struct {
	To      string
	Subject string
	Body    string
	Text    string
}

// Client wraps an SMTP endpoint. When the host is empty the client is
// in log-only mode: Send renders nothing over the wire and just logs
// the message, mirroring how the platform behaves without a configured
// provider.
type Client struct {
	host string
	port int
	user string
	pass string
	from string
}

// NewClient builds a Client from the application config.
func NewClient(cfg config.Config) *Client {
	return &Client{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		from: cfg.MailFrom,
	}
}

// Enabled reports whether a real SMTP endpoint is configured.
func (c *Client) Enabled() bool { return c.host != "" }

// Send submits the message. In log-only mode it records the message and
// returns nil so callers see the same fire-and-forget behavior either way.
func (c *Client) Send(msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("mailer: empty recipient")
	}
	if !c.Enabled() {
		log.Printf("mailer: smtp not configured, logging only | to=%s subject=%q text=%q", msg.To, msg.Subject, msg.Text)
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", c.from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)

	addr := fmt.Sprintf("%s:%d", c.host, c.port)
	auth := smtp.PlainAuth("", c.user, c.pass, c.host)
	if c.port == 587 {
		return c.sendWithStartTLS(addr, auth, msg.To, []byte(b.String()))
	}
	return smtp.SendMail(addr, auth, c.user, []string{msg.To}, []byte(b.String()))
}

// sendWithStartTLS upgrades the connection before authenticating, which
// most providers require on port 587.
func (c *Client) sendWithStartTLS(addr string, auth smtp.Auth, to string, body []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}
	defer client.Close()

	if err = client.StartTLS(&tls.Config{ServerName: c.host}); err != nil {
		return fmt.Errorf("starttls: %w", err)
	}
	if err = client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err = client.Mail(c.user); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("rcpt to: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err = w.Write(body); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("close body: %w", err)
	}
	return client.Quit()
}
