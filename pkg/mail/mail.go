// Package mail sends the transactional emails behind order notifications.
//
//	mail.To("user@example.com").
//	    Subject("Order successful.").
//	    Text("You've placed an order successfully.").
//	    Send()
package mail

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/shashiranjanraj/plantnet/config"
)

// SMTP holds the mail server credentials, populated from config.
type SMTP struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	FromName string
}

func defaultSMTP() SMTP {
	return SMTP{
		Host:     config.Get("MAIL_HOST", "smtp.gmail.com"),
		Port:     config.Get("MAIL_PORT", "587"),
		Username: config.Get("MAIL_USERNAME", ""),
		Password: config.Get("MAIL_PASSWORD", ""),
		From:     config.Get("MAIL_FROM", "hello@plantnet.app"),
		FromName: config.Get("MAIL_FROM_NAME", "plantNet"),
	}
}

// Message is a fluent builder for one outgoing email.
type Message struct {
	to      []string
	subject string
	body    string
	isHTML  bool
	cfg     SMTP
}

// To starts a message addressed to the given recipients.
func To(addresses ...string) *Message {
	return &Message{to: addresses, cfg: defaultSMTP()}
}

// Subject sets the subject line.
func (m *Message) Subject(s string) *Message {
	m.subject = s
	return m
}

// Body sets an HTML body.
func (m *Message) Body(html string) *Message {
	m.body = html
	m.isHTML = true
	return m
}

// Text sets a plain-text body.
func (m *Message) Text(text string) *Message {
	m.body = text
	m.isHTML = false
	return m
}

// UseConfig overrides the server credentials for this message.
func (m *Message) UseConfig(cfg SMTP) *Message {
	m.cfg = cfg
	return m
}

// Send delivers the message. Port 465 speaks TLS from the first byte;
// anything else goes through SendMail's STARTTLS upgrade.
func (m *Message) Send() error {
	if m.cfg.Username == "" {
		return fmt.Errorf("mail: MAIL_USERNAME not configured")
	}

	addr := m.cfg.Host + ":" + m.cfg.Port
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	raw := m.encode()

	if m.cfg.Port == "465" {
		return m.sendTLS(addr, auth, raw)
	}
	return smtp.SendMail(addr, auth, m.cfg.From, m.to, raw)
}

func (m *Message) sendTLS(addr string, auth smtp.Auth, raw []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.cfg.Host})
	if err != nil {
		return fmt.Errorf("mail: tls dial: %w", err)
	}

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		return fmt.Errorf("mail: smtp client: %w", err)
	}
	defer client.Quit() //nolint:errcheck

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("mail: auth: %w", err)
	}
	if err := client.Mail(m.cfg.From); err != nil {
		return err
	}
	for _, rcpt := range m.to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(raw); err != nil {
		return err
	}
	return w.Close()
}

func (m *Message) encode() []byte {
	contentType := "text/plain"
	if m.isHTML {
		contentType = "text/html"
	}

	headers := []string{
		fmt.Sprintf("From: %s <%s>", m.cfg.FromName, m.cfg.From),
		"To: " + strings.Join(m.to, ", "),
		"Subject: " + m.subject,
		"MIME-Version: 1.0",
		fmt.Sprintf("Content-Type: %s; charset=\"UTF-8\"", contentType),
	}
	return []byte(strings.Join(headers, "\r\n") + "\r\n\r\n" + m.body)
}
