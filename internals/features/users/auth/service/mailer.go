package service

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/smtp"
	"strings"
	"sync"

	"github.com/hoisie/mustache"

	"suryaghar_backend/internals/configs"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

const otpMailTmpl = `Hello,

Your {{app}} admin sign-up code is {{code}}.
It expires in {{minutes}} minutes. If you did not ask for it, ignore this mail.
`

func renderOTPMail(code string, minutes int) string {
	return mustache.Render(otpMailTmpl, map[string]any{
		"app":     configs.AppName,
		"code":    code,
		"minutes": minutes,
	})
}

// NewMailerFromEnv uses SMTP_HOST/PORT/USER/PASSWORD/FROM. Without a host the
// codes only go to the server log.
func NewMailerFromEnv() Mailer {
	host := configs.GetEnv("SMTP_HOST")
	if host == "" {
		log.Println("⚠️ SMTP_HOST not set, sign-up codes are written to the log")
		return &LogMailer{}
	}
	return &SMTPMailer{
		Host:     host,
		Port:     configs.GetEnv("SMTP_PORT", "587"),
		User:     configs.GetEnv("SMTP_USER"),
		Password: configs.GetEnv("SMTP_PASSWORD"),
		From:     configs.GetEnv("SMTP_FROM", configs.GetEnv("SMTP_USER")),
	}
}

type SMTPMailer struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + m.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
		body,
	}, "\r\n")

	var auth smtp.Auth
	if m.User != "" {
		auth = smtp.PlainAuth("", m.User, m.Password, m.Host)
	}
	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(net.JoinHostPort(m.Host, m.Port), auth, m.From, []string{to}, []byte(msg))
	}()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LogMailer keeps the last message per recipient; used in development and tests.
type LogMailer struct {
	mu   sync.Mutex
	last map[string]string
}

func (m *LogMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	if m.last == nil {
		m.last = map[string]string{}
	}
	m.last[strings.ToLower(to)] = body
	m.mu.Unlock()
	log.Printf("[INFO] ✉️ mail to=%s subject=%q\n%s", to, subject, body)
	return nil
}

func (m *LogMailer) Last(to string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last[strings.ToLower(to)]
}
