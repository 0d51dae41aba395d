package notification

import (
	"context"

	"gopkg.in/gomail.v2"
	"wardrobe.backend/internal/config"
	"wardrobe.backend/internal/domain/entities"
)

type mailDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

var newDialer = func(cfg config.MailConfig) mailDialer {
	return gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
}

// EmailChannel sends plain-text mail over SMTP
type EmailChannel struct {
	dialer mailDialer
	from   string
}

func NewEmailChannel(cfg config.MailConfig) *EmailChannel {
	return &EmailChannel{dialer: newDialer(cfg), from: cfg.From}
}

func (c *EmailChannel) Name() string { return "email" }

func (c *EmailChannel) Accepts(msg entities.Notification) bool { return msg.Email != "" }

func (c *EmailChannel) Send(_ context.Context, msg entities.Notification) error {
	m := gomail.NewMessage()
	m.SetHeader("From", c.from)
	m.SetHeader("To", msg.Email)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	return c.dialer.DialAndSend(m)
}
