package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"wardrobe.backend/internal/config"
	"wardrobe.backend/internal/domain/entities"
)

// SMSChannel posts messages to an SMS gateway webhook as
// {"to": "...", "message": "..."}.
type SMSChannel struct {
	url    string
	token  string
	client *http.Client
}

func NewSMSChannel(cfg config.SMSConfig) *SMSChannel {
	return &SMSChannel{
		url:    cfg.WebhookURL,
		token:  cfg.Token,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *SMSChannel) Name() string { return "sms" }

func (c *SMSChannel) Accepts(msg entities.Notification) bool { return msg.Mobile != "" }

func (c *SMSChannel) Send(ctx context.Context, msg entities.Notification) error {
	payload, err := json.Marshal(map[string]string{
		"to":      msg.Mobile,
		"message": msg.Body,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned %d", resp.StatusCode)
	}
	return nil
}
