// Package notification delivers verification and reset codes over email and
// SMS.
package notification

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"wardrobe.backend/internal/config"
	"wardrobe.backend/internal/domain/entities"
	domainerrors "wardrobe.backend/internal/domain/errors"
	"wardrobe.backend/pkg/logger"
)

// Channel is one delivery route
type Channel interface {
	Name() string
	Accepts(msg entities.Notification) bool
	Send(ctx context.Context, msg entities.Notification) error
}

// Notifier fans a message out to every channel that accepts it.
type Notifier struct {
	channels []Channel
}

func NewNotifier(channels ...Channel) *Notifier {
	return &Notifier{channels: channels}
}

// NewFromConfig enables the email and SMS channels that are configured.
func NewFromConfig(mail config.MailConfig, sms config.SMSConfig) *Notifier {
	var channels []Channel
	if mail.Enabled() {
		channels = append(channels, NewEmailChannel(mail))
	}
	if sms.Enabled() {
		channels = append(channels, NewSMSChannel(sms))
	}
	return NewNotifier(channels...)
}

// Send succeeds when at least one channel delivered the message. Failures of
// the other channels are logged. When nothing was delivered the result is a
// *DeliveryError carrying every channel error.
func (n *Notifier) Send(ctx context.Context, msg entities.Notification) error {
	var (
		errs      error
		failed    []string
		delivered int
	)
	for _, ch := range n.channels {
		if !ch.Accepts(msg) {
			continue
		}
		if err := ch.Send(ctx, msg); err != nil {
			failed = append(failed, ch.Name())
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", ch.Name(), err))
			continue
		}
		delivered++
	}

	if delivered == 0 {
		if errs == nil {
			errs = fmt.Errorf("no channel configured")
		}
		return &domainerrors.DeliveryError{Channels: failed, Err: errs}
	}
	if errs != nil {
		logger.Warn(ctx, "Notification partially delivered",
			zap.Strings("failed_channels", failed),
			zap.Error(errs),
		)
	}
	return nil
}
