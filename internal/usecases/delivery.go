package usecases

import (
	"context"

	"go.uber.org/zap"
	"wardrobe.backend/internal/domain/entities"
	"wardrobe.backend/pkg/logger"
)

// Notifier delivers a notification through at least one channel. It returns
// a *errors.DeliveryError when no channel accepted the message.
type Notifier interface {
	Send(ctx context.Context, n entities.Notification) error
}

// codeDelivery sends one-time codes. In development fallback mode a failed
// delivery is downgraded to a log line carrying the code.
type codeDelivery struct {
	notifier    Notifier
	devFallback bool
}

func (d codeDelivery) send(ctx context.Context, n entities.Notification, code string) error {
	err := d.notifier.Send(ctx, n)
	if err == nil {
		return nil
	}
	if d.devFallback {
		logger.Warn(ctx, "Code delivery failed, logging code instead",
			zap.String("email", n.Email),
			zap.String("code", code),
			zap.Error(err),
		)
		return nil
	}
	return err
}
