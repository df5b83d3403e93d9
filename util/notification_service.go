// util/notification_service.go

package util

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	logger "github.com/pmb-ti/accountrenewal/logging"
	"github.com/pmb-ti/accountrenewal/model"
)

// RenewalEvent is the payload of renewal.* events.
type RenewalEvent struct {
	RequestID      string
	Login          string
	Domain         model.Domain
	Classification model.Classification
	Report         model.OutcomeReport
}

// NotificationService turns renewal events into operator notifications.
// Notifications are written to the structured log; nothing is stored.
type NotificationService struct{}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// Register subscribes the service to the renewal events on bus.
func (n *NotificationService) Register(bus *EventBus) {
	bus.Subscribe(EventRenewalSucceeded, n.handleRenewalEvent)
	bus.Subscribe(EventRenewalFailed, n.handleRenewalEvent)
}

func (n *NotificationService) handleRenewalEvent(ctx context.Context, event Event) error {
	payload, ok := event.Payload.(RenewalEvent)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Type)
	}
	return n.NotifyRenewal(ctx, event.Type, payload)
}

func (n *NotificationService) NotifyRenewal(ctx context.Context, eventType string, e RenewalEvent) error {
	fields := []zap.Field{
		zap.String("request_id", e.RequestID),
		zap.String("login", e.Login),
		zap.String("domain", e.Domain.Label),
		zap.Stringer("classification", e.Classification),
		zap.String("kind", string(e.Report.Kind)),
	}

	switch eventType {
	case EventRenewalSucceeded:
		logger.Info("NOTIFICATION: Account renewed",
			append(fields, zap.Stringer("expiration", e.Report.AppliedExpiration))...)
	case EventRenewalFailed:
		logger.Warn("NOTIFICATION: Account renewal failed",
			append(fields, zap.String("message", e.Report.Message))...)
	default:
		return fmt.Errorf("unknown renewal event type: %s", eventType)
	}
	return nil
}
