package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/client-service/internal/config"
	"github.com/spec-kit/client-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventClientRegistered, n.handleClientRegistered)
	n.dispatcher.Subscribe(events.EventClientUpdated, n.handleClientUpdated)
	n.dispatcher.Subscribe(events.EventClientDeleted, n.handleClientDeleted)
}

func (n *NotificationService) handleClientRegistered(ctx context.Context, event events.Event) error {
	n.logger.Info("ClientRegistered", zap.Int64("client_id", event.ClientID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleClientUpdated(ctx context.Context, event events.Event) error {
	n.logger.Info("ClientUpdated", zap.Int64("client_id", event.ClientID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleClientDeleted(ctx context.Context, event events.Event) error {
	n.logger.Info("ClientDeleted", zap.Int64("client_id", event.ClientID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	n.logger.Debug("email notification stub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("event", string(event.Type)),
	)
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if n.cfg.WebhookURL == "" {
		return
	}
	n.logger.Debug("webhook notification stub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event", string(event.Type)),
	)
}
