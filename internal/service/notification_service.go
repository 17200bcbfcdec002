package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/model"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/pkg/logger"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/pkg/mailer"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/contract"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/pkg/events"
	pktNats "github.com/gaihekitosoukuraberu/kuraberu-main-sub003/pkg/nats"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/pkg/notify"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(merchantID string, notification model.Notification)
}

// NotificationService consumes workflow decision events and fans each one
// out to the merchant's inbox row, email, and websocket push. The inbox row
// is the durable record; email and push are best-effort.
type NotificationService struct {
	repo       repository.NotificationRepository
	merchants  contract.MerchantRepository
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	email      mailer.IEmailService
	logger     logger.ILogger
}

func NewNotificationService(
	repo repository.NotificationRepository,
	merchants contract.MerchantRepository,
	sub *pktNats.Subscriber,
	delivery NotificationDelivery,
	email mailer.IEmailService,
	log logger.ILogger,
) *NotificationService {
	return &NotificationService{
		repo:       repo,
		merchants:  merchants,
		subscriber: sub,
		delivery:   delivery,
		email:      email,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NOTIFICATION", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NOTIFICATION", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	// The NATS subject carries the stream prefix; strip it back to the
	// bare event code.
	typeCode := strings.TrimPrefix(event.EventType(), "events.")

	payload := decisionPayloadFrom(event.Payload())
	if payload.MerchantID == "" {
		s.logger.Warn("NOTIFICATION", "Event without merchant_id, skipping", map[string]interface{}{"type": typeCode})
		return nil
	}

	rendered, err := notify.Render(typeCode, payload)
	if err != nil {
		// Unknown or malformed events are not retriable.
		s.logger.Warn("NOTIFICATION", "Skipping unrenderable event", map[string]interface{}{
			"type":  typeCode,
			"error": err.Error(),
		})
		return nil
	}

	rawPayload, _ := json.Marshal(event.Payload())
	notif := model.Notification{
		ID:         uuid.New(),
		MerchantID: payload.MerchantID,
		EventType:  typeCode,
		EntityID:   payload.ApplicationID,
		Subject:    rendered.Subject,
		LongBody:   rendered.LongBody,
		ShortBody:  rendered.ShortBody,
		Payload:    datatypes.JSON(rawPayload),
		IsRead:     false,
		CreatedAt:  time.Now(),
	}

	if err := s.repo.CreateNotification(ctx, &notif); err != nil {
		s.logger.Error("NOTIFICATION", "Failed to save notification", map[string]interface{}{
			"merchant_id": payload.MerchantID,
			"type":        typeCode,
			"error":       err.Error(),
		})
		return err // retried by the durable consumer
	}

	if s.delivery != nil {
		s.delivery.Send(payload.MerchantID, notif)
	}

	s.sendEmail(ctx, payload.MerchantID, rendered)
	return nil
}

// sendEmail resolves the merchant's address and sends the long-form body.
// Any failure here is logged only; the inbox row already landed.
func (s *NotificationService) sendEmail(ctx context.Context, merchantID string, rendered notify.Rendered) {
	if s.email == nil {
		return
	}

	merchant, err := s.merchants.FindByID(ctx, merchantID)
	if err != nil {
		s.logger.Warn("NOTIFICATION", "Merchant lookup failed, skipping email", map[string]interface{}{
			"merchant_id": merchantID,
			"error":       err.Error(),
		})
		return
	}
	if merchant == nil || merchant.Email == "" || !merchant.NotifyByEmail {
		return
	}

	if err := s.email.SendDecisionNotice(merchant.Email, rendered.Subject, rendered.LongBody); err != nil {
		s.logger.Warn("NOTIFICATION", "Email delivery failed", map[string]interface{}{
			"merchant_id": merchantID,
			"error":       err.Error(),
		})
	}
}

// decisionPayloadFrom maps the loosely-typed event payload to the renderer
// input. Missing keys come through as zero values; the renderer validates
// what each event type requires.
func decisionPayloadFrom(data map[string]interface{}) notify.Payload {
	p := notify.Payload{}
	if v, ok := data["application_id"].(string); ok {
		p.ApplicationID = v
	}
	if v, ok := data["lead_id"].(string); ok {
		p.LeadID = v
	}
	if v, ok := data["merchant_id"].(string); ok {
		p.MerchantID = v
	}
	if v, ok := data["reject_reason"].(string); ok {
		p.RejectReason = v
	}
	if v, ok := data["extended_deadline"].(string); ok {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			p.ExtendedDeadline = &t
		}
	}
	return p
}

// GetNotifications fetches a merchant's inbox page.
func (s *NotificationService) GetNotifications(ctx context.Context, merchantID string, limit, offset int) ([]model.Notification, int64, error) {
	return s.repo.GetNotificationsByMerchantID(ctx, merchantID, limit, offset)
}

// GetUnreadCount fetches the unread badge count.
func (s *NotificationService) GetUnreadCount(ctx context.Context, merchantID string) (int64, error) {
	return s.repo.GetUnreadCount(ctx, merchantID)
}

// MarkAsRead marks one notification as read.
func (s *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id)
}

// MarkAllAsRead clears the merchant's unread badge.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, merchantID string) error {
	return s.repo.MarkAllAsRead(ctx, merchantID)
}
