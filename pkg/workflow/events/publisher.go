package events

import (
	"context"
	"time"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/entity"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/pkg/logger"
	pkgEvents "github.com/gaihekitosoukuraberu/kuraberu-main-sub003/pkg/events"
	pktNats "github.com/gaihekitosoukuraberu/kuraberu-main-sub003/pkg/nats"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/pkg/notify"
)

// Publisher abstracts decision event publishing for the workflow engine.
// Publish failures are logged, never propagated: the decision is already
// committed by the time an event goes out.
type Publisher interface {
	PublishCancellationApproved(ctx context.Context, app *entity.CancellationApplication)
	PublishCancellationRejected(ctx context.Context, app *entity.CancellationApplication, reason string)
	PublishExtensionApproved(ctx context.Context, app *entity.ExtensionApplication)
	PublishExtensionRejected(ctx context.Context, app *entity.ExtensionApplication, reason string)
}

// NatsPublisher implements Publisher using NATS JetStream
type NatsPublisher struct {
	publisher *pktNats.Publisher
	logger    logger.ILogger
}

// NewNatsPublisher creates a new NATS-based decision event publisher
func NewNatsPublisher(publisher *pktNats.Publisher, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

func (p *NatsPublisher) PublishCancellationApproved(ctx context.Context, app *entity.CancellationApplication) {
	p.publish(ctx, notify.EventCancellationApproved, map[string]interface{}{
		"application_id": app.ID,
		"lead_id":        app.LeadID,
		"merchant_id":    app.MerchantID,
		"approver":       app.Approver,
	})
}

func (p *NatsPublisher) PublishCancellationRejected(ctx context.Context, app *entity.CancellationApplication, reason string) {
	p.publish(ctx, notify.EventCancellationRejected, map[string]interface{}{
		"application_id": app.ID,
		"lead_id":        app.LeadID,
		"merchant_id":    app.MerchantID,
		"approver":       app.Approver,
		"reject_reason":  reason,
	})
}

func (p *NatsPublisher) PublishExtensionApproved(ctx context.Context, app *entity.ExtensionApplication) {
	p.publish(ctx, notify.EventExtensionApproved, map[string]interface{}{
		"application_id":    app.ID,
		"lead_id":           app.LeadID,
		"merchant_id":       app.MerchantID,
		"approver":          app.Approver,
		"extended_deadline": app.ExtendedDeadline.Format(time.RFC3339),
	})
}

func (p *NatsPublisher) PublishExtensionRejected(ctx context.Context, app *entity.ExtensionApplication, reason string) {
	p.publish(ctx, notify.EventExtensionRejected, map[string]interface{}{
		"application_id": app.ID,
		"lead_id":        app.LeadID,
		"merchant_id":    app.MerchantID,
		"approver":       app.Approver,
		"reject_reason":  reason,
	})
}

func (p *NatsPublisher) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("WORKFLOW", "Failed to publish "+eventType+" event", map[string]interface{}{"error": err.Error()})
	}
}
