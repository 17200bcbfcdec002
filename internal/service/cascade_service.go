package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/dto"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/entity"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/pkg/logger"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/specification"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/unitofwork"
)

// ICascadeService consumes the repair queue and re-applies the approval
// cascade writes that failed inline.
type ICascadeService interface {
	Consume(ctx context.Context) error
}

type cascadeService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewCascadeService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) ICascadeService {
	return &cascadeService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (cs *cascadeService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage re-runs the cascade for one approved application. Every
// write sets an absolute value, so replaying a message whose writes already
// landed changes nothing.
func (cs *cascadeService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.CascadeRepairMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("CASCADE", "Failed to unmarshal repair message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // malformed, retrying cannot help
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	app, err := uow.CancellationRepository().FindOne(ctx, specification.ByID{ID: payload.ApplicationId})
	if err != nil {
		cs.logger.Error("CASCADE", "Failed to load application for repair", map[string]interface{}{
			"application_id": payload.ApplicationId,
			"error":          err.Error(),
		})
		msg.Nack()
		return
	}
	if app == nil || app.Status != entity.ApplicationStatusApproved {
		// Deleted upstream or decision changed under us; nothing to repair.
		msg.Ack()
		return
	}
	if app.LeadStatusUpdated {
		msg.Ack()
		return
	}

	if err := uow.DeliveryRecordRepository().UpdateDetailStatus(ctx, payload.LeadId, payload.MerchantId, entity.DeliveryStatusCancellationApproved); err != nil {
		cs.logger.Error("CASCADE", "Repair of delivery record failed", map[string]interface{}{
			"application_id": payload.ApplicationId,
			"error":          err.Error(),
		})
		msg.Nack()
		return
	}

	if err := uow.LeadRepository().UpdateManagementStatus(ctx, payload.LeadId, entity.LeadStatusDeliveredNoContract); err != nil {
		cs.logger.Error("CASCADE", "Repair of lead status failed", map[string]interface{}{
			"application_id": payload.ApplicationId,
			"error":          err.Error(),
		})
		msg.Nack()
		return
	}

	if err := uow.CancellationRepository().MarkLeadStatusUpdated(ctx, payload.ApplicationId); err != nil {
		cs.logger.Error("CASCADE", "Failed to mark cascade complete", map[string]interface{}{
			"application_id": payload.ApplicationId,
			"error":          err.Error(),
		})
		msg.Nack()
		return
	}

	cs.logger.Info("CASCADE", "Approval cascade repaired", map[string]interface{}{
		"application_id": payload.ApplicationId,
		"lead_id":        payload.LeadId,
		"merchant_id":    payload.MerchantId,
	})
	msg.Ack()
}
