package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/apperror"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/dto"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/entity"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/mapper"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/pkg/logger"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/specification"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/unitofwork"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/pkg/store"
	workflowEvents "github.com/gaihekitosoukuraberu/kuraberu-main-sub003/pkg/workflow/events"
)

// IWorkflowService runs the admin side of the approval workflow: listing
// pending applications and deciding them.
type IWorkflowService interface {
	ListCancellations(ctx context.Context, status string, page, pageSize int) ([]*dto.AdminCancellationListResponse, error)
	ListExtensions(ctx context.Context, status string, page, pageSize int) ([]*dto.AdminExtensionListResponse, error)

	ApproveCancellation(ctx context.Context, applicationID, approver string) (*dto.DecisionResponse, error)
	RejectCancellation(ctx context.Context, applicationID, approver, reason string) (*dto.DecisionResponse, error)
	ApproveExtension(ctx context.Context, applicationID, approver string) (*dto.DecisionResponse, error)
	RejectExtension(ctx context.Context, applicationID, approver, reason string) (*dto.DecisionResponse, error)
}

type workflowService struct {
	uowFactory        unitofwork.RepositoryFactory
	consistency       IConsistencyChecker
	publisherService  IPublisherService
	eventPublisher    workflowEvents.Publisher
	caseCache         *store.CaseCache
	hardBlockOnActive bool
	logger            logger.ILogger
	now               func() time.Time
}

func NewWorkflowService(
	uowFactory unitofwork.RepositoryFactory,
	consistency IConsistencyChecker,
	publisherService IPublisherService,
	eventPublisher workflowEvents.Publisher,
	caseCache *store.CaseCache,
	hardBlockOnActive bool,
	log logger.ILogger,
) IWorkflowService {
	return &workflowService{
		uowFactory:        uowFactory,
		consistency:       consistency,
		publisherService:  publisherService,
		eventPublisher:    eventPublisher,
		caseCache:         caseCache,
		hardBlockOnActive: hardBlockOnActive,
		logger:            log,
		now:               time.Now,
	}
}

func (s *workflowService) ListCancellations(ctx context.Context, status string, page, pageSize int) ([]*dto.AdminCancellationListResponse, error) {
	specs, err := listSpecs(status, page, pageSize)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	apps, err := uow.CancellationRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.AdminCancellationListResponse, 0, len(apps))
	for _, app := range apps {
		result = append(result, mapper.ToAdminCancellationListResponse(app))
	}
	return result, nil
}

func (s *workflowService) ListExtensions(ctx context.Context, status string, page, pageSize int) ([]*dto.AdminExtensionListResponse, error) {
	specs, err := listSpecs(status, page, pageSize)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	apps, err := uow.ExtensionRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.AdminExtensionListResponse, 0, len(apps))
	for _, app := range apps {
		result = append(result, mapper.ToAdminExtensionListResponse(app))
	}
	return result, nil
}

// ApproveCancellation decides a pending application and cascades the
// approval to the delivery record and the lead. The decision itself is a
// guarded single-row update, so of two racing admins exactly one wins; the
// loser gets ErrAlreadyDecided. Cascade writes after the decision are
// idempotent and, on partial failure, re-driven by the repair queue rather
// than rolled back.
func (s *workflowService) ApproveCancellation(ctx context.Context, applicationID, approver string) (*dto.DecisionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	app, err := uow.CancellationRepository().FindOne(ctx, specification.ByID{ID: applicationID})
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, fmt.Errorf("cancellation application %s: %w", applicationID, apperror.ErrNotFound)
	}
	if app.Status != entity.ApplicationStatusPending {
		return nil, fmt.Errorf("cancellation application %s: %w", applicationID, apperror.ErrAlreadyDecided)
	}

	check, err := s.consistency.Check(ctx, app.LeadID, app.MerchantID)
	if err != nil {
		return nil, err
	}

	var warnings []string
	if !check.Clean {
		if s.hardBlockOnActive {
			// The application stays pending so the admin can retry once the
			// other merchants have wound down.
			return nil, &apperror.ConflictError{LeadID: app.LeadID, ActiveMerchants: check.ActiveMerchants}
		}
		warnings = append(warnings, fmt.Sprintf(
			"lead %s still has active engagement from merchant(s) %s; approval proceeded anyway",
			app.LeadID, strings.Join(check.ActiveMerchants, ", "),
		))
		s.logger.Warn("WORKFLOW", "Approving cancellation despite active sibling merchants", map[string]interface{}{
			"application_id":   app.ID,
			"lead_id":          app.LeadID,
			"active_merchants": check.ActiveMerchants,
		})
	}

	decidedAt := s.now()
	won, err := uow.CancellationRepository().Decide(ctx, app.ID, entity.ApplicationStatusApproved, approver, "", decidedAt)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, fmt.Errorf("cancellation application %s: %w", applicationID, apperror.ErrAlreadyDecided)
	}
	app.Status = entity.ApplicationStatusApproved
	app.Approver = approver
	app.DecidedAt = &decidedAt

	s.runApprovalCascade(ctx, uow, app)
	s.caseCache.Invalidate(ctx, "cases:cancelable:"+app.MerchantID)

	s.eventPublisher.PublishCancellationApproved(ctx, app)

	return &dto.DecisionResponse{
		ApplicationId: app.ID,
		Status:        string(entity.ApplicationStatusApproved),
		DecidedAt:     decidedAt,
		Warnings:      warnings,
	}, nil
}

// runApprovalCascade applies the two status writes that follow an approved
// cancellation. Both are absolute set-to-value updates; any failure leaves
// the decision in place and enqueues a repair message instead of rolling
// back.
func (s *workflowService) runApprovalCascade(ctx context.Context, uow unitofwork.UnitOfWork, app *entity.CancellationApplication) {
	cascadeErr := uow.DeliveryRecordRepository().UpdateDetailStatus(ctx, app.LeadID, app.MerchantID, entity.DeliveryStatusCancellationApproved)
	if cascadeErr == nil {
		cascadeErr = uow.LeadRepository().UpdateManagementStatus(ctx, app.LeadID, entity.LeadStatusDeliveredNoContract)
	}
	if cascadeErr == nil {
		cascadeErr = uow.CancellationRepository().MarkLeadStatusUpdated(ctx, app.ID)
	}
	if cascadeErr == nil {
		return
	}

	s.logger.Error("WORKFLOW", "Approval cascade failed, enqueueing repair", map[string]interface{}{
		"application_id": app.ID,
		"lead_id":        app.LeadID,
		"merchant_id":    app.MerchantID,
		"error":          cascadeErr.Error(),
	})

	payload, err := json.Marshal(dto.CascadeRepairMessage{
		ApplicationId: app.ID,
		LeadId:        app.LeadID,
		MerchantId:    app.MerchantID,
	})
	if err == nil {
		err = s.publisherService.Publish(ctx, payload)
	}
	if err != nil {
		// Last resort: the reconciliation sweep picks this up via the
		// lead_status_updated flag.
		s.logger.Error("WORKFLOW", "Failed to enqueue cascade repair", map[string]interface{}{
			"application_id": app.ID,
			"error":          err.Error(),
		})
	}
}

func (s *workflowService) RejectCancellation(ctx context.Context, applicationID, approver, reason string) (*dto.DecisionResponse, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, apperror.ErrMissingReason
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	app, err := uow.CancellationRepository().FindOne(ctx, specification.ByID{ID: applicationID})
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, fmt.Errorf("cancellation application %s: %w", applicationID, apperror.ErrNotFound)
	}
	if app.Status != entity.ApplicationStatusPending {
		return nil, fmt.Errorf("cancellation application %s: %w", applicationID, apperror.ErrAlreadyDecided)
	}

	decidedAt := s.now()
	won, err := uow.CancellationRepository().Decide(ctx, app.ID, entity.ApplicationStatusRejected, approver, reason, decidedAt)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, fmt.Errorf("cancellation application %s: %w", applicationID, apperror.ErrAlreadyDecided)
	}
	app.Status = entity.ApplicationStatusRejected
	app.Approver = approver
	app.DecidedAt = &decidedAt
	app.RejectReason = reason

	// Rejection touches nothing outside the application row; the pair may
	// submit again immediately.
	s.caseCache.Invalidate(ctx, "cases:cancelable:"+app.MerchantID)
	s.eventPublisher.PublishCancellationRejected(ctx, app, reason)

	return &dto.DecisionResponse{
		ApplicationId: app.ID,
		Status:        string(entity.ApplicationStatusRejected),
		DecidedAt:     decidedAt,
	}, nil
}

// ApproveExtension records the decision only. The widened deadline takes
// effect through the eligibility evaluator's approved-extension lookup, not
// through any write to the lead or delivery record.
func (s *workflowService) ApproveExtension(ctx context.Context, applicationID, approver string) (*dto.DecisionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	app, err := uow.ExtensionRepository().FindOne(ctx, specification.ByID{ID: applicationID})
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, fmt.Errorf("extension application %s: %w", applicationID, apperror.ErrNotFound)
	}
	if app.Status != entity.ApplicationStatusPending {
		return nil, fmt.Errorf("extension application %s: %w", applicationID, apperror.ErrAlreadyDecided)
	}

	decidedAt := s.now()
	won, err := uow.ExtensionRepository().Decide(ctx, app.ID, entity.ApplicationStatusApproved, approver, "", decidedAt)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, fmt.Errorf("extension application %s: %w", applicationID, apperror.ErrAlreadyDecided)
	}
	app.Status = entity.ApplicationStatusApproved
	app.Approver = approver
	app.DecidedAt = &decidedAt

	s.caseCache.Invalidate(ctx, "cases:extension:"+app.MerchantID)
	s.caseCache.Invalidate(ctx, "cases:cancelable:"+app.MerchantID)
	s.eventPublisher.PublishExtensionApproved(ctx, app)

	return &dto.DecisionResponse{
		ApplicationId: app.ID,
		Status:        string(entity.ApplicationStatusApproved),
		DecidedAt:     decidedAt,
	}, nil
}

func (s *workflowService) RejectExtension(ctx context.Context, applicationID, approver, reason string) (*dto.DecisionResponse, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, apperror.ErrMissingReason
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	app, err := uow.ExtensionRepository().FindOne(ctx, specification.ByID{ID: applicationID})
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, fmt.Errorf("extension application %s: %w", applicationID, apperror.ErrNotFound)
	}
	if app.Status != entity.ApplicationStatusPending {
		return nil, fmt.Errorf("extension application %s: %w", applicationID, apperror.ErrAlreadyDecided)
	}

	decidedAt := s.now()
	won, err := uow.ExtensionRepository().Decide(ctx, app.ID, entity.ApplicationStatusRejected, approver, reason, decidedAt)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, fmt.Errorf("extension application %s: %w", applicationID, apperror.ErrAlreadyDecided)
	}
	app.Status = entity.ApplicationStatusRejected
	app.Approver = approver
	app.DecidedAt = &decidedAt
	app.RejectReason = reason

	s.caseCache.Invalidate(ctx, "cases:extension:"+app.MerchantID)
	s.eventPublisher.PublishExtensionRejected(ctx, app, reason)

	return &dto.DecisionResponse{
		ApplicationId: app.ID,
		Status:        string(entity.ApplicationStatusRejected),
		DecidedAt:     decidedAt,
	}, nil
}

// listSpecs builds the admin listing query: optional status filter, newest
// first, paginated.
func listSpecs(status string, page, pageSize int) ([]specification.Specification, error) {
	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if status != "" {
		parsed, err := entity.ParseApplicationStatus(status)
		if err != nil {
			return nil, err
		}
		specs = append(specs, specification.ByStatus{Status: parsed})
	}
	if pageSize > 0 {
		if page < 1 {
			page = 1
		}
		specs = append(specs, specification.Pagination{Offset: (page - 1) * pageSize, Limit: pageSize})
	}
	return specs, nil
}
