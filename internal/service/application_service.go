package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/apperror"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/dto"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/entity"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/pkg/logger"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/unitofwork"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/pkg/deadline"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/pkg/store"
)

type IApplicationService interface {
	SubmitCancellation(ctx context.Context, merchantID string, req *dto.SubmitCancellationRequest) (*dto.SubmitCancellationResponse, error)
	SubmitExtension(ctx context.Context, merchantID string, req *dto.SubmitExtensionRequest) (*dto.SubmitExtensionResponse, error)
}

type applicationService struct {
	uowFactory  unitofwork.RepositoryFactory
	eligibility IEligibilityService
	policy      deadline.Policy
	caseCache   *store.CaseCache
	logger      logger.ILogger
	now         func() time.Time
}

func NewApplicationService(
	uowFactory unitofwork.RepositoryFactory,
	eligibility IEligibilityService,
	policy deadline.Policy,
	caseCache *store.CaseCache,
	log logger.ILogger,
) IApplicationService {
	return &applicationService{
		uowFactory:  uowFactory,
		eligibility: eligibility,
		policy:      policy,
		caseCache:   caseCache,
		logger:      log,
		now:         time.Now,
	}
}

// SubmitCancellation validates the pair's eligibility and the reason
// category's evidence thresholds, then stores the application. The store
// re-checks the no-active-duplicate invariant at write time, so a race
// between two submissions resolves there, not here.
func (s *applicationService) SubmitCancellation(ctx context.Context, merchantID string, req *dto.SubmitCancellationRequest) (*dto.SubmitCancellationResponse, error) {
	now := s.now()

	verdict, err := s.eligibility.CanSubmitCancellation(ctx, req.LeadId, merchantID, now)
	if err != nil {
		return nil, err
	}
	if !verdict.Eligible {
		return nil, verdict.Cause
	}

	reason, shortfalls, err := s.eligibility.CheckEvidence(ctx, req.ReasonCategory, req.PhoneCount, req.SmsCount)
	if err != nil {
		return nil, err
	}
	if len(shortfalls) > 0 {
		return nil, &apperror.NotEligibleError{
			Reason:     fmt.Sprintf("insufficient evidence for reason %q", reason.Label),
			Shortfalls: shortfalls,
		}
	}

	app := &entity.CancellationApplication{
		ID:               newApplicationID("CN", now),
		LeadID:           req.LeadId,
		MerchantID:       merchantID,
		ApplicantName:    req.ApplicantName,
		ReasonCategory:   reason.Code,
		ReasonDetail:     req.ReasonDetail,
		AdditionalFields: req.Fields,
		PhoneCount:       req.PhoneCount,
		SMSCount:         req.SmsCount,
		LastContactAt:    req.LastContactAt,
		ContactedAt:      req.ContactedAt,
		BasicDeadline:    s.policy.Basic(verdict.DeliveredAt),
		WithinDeadline:   !now.After(verdict.EffectiveDeadline),
		Status:           entity.ApplicationStatusPending,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.CancellationRepository().Create(ctx, app); err != nil {
		return nil, err
	}

	s.caseCache.Invalidate(ctx, "cases:cancelable:"+merchantID)
	s.logger.Info("APPLICATION", "Cancellation application submitted", map[string]interface{}{
		"application_id": app.ID,
		"lead_id":        app.LeadID,
		"merchant_id":    app.MerchantID,
		"reason":         app.ReasonCategory,
	})

	return &dto.SubmitCancellationResponse{
		ApplicationId:  app.ID,
		Status:         string(app.Status),
		BasicDeadline:  app.BasicDeadline,
		WithinDeadline: app.WithinDeadline,
		Message:        "Cancellation application received and awaiting review",
	}, nil
}

// SubmitExtension validates against the basic deadline only and requires
// non-empty contact date, appointment date and reason evidence.
func (s *applicationService) SubmitExtension(ctx context.Context, merchantID string, req *dto.SubmitExtensionRequest) (*dto.SubmitExtensionResponse, error) {
	now := s.now()

	if req.ContactedAt.IsZero() || req.AppointmentAt.IsZero() || strings.TrimSpace(req.Reason) == "" {
		return nil, apperror.NewNotEligible("extension requires contact date, appointment date and reason")
	}

	verdict, err := s.eligibility.CanSubmitExtension(ctx, req.LeadId, merchantID, now)
	if err != nil {
		return nil, err
	}
	if !verdict.Eligible {
		return nil, verdict.Cause
	}

	app := &entity.ExtensionApplication{
		ID:               newApplicationID("DE", now),
		LeadID:           req.LeadId,
		MerchantID:       merchantID,
		ApplicantName:    req.ApplicantName,
		ContactedAt:      req.ContactedAt,
		AppointmentAt:    req.AppointmentAt,
		Reason:           req.Reason,
		BasicDeadline:    s.policy.Basic(verdict.DeliveredAt),
		ExtendedDeadline: s.policy.Extended(verdict.DeliveredAt),
		Status:           entity.ApplicationStatusPending,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ExtensionRepository().Create(ctx, app); err != nil {
		return nil, err
	}

	s.caseCache.Invalidate(ctx, "cases:extension:"+merchantID)
	s.logger.Info("APPLICATION", "Extension application submitted", map[string]interface{}{
		"application_id": app.ID,
		"lead_id":        app.LeadID,
		"merchant_id":    app.MerchantID,
	})

	return &dto.SubmitExtensionResponse{
		ApplicationId:    app.ID,
		Status:           string(app.Status),
		BasicDeadline:    app.BasicDeadline,
		ExtendedDeadline: app.ExtendedDeadline,
		Message:          "Extension application received and awaiting review",
	}, nil
}

// newApplicationID follows the business id scheme: prefix + second-level
// timestamp + entropy suffix. Collisions at business volume are accepted as
// negligible; the primary key still rejects the pathological case.
func newApplicationID(prefix string, now time.Time) string {
	return fmt.Sprintf("%s%s%03d", prefix, now.Format("20060102150405"), rand.Intn(1000))
}
