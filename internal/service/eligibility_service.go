package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/apperror"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/dto"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/entity"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/pkg/logger"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/contract"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/specification"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/unitofwork"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/pkg/deadline"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/pkg/store"
)

// Verdict is the outcome of one pair eligibility evaluation. When Eligible
// is false, Cause holds the typed error a submission would receive.
type Verdict struct {
	Eligible          bool
	Cause             error
	DeliveredAt       time.Time
	DetailStatus      entity.DeliveryDetailStatus
	EffectiveDeadline time.Time
	DeadlineExtended  bool
}

type IEligibilityService interface {
	CanSubmitCancellation(ctx context.Context, leadID, merchantID string, now time.Time) (*Verdict, error)
	CanSubmitExtension(ctx context.Context, leadID, merchantID string, now time.Time) (*Verdict, error)

	// CheckEvidence compares submitted counters against the reason
	// category's thresholds. Returns the category and any shortfalls.
	CheckEvidence(ctx context.Context, reasonCode string, phoneCount, smsCount int) (*entity.CancellationReason, []apperror.EvidenceShortfall, error)

	ListCancelableCases(ctx context.Context, merchantID string, now time.Time) ([]*dto.CancelableCaseResponse, error)
	ListExtensionEligibleCases(ctx context.Context, merchantID string, now time.Time) ([]*dto.ExtensionEligibleCaseResponse, error)
}

type eligibilityService struct {
	uowFactory unitofwork.RepositoryFactory
	reasons    contract.ReasonRepository // cached reference data
	policy     deadline.Policy
	caseCache  *store.CaseCache
	logger     logger.ILogger
}

func NewEligibilityService(
	uowFactory unitofwork.RepositoryFactory,
	reasons contract.ReasonRepository,
	policy deadline.Policy,
	caseCache *store.CaseCache,
	log logger.ILogger,
) IEligibilityService {
	return &eligibilityService{
		uowFactory: uowFactory,
		reasons:    reasons,
		policy:     policy,
		caseCache:  caseCache,
		logger:     log,
	}
}

// CanSubmitCancellation evaluates the pair against the cancellation rules:
// a delivery record must exist, the lead must not be contracted to anyone,
// no active cancellation application may exist, and now must be within the
// effective deadline (extended when an approved extension exists). One
// consistent now is used for the whole evaluation.
func (s *eligibilityService) CanSubmitCancellation(ctx context.Context, leadID, merchantID string, now time.Time) (*Verdict, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	record, lead, err := s.loadPair(ctx, uow, leadID, merchantID)
	if err != nil {
		return nil, err
	}

	v := &Verdict{DeliveredAt: record.DeliveredAt, DetailStatus: record.DetailStatus}

	if lead.IsContracted() {
		v.Cause = apperror.NewNotEligible("lead %s is contracted to merchant %s", leadID, lead.ContractedMerchantID)
		return v, nil
	}

	active, err := uow.CancellationRepository().FindActiveByPair(ctx, leadID, merchantID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		v.Cause = fmt.Errorf("cancellation application %s: %w", active.ID, apperror.ErrDuplicateApplication)
		return v, nil
	}

	v.EffectiveDeadline = s.policy.Basic(record.DeliveredAt)

	approved, err := uow.ExtensionRepository().FindApprovedByPair(ctx, leadID, merchantID)
	if err != nil {
		return nil, err
	}
	if approved != nil {
		v.EffectiveDeadline = approved.ExtendedDeadline
		v.DeadlineExtended = true
	}

	if now.After(v.EffectiveDeadline) {
		v.Cause = apperror.NewNotEligible("cancellation deadline %s has passed", v.EffectiveDeadline.Format("2006-01-02 15:04:05"))
		return v, nil
	}

	v.Eligible = true
	return v, nil
}

// CanSubmitExtension applies the same delivery/contract/duplicate checks
// against the extension uniqueness domain, always measured against the
// basic deadline: an extension cannot itself be extended.
func (s *eligibilityService) CanSubmitExtension(ctx context.Context, leadID, merchantID string, now time.Time) (*Verdict, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	record, lead, err := s.loadPair(ctx, uow, leadID, merchantID)
	if err != nil {
		return nil, err
	}

	v := &Verdict{DeliveredAt: record.DeliveredAt, DetailStatus: record.DetailStatus}

	if lead.IsContracted() {
		v.Cause = apperror.NewNotEligible("lead %s is contracted to merchant %s", leadID, lead.ContractedMerchantID)
		return v, nil
	}

	active, err := uow.ExtensionRepository().FindActiveByPair(ctx, leadID, merchantID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		v.Cause = fmt.Errorf("extension application %s: %w", active.ID, apperror.ErrDuplicateApplication)
		return v, nil
	}

	v.EffectiveDeadline = s.policy.Basic(record.DeliveredAt)
	if now.After(v.EffectiveDeadline) {
		v.Cause = apperror.NewNotEligible("extension deadline %s has passed", v.EffectiveDeadline.Format("2006-01-02 15:04:05"))
		return v, nil
	}

	v.Eligible = true
	return v, nil
}

func (s *eligibilityService) CheckEvidence(ctx context.Context, reasonCode string, phoneCount, smsCount int) (*entity.CancellationReason, []apperror.EvidenceShortfall, error) {
	reason, err := s.reasons.FindByCode(ctx, reasonCode)
	if err != nil {
		return nil, nil, err
	}
	if reason == nil || !reason.Active {
		return nil, nil, fmt.Errorf("reason category %q: %w", reasonCode, apperror.ErrNotFound)
	}

	var shortfalls []apperror.EvidenceShortfall
	if phoneCount < reason.MinPhoneCount {
		shortfalls = append(shortfalls, apperror.EvidenceShortfall{
			Field:    "phone contacts",
			Required: reason.MinPhoneCount,
			Actual:   phoneCount,
		})
	}
	if smsCount < reason.MinSMSCount {
		shortfalls = append(shortfalls, apperror.EvidenceShortfall{
			Field:    "SMS contacts",
			Required: reason.MinSMSCount,
			Actual:   smsCount,
		})
	}

	return reason, shortfalls, nil
}

func (s *eligibilityService) ListCancelableCases(ctx context.Context, merchantID string, now time.Time) ([]*dto.CancelableCaseResponse, error) {
	cacheKey := "cases:cancelable:" + merchantID
	if data := s.caseCache.Get(ctx, cacheKey); data != nil {
		var cached []*dto.CancelableCaseResponse
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
		s.logger.Warn("ELIGIBILITY", "Dropping corrupt case cache entry", map[string]interface{}{"key": cacheKey})
		s.caseCache.Invalidate(ctx, cacheKey)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	records, err := uow.DeliveryRecordRepository().FindAll(ctx, specification.ByMerchant{MerchantID: merchantID})
	if err != nil {
		return nil, err
	}

	res := []*dto.CancelableCaseResponse{}
	for _, rec := range records {
		v, err := s.CanSubmitCancellation(ctx, rec.LeadID, merchantID, now)
		if err != nil {
			return nil, err
		}
		if !v.Eligible {
			continue
		}
		res = append(res, &dto.CancelableCaseResponse{
			LeadId:            rec.LeadID,
			DeliveredAt:       rec.DeliveredAt,
			DetailStatus:      string(rec.DetailStatus),
			EffectiveDeadline: v.EffectiveDeadline,
			DeadlineExtended:  v.DeadlineExtended,
		})
	}

	if data, err := json.Marshal(res); err == nil {
		s.caseCache.Set(ctx, cacheKey, data)
	}
	return res, nil
}

func (s *eligibilityService) ListExtensionEligibleCases(ctx context.Context, merchantID string, now time.Time) ([]*dto.ExtensionEligibleCaseResponse, error) {
	cacheKey := "cases:extension:" + merchantID
	if data := s.caseCache.Get(ctx, cacheKey); data != nil {
		var cached []*dto.ExtensionEligibleCaseResponse
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
		s.logger.Warn("ELIGIBILITY", "Dropping corrupt case cache entry", map[string]interface{}{"key": cacheKey})
		s.caseCache.Invalidate(ctx, cacheKey)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	records, err := uow.DeliveryRecordRepository().FindAll(ctx, specification.ByMerchant{MerchantID: merchantID})
	if err != nil {
		return nil, err
	}

	res := []*dto.ExtensionEligibleCaseResponse{}
	for _, rec := range records {
		v, err := s.CanSubmitExtension(ctx, rec.LeadID, merchantID, now)
		if err != nil {
			return nil, err
		}
		if !v.Eligible {
			continue
		}
		res = append(res, &dto.ExtensionEligibleCaseResponse{
			LeadId:        rec.LeadID,
			DeliveredAt:   rec.DeliveredAt,
			DetailStatus:  string(rec.DetailStatus),
			BasicDeadline: v.EffectiveDeadline,
		})
	}

	if data, err := json.Marshal(res); err == nil {
		s.caseCache.Set(ctx, cacheKey, data)
	}
	return res, nil
}

func (s *eligibilityService) loadPair(ctx context.Context, uow unitofwork.UnitOfWork, leadID, merchantID string) (*entity.DeliveryRecord, *entity.Lead, error) {
	record, err := uow.DeliveryRecordRepository().FindByPair(ctx, leadID, merchantID)
	if err != nil {
		return nil, nil, err
	}
	if record == nil {
		return nil, nil, fmt.Errorf("delivery record for lead %s merchant %s: %w", leadID, merchantID, apperror.ErrNotFound)
	}

	lead, err := uow.LeadRepository().FindOne(ctx, specification.ByID{ID: leadID})
	if err != nil {
		return nil, nil, err
	}
	if lead == nil {
		return nil, nil, fmt.Errorf("lead %s: %w", leadID, apperror.ErrNotFound)
	}

	return record, lead, nil
}
