package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/apperror"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/entity"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/memory"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/pkg/deadline"
)

func newEligibilityFixture() (*memory.Factory, IEligibilityService) {
	f := memory.NewFactory()
	svc := NewEligibilityService(f, f.UoW.Reasons, deadline.DefaultPolicy(), nil, nopLogger{})
	return f, svc
}

func TestCanSubmitCancellationWithinBasicDeadline(t *testing.T) {
	f, svc := newEligibilityFixture()
	delivered := time.Date(2024, 1, 15, 10, 0, 0, 0, jst)
	seedPair(f, "CV-1001", "M-01", delivered, entity.DeliveryStatusInProgress)

	now := time.Date(2024, 1, 20, 12, 0, 0, 0, jst)
	v, err := svc.CanSubmitCancellation(context.Background(), "CV-1001", "M-01", now)

	require.NoError(t, err)
	assert.True(t, v.Eligible)
	assert.Equal(t, time.Date(2024, 1, 22, 23, 59, 59, 0, jst), v.EffectiveDeadline)
	assert.False(t, v.DeadlineExtended)
}

func TestCanSubmitCancellationAfterBasicDeadline(t *testing.T) {
	f, svc := newEligibilityFixture()
	delivered := time.Date(2024, 1, 15, 10, 0, 0, 0, jst)
	seedPair(f, "CV-1001", "M-01", delivered, entity.DeliveryStatusInProgress)

	now := time.Date(2024, 1, 23, 0, 0, 0, 0, jst)
	v, err := svc.CanSubmitCancellation(context.Background(), "CV-1001", "M-01", now)

	require.NoError(t, err)
	assert.False(t, v.Eligible)
	assert.ErrorIs(t, v.Cause, apperror.ErrNotEligible)
}

func TestApprovedExtensionWidensDeadline(t *testing.T) {
	// Delivered mid-January: basic deadline Jan 22, extended deadline the
	// last day of February. 2024 is a leap year.
	f, svc := newEligibilityFixture()
	delivered := time.Date(2024, 1, 15, 10, 0, 0, 0, jst)
	seedPair(f, "CV-1001", "M-01", delivered, entity.DeliveryStatusInProgress)

	f.UoW.Extensions.Seed(&entity.ExtensionApplication{
		ID:               "DE20240118090000001",
		LeadID:           "CV-1001",
		MerchantID:       "M-01",
		BasicDeadline:    deadline.Basic(delivered),
		ExtendedDeadline: deadline.Extended(delivered),
		Status:           entity.ApplicationStatusApproved,
	})

	// Well past the basic deadline but inside the extended one.
	now := time.Date(2024, 2, 10, 12, 0, 0, 0, jst)
	v, err := svc.CanSubmitCancellation(context.Background(), "CV-1001", "M-01", now)

	require.NoError(t, err)
	assert.True(t, v.Eligible)
	assert.True(t, v.DeadlineExtended)
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 0, jst), v.EffectiveDeadline)
}

func TestPendingExtensionDoesNotWidenDeadline(t *testing.T) {
	f, svc := newEligibilityFixture()
	delivered := time.Date(2024, 1, 15, 10, 0, 0, 0, jst)
	seedPair(f, "CV-1001", "M-01", delivered, entity.DeliveryStatusInProgress)

	f.UoW.Extensions.Seed(&entity.ExtensionApplication{
		ID:               "DE20240118090000001",
		LeadID:           "CV-1001",
		MerchantID:       "M-01",
		BasicDeadline:    deadline.Basic(delivered),
		ExtendedDeadline: deadline.Extended(delivered),
		Status:           entity.ApplicationStatusPending,
	})

	now := time.Date(2024, 2, 10, 12, 0, 0, 0, jst)
	v, err := svc.CanSubmitCancellation(context.Background(), "CV-1001", "M-01", now)

	require.NoError(t, err)
	assert.False(t, v.Eligible)
}

func TestContractedLeadIsClosedToApplications(t *testing.T) {
	f, svc := newEligibilityFixture()
	delivered := time.Date(2024, 1, 15, 10, 0, 0, 0, jst)
	seedPair(f, "CV-1001", "M-01", delivered, entity.DeliveryStatusInProgress)
	f.UoW.Leads.Seed(&entity.Lead{
		ID:                   "CV-1001",
		DeliveredAt:          delivered,
		MerchantIDs:          []string{"M-01", "M-02"},
		ManagementStatus:     entity.LeadStatusContracted,
		ContractedMerchantID: "M-02",
	})

	now := delivered.Add(24 * time.Hour)

	v, err := svc.CanSubmitCancellation(context.Background(), "CV-1001", "M-01", now)
	require.NoError(t, err)
	assert.False(t, v.Eligible)
	assert.ErrorIs(t, v.Cause, apperror.ErrNotEligible)

	v, err = svc.CanSubmitExtension(context.Background(), "CV-1001", "M-01", now)
	require.NoError(t, err)
	assert.False(t, v.Eligible)
}

func TestActiveApplicationBlocksResubmission(t *testing.T) {
	f, svc := newEligibilityFixture()
	delivered := time.Date(2024, 1, 15, 10, 0, 0, 0, jst)
	seedPair(f, "CV-1001", "M-01", delivered, entity.DeliveryStatusInProgress)

	now := delivered.Add(24 * time.Hour)

	for _, status := range []entity.ApplicationStatus{
		entity.ApplicationStatusPending,
		entity.ApplicationStatusApproved,
	} {
		f.UoW.Cancellations.Seed(&entity.CancellationApplication{
			ID:         "CN20240116100000001",
			LeadID:     "CV-1001",
			MerchantID: "M-01",
			Status:     status,
		})

		v, err := svc.CanSubmitCancellation(context.Background(), "CV-1001", "M-01", now)
		require.NoError(t, err)
		assert.False(t, v.Eligible, "status %s must block", status)
		assert.ErrorIs(t, v.Cause, apperror.ErrDuplicateApplication)
	}
}

func TestRejectedApplicationFreesTheSlot(t *testing.T) {
	f, svc := newEligibilityFixture()
	delivered := time.Date(2024, 1, 15, 10, 0, 0, 0, jst)
	seedPair(f, "CV-1001", "M-01", delivered, entity.DeliveryStatusInProgress)

	f.UoW.Cancellations.Seed(&entity.CancellationApplication{
		ID:         "CN20240116100000001",
		LeadID:     "CV-1001",
		MerchantID: "M-01",
		Status:     entity.ApplicationStatusRejected,
	})

	now := delivered.Add(24 * time.Hour)
	v, err := svc.CanSubmitCancellation(context.Background(), "CV-1001", "M-01", now)

	require.NoError(t, err)
	assert.True(t, v.Eligible)
}

func TestUnknownPairIsNotFound(t *testing.T) {
	_, svc := newEligibilityFixture()

	_, err := svc.CanSubmitCancellation(context.Background(), "CV-9999", "M-01", time.Now())

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCheckEvidenceReportsEveryShortfall(t *testing.T) {
	f, svc := newEligibilityFixture()
	f.UoW.Reasons.Seed(&entity.CancellationReason{
		Code:          "no_contact",
		Label:         "Customer unreachable",
		MinPhoneCount: 3,
		MinSMSCount:   1,
		Active:        true,
	})

	// Scenario: one phone call logged against a 3-call minimum, no SMS.
	reason, shortfalls, err := svc.CheckEvidence(context.Background(), "no_contact", 1, 0)

	require.NoError(t, err)
	assert.Equal(t, "Customer unreachable", reason.Label)
	require.Len(t, shortfalls, 2)
	assert.Equal(t, 3, shortfalls[0].Required)
	assert.Equal(t, 1, shortfalls[0].Actual)
	assert.Contains(t, shortfalls[0].String(), "requires at least 3")
	assert.Equal(t, 1, shortfalls[1].Required)
	assert.Equal(t, 0, shortfalls[1].Actual)
}

func TestCheckEvidencePassesAtThreshold(t *testing.T) {
	f, svc := newEligibilityFixture()
	f.UoW.Reasons.Seed(&entity.CancellationReason{
		Code:          "no_contact",
		MinPhoneCount: 3,
		MinSMSCount:   1,
		Active:        true,
	})

	_, shortfalls, err := svc.CheckEvidence(context.Background(), "no_contact", 3, 1)

	require.NoError(t, err)
	assert.Empty(t, shortfalls)
}

func TestCheckEvidenceUnknownReason(t *testing.T) {
	_, svc := newEligibilityFixture()

	_, _, err := svc.CheckEvidence(context.Background(), "nonexistent", 5, 5)

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestListCancelableCasesFiltersIneligible(t *testing.T) {
	f, svc := newEligibilityFixture()
	delivered := time.Date(2024, 1, 15, 10, 0, 0, 0, jst)

	seedPair(f, "CV-1001", "M-01", delivered, entity.DeliveryStatusInProgress)

	// Expired pair for the same merchant.
	old := time.Date(2023, 11, 1, 10, 0, 0, 0, jst)
	f.UoW.Leads.Seed(&entity.Lead{ID: "CV-0900", DeliveredAt: old, MerchantIDs: []string{"M-01"}, ManagementStatus: entity.LeadStatusDelivered})
	seedSibling(f, "CV-0900", "M-01", old, entity.DeliveryStatusInProgress)

	// Another merchant's pair must not leak into the listing.
	seedSibling(f, "CV-1001", "M-02", delivered, entity.DeliveryStatusInProgress)

	now := time.Date(2024, 1, 20, 12, 0, 0, 0, jst)
	cases, err := svc.ListCancelableCases(context.Background(), "M-01", now)

	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, "CV-1001", cases[0].LeadId)
	assert.Equal(t, time.Date(2024, 1, 22, 23, 59, 59, 0, jst), cases[0].EffectiveDeadline)
}
