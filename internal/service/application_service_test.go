package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/apperror"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/dto"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/entity"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/memory"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/specification"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/pkg/deadline"
)

func newApplicationFixture(now time.Time) (*memory.Factory, *applicationService) {
	f := memory.NewFactory()
	policy := deadline.DefaultPolicy()
	eligibility := NewEligibilityService(f, f.UoW.Reasons, policy, nil, nopLogger{})
	svc := NewApplicationService(f, eligibility, policy, nil, nopLogger{}).(*applicationService)
	svc.now = func() time.Time { return now }
	return f, svc
}

func seedNoContactReason(f *memory.Factory) {
	f.UoW.Reasons.Seed(&entity.CancellationReason{
		Code:          "no_contact",
		Label:         "Customer unreachable",
		MinPhoneCount: 3,
		MinSMSCount:   1,
		Active:        true,
	})
}

func TestSubmitCancellationStoresPendingApplication(t *testing.T) {
	now := time.Date(2024, 1, 20, 10, 30, 0, 0, jst)
	f, svc := newApplicationFixture(now)
	delivered := time.Date(2024, 1, 15, 10, 0, 0, 0, jst)
	seedPair(f, "CV-1001", "M-01", delivered, entity.DeliveryStatusInProgress)
	seedNoContactReason(f)

	res, err := svc.SubmitCancellation(context.Background(), "M-01", &dto.SubmitCancellationRequest{
		LeadId:         "CV-1001",
		ApplicantName:  "Sato",
		ReasonCategory: "no_contact",
		ReasonDetail:   "Called repeatedly over three days, no answer.",
		PhoneCount:     4,
		SmsCount:       2,
	})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.ApplicationId, "CN20240120103000"))
	assert.Equal(t, "pending", res.Status)
	assert.Equal(t, time.Date(2024, 1, 22, 23, 59, 59, 0, jst), res.BasicDeadline)
	assert.True(t, res.WithinDeadline)

	stored, err := f.UoW.Cancellations.FindOne(context.Background(), specification.ByID{ID: res.ApplicationId})
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, entity.ApplicationStatusPending, stored.Status)
	assert.Equal(t, 4, stored.PhoneCount)
	assert.Equal(t, 2, stored.SMSCount)
	assert.Equal(t, "no_contact", stored.ReasonCategory)
}

func TestSubmitCancellationEvidenceShortfall(t *testing.T) {
	now := time.Date(2024, 1, 20, 10, 30, 0, 0, jst)
	f, svc := newApplicationFixture(now)
	delivered := time.Date(2024, 1, 15, 10, 0, 0, 0, jst)
	seedPair(f, "CV-1001", "M-01", delivered, entity.DeliveryStatusInProgress)
	seedNoContactReason(f)

	_, err := svc.SubmitCancellation(context.Background(), "M-01", &dto.SubmitCancellationRequest{
		LeadId:         "CV-1001",
		ApplicantName:  "Sato",
		ReasonCategory: "no_contact",
		ReasonDetail:   "Tried once, gave up.",
		PhoneCount:     1,
		SmsCount:       0,
	})

	var notEligible *apperror.NotEligibleError
	require.ErrorAs(t, err, &notEligible)
	require.Len(t, notEligible.Shortfalls, 2)
	assert.Contains(t, err.Error(), "requires at least 3")

	// Nothing must be stored after a refused submission.
	apps, findErr := f.UoW.Cancellations.FindAll(context.Background())
	require.NoError(t, findErr)
	assert.Empty(t, apps)
}

func TestSubmitCancellationDuplicateRejected(t *testing.T) {
	now := time.Date(2024, 1, 20, 10, 30, 0, 0, jst)
	f, svc := newApplicationFixture(now)
	delivered := time.Date(2024, 1, 15, 10, 0, 0, 0, jst)
	seedPair(f, "CV-1001", "M-01", delivered, entity.DeliveryStatusInProgress)
	seedNoContactReason(f)

	req := &dto.SubmitCancellationRequest{
		LeadId:         "CV-1001",
		ApplicantName:  "Sato",
		ReasonCategory: "no_contact",
		ReasonDetail:   "Called repeatedly over three days, no answer.",
		PhoneCount:     4,
		SmsCount:       2,
	}

	_, err := svc.SubmitCancellation(context.Background(), "M-01", req)
	require.NoError(t, err)

	_, err = svc.SubmitCancellation(context.Background(), "M-01", req)
	assert.ErrorIs(t, err, apperror.ErrDuplicateApplication)
}

func TestSubmitExtensionStoresBothDeadlines(t *testing.T) {
	now := time.Date(2024, 1, 18, 9, 0, 0, 0, jst)
	f, svc := newApplicationFixture(now)
	delivered := time.Date(2024, 1, 15, 10, 0, 0, 0, jst)
	seedPair(f, "CV-1001", "M-01", delivered, entity.DeliveryStatusAppointmentConfirmed)

	res, err := svc.SubmitExtension(context.Background(), "M-01", &dto.SubmitExtensionRequest{
		LeadId:        "CV-1001",
		ApplicantName: "Sato",
		ContactedAt:   time.Date(2024, 1, 16, 14, 0, 0, 0, jst),
		AppointmentAt: time.Date(2024, 1, 25, 10, 0, 0, 0, jst),
		Reason:        "Survey scheduled after the customer returns from travel.",
	})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.ApplicationId, "DE20240118090000"))
	assert.Equal(t, time.Date(2024, 1, 22, 23, 59, 59, 0, jst), res.BasicDeadline)
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 0, jst), res.ExtendedDeadline)
}

func TestSubmitExtensionRequiresAllFields(t *testing.T) {
	now := time.Date(2024, 1, 18, 9, 0, 0, 0, jst)
	f, svc := newApplicationFixture(now)
	delivered := time.Date(2024, 1, 15, 10, 0, 0, 0, jst)
	seedPair(f, "CV-1001", "M-01", delivered, entity.DeliveryStatusInProgress)

	tests := []struct {
		name string
		req  dto.SubmitExtensionRequest
	}{
		{
			name: "missing contact date",
			req: dto.SubmitExtensionRequest{
				LeadId: "CV-1001", ApplicantName: "Sato",
				AppointmentAt: now.Add(48 * time.Hour), Reason: "Scheduled",
			},
		},
		{
			name: "missing appointment date",
			req: dto.SubmitExtensionRequest{
				LeadId: "CV-1001", ApplicantName: "Sato",
				ContactedAt: now.Add(-24 * time.Hour), Reason: "Scheduled",
			},
		},
		{
			name: "blank reason",
			req: dto.SubmitExtensionRequest{
				LeadId: "CV-1001", ApplicantName: "Sato",
				ContactedAt: now.Add(-24 * time.Hour), AppointmentAt: now.Add(48 * time.Hour),
				Reason: "   ",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SubmitExtension(context.Background(), "M-01", &tt.req)
			assert.ErrorIs(t, err, apperror.ErrNotEligible)
		})
	}
}

func TestSubmitExtensionAfterBasicDeadlineRefused(t *testing.T) {
	now := time.Date(2024, 1, 25, 9, 0, 0, 0, jst)
	f, svc := newApplicationFixture(now)
	delivered := time.Date(2024, 1, 15, 10, 0, 0, 0, jst)
	seedPair(f, "CV-1001", "M-01", delivered, entity.DeliveryStatusInProgress)

	_, err := svc.SubmitExtension(context.Background(), "M-01", &dto.SubmitExtensionRequest{
		LeadId:        "CV-1001",
		ApplicantName: "Sato",
		ContactedAt:   time.Date(2024, 1, 16, 14, 0, 0, 0, jst),
		AppointmentAt: time.Date(2024, 2, 1, 10, 0, 0, 0, jst),
		Reason:        "Appointment set for early February.",
	})

	assert.ErrorIs(t, err, apperror.ErrNotEligible)
}
