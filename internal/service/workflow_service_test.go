package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/apperror"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/dto"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/entity"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/memory"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/specification"
)

type workflowFixture struct {
	f      *memory.Factory
	queue  *capturingQueue
	events *capturingEvents
	svc    *workflowService
}

func newWorkflowFixture(hardBlock bool) *workflowFixture {
	f := memory.NewFactory()
	queue := &capturingQueue{}
	events := &capturingEvents{}
	svc := NewWorkflowService(f, NewConsistencyChecker(f), queue, events, nil, hardBlock, nopLogger{}).(*workflowService)
	svc.now = func() time.Time { return time.Date(2024, 1, 21, 15, 0, 0, 0, jst) }
	return &workflowFixture{f: f, queue: queue, events: events, svc: svc}
}

func (w *workflowFixture) seedPendingCancellation(id, leadID, merchantID string) {
	delivered := time.Date(2024, 1, 15, 10, 0, 0, 0, jst)
	seedPair(w.f, leadID, merchantID, delivered, entity.DeliveryStatusInProgress)
	w.f.UoW.Cancellations.Seed(&entity.CancellationApplication{
		ID:             id,
		LeadID:         leadID,
		MerchantID:     merchantID,
		ApplicantName:  "Sato",
		ReasonCategory: "no_contact",
		ReasonDetail:   "Customer never answered the phone.",
		BasicDeadline:  time.Date(2024, 1, 22, 23, 59, 59, 0, jst),
		WithinDeadline: true,
		Status:         entity.ApplicationStatusPending,
		CreatedAt:      time.Date(2024, 1, 20, 10, 30, 0, 0, jst),
	})
}

func (w *workflowFixture) seedPendingExtension(id, leadID, merchantID string) {
	delivered := time.Date(2024, 1, 15, 10, 0, 0, 0, jst)
	seedPair(w.f, leadID, merchantID, delivered, entity.DeliveryStatusAppointmentConfirmed)
	w.f.UoW.Extensions.Seed(&entity.ExtensionApplication{
		ID:               id,
		LeadID:           leadID,
		MerchantID:       merchantID,
		ApplicantName:    "Sato",
		ContactedAt:      time.Date(2024, 1, 16, 14, 0, 0, 0, jst),
		AppointmentAt:    time.Date(2024, 1, 25, 10, 0, 0, 0, jst),
		Reason:           "Survey booked for late January.",
		BasicDeadline:    time.Date(2024, 1, 22, 23, 59, 59, 0, jst),
		ExtendedDeadline: time.Date(2024, 2, 29, 23, 59, 59, 0, jst),
		Status:           entity.ApplicationStatusPending,
		CreatedAt:        time.Date(2024, 1, 18, 9, 0, 0, 0, jst),
	})
}

func TestApproveCancellationCascades(t *testing.T) {
	w := newWorkflowFixture(false)
	w.seedPendingCancellation("CN-100", "CV-1001", "M-01")

	res, err := w.svc.ApproveCancellation(context.Background(), "CN-100", "admin-7")
	require.NoError(t, err)
	assert.Equal(t, "approved", res.Status)
	assert.Empty(t, res.Warnings)

	ctx := context.Background()
	app, err := w.f.UoW.Cancellations.FindOne(ctx, specification.ByID{ID: "CN-100"})
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationStatusApproved, app.Status)
	assert.Equal(t, "admin-7", app.Approver)
	require.NotNil(t, app.DecidedAt)
	assert.True(t, app.LeadStatusUpdated)

	rec, err := w.f.UoW.DeliveryRecords.FindByPair(ctx, "CV-1001", "M-01")
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryStatusCancellationApproved, rec.DetailStatus)

	lead := w.f.UoW.Leads.Get("CV-1001")
	require.NotNil(t, lead)
	assert.Equal(t, entity.LeadStatusDeliveredNoContract, lead.ManagementStatus)

	assert.Equal(t, []string{"CN-100"}, w.events.approvedCancellations)
	assert.Empty(t, w.queue.published)
}

func TestApproveCancellationTwiceReportsAlreadyDecided(t *testing.T) {
	w := newWorkflowFixture(false)
	w.seedPendingCancellation("CN-100", "CV-1001", "M-01")

	_, err := w.svc.ApproveCancellation(context.Background(), "CN-100", "admin-7")
	require.NoError(t, err)

	_, err = w.svc.ApproveCancellation(context.Background(), "CN-100", "admin-8")
	assert.ErrorIs(t, err, apperror.ErrAlreadyDecided)
	assert.Len(t, w.events.approvedCancellations, 1)
}

func TestApproveCancellationUnknownApplication(t *testing.T) {
	w := newWorkflowFixture(false)

	_, err := w.svc.ApproveCancellation(context.Background(), "CN-999", "admin-7")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestApproveCancellationWarnsOnActiveSibling(t *testing.T) {
	w := newWorkflowFixture(false)
	w.seedPendingCancellation("CN-100", "CV-1001", "M-01")
	seedSibling(w.f, "CV-1001", "M-02", time.Date(2024, 1, 15, 10, 0, 0, 0, jst), entity.DeliveryStatusQuoteSubmitted)

	res, err := w.svc.ApproveCancellation(context.Background(), "CN-100", "admin-7")
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "M-02")

	// The approval still went through in full.
	app, err := w.f.UoW.Cancellations.FindOne(context.Background(), specification.ByID{ID: "CN-100"})
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationStatusApproved, app.Status)
}

func TestApproveCancellationHardBlockOnActiveSibling(t *testing.T) {
	w := newWorkflowFixture(true)
	w.seedPendingCancellation("CN-100", "CV-1001", "M-01")
	seedSibling(w.f, "CV-1001", "M-02", time.Date(2024, 1, 15, 10, 0, 0, 0, jst), entity.DeliveryStatusQuoteSubmitted)

	_, err := w.svc.ApproveCancellation(context.Background(), "CN-100", "admin-7")

	var conflict *apperror.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []string{"M-02"}, conflict.ActiveMerchants)

	// A blocked approval leaves the application pending for a later retry.
	app, findErr := w.f.UoW.Cancellations.FindOne(context.Background(), specification.ByID{ID: "CN-100"})
	require.NoError(t, findErr)
	assert.Equal(t, entity.ApplicationStatusPending, app.Status)
	assert.Empty(t, w.events.approvedCancellations)
}

func TestApproveCancellationSiblingInTerminalStateIsClean(t *testing.T) {
	w := newWorkflowFixture(true)
	w.seedPendingCancellation("CN-100", "CV-1001", "M-01")
	seedSibling(w.f, "CV-1001", "M-02", time.Date(2024, 1, 15, 10, 0, 0, 0, jst), entity.DeliveryStatusDeclined)

	res, err := w.svc.ApproveCancellation(context.Background(), "CN-100", "admin-7")
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
}

func TestApproveCancellationEnqueuesRepairOnCascadeFailure(t *testing.T) {
	w := newWorkflowFixture(false)
	w.seedPendingCancellation("CN-100", "CV-1001", "M-01")
	w.f.UoW.DeliveryRecords.FailNextUpdate(assert.AnError)

	res, err := w.svc.ApproveCancellation(context.Background(), "CN-100", "admin-7")
	require.NoError(t, err)
	assert.Equal(t, "approved", res.Status)

	// The decision stands; the broken cascade went to the repair queue.
	require.Len(t, w.queue.published, 1)
	var msg dto.CascadeRepairMessage
	require.NoError(t, json.Unmarshal(w.queue.published[0], &msg))
	assert.Equal(t, "CN-100", msg.ApplicationId)
	assert.Equal(t, "CV-1001", msg.LeadId)
	assert.Equal(t, "M-01", msg.MerchantId)

	app, findErr := w.f.UoW.Cancellations.FindOne(context.Background(), specification.ByID{ID: "CN-100"})
	require.NoError(t, findErr)
	assert.Equal(t, entity.ApplicationStatusApproved, app.Status)
	assert.False(t, app.LeadStatusUpdated)
}

func TestRejectCancellationRequiresReason(t *testing.T) {
	w := newWorkflowFixture(false)
	w.seedPendingCancellation("CN-100", "CV-1001", "M-01")

	_, err := w.svc.RejectCancellation(context.Background(), "CN-100", "admin-7", "   ")
	assert.ErrorIs(t, err, apperror.ErrMissingReason)
}

func TestRejectCancellationLeavesLeadUntouched(t *testing.T) {
	w := newWorkflowFixture(false)
	w.seedPendingCancellation("CN-100", "CV-1001", "M-01")

	res, err := w.svc.RejectCancellation(context.Background(), "CN-100", "admin-7", "Evidence does not match the call log.")
	require.NoError(t, err)
	assert.Equal(t, "rejected", res.Status)

	ctx := context.Background()
	app, err := w.f.UoW.Cancellations.FindOne(ctx, specification.ByID{ID: "CN-100"})
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationStatusRejected, app.Status)
	assert.Equal(t, "Evidence does not match the call log.", app.RejectReason)
	assert.False(t, app.LeadStatusUpdated)

	rec, err := w.f.UoW.DeliveryRecords.FindByPair(ctx, "CV-1001", "M-01")
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryStatusInProgress, rec.DetailStatus)

	lead := w.f.UoW.Leads.Get("CV-1001")
	assert.Equal(t, entity.LeadStatusDelivered, lead.ManagementStatus)

	assert.Equal(t, []string{"CN-100"}, w.events.rejectedCancellations)
	assert.Equal(t, "Evidence does not match the call log.", w.events.lastReason)
}

func TestApproveExtensionRecordsDecisionOnly(t *testing.T) {
	w := newWorkflowFixture(false)
	w.seedPendingExtension("DE-200", "CV-1001", "M-01")

	res, err := w.svc.ApproveExtension(context.Background(), "DE-200", "admin-7")
	require.NoError(t, err)
	assert.Equal(t, "approved", res.Status)

	ctx := context.Background()
	app, err := w.f.UoW.Extensions.FindOne(ctx, specification.ByID{ID: "DE-200"})
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationStatusApproved, app.Status)

	// No cascade for extensions: lead and delivery record keep their state.
	rec, err := w.f.UoW.DeliveryRecords.FindByPair(ctx, "CV-1001", "M-01")
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryStatusAppointmentConfirmed, rec.DetailStatus)
	lead := w.f.UoW.Leads.Get("CV-1001")
	assert.Equal(t, entity.LeadStatusDelivered, lead.ManagementStatus)

	assert.Equal(t, []string{"DE-200"}, w.events.approvedExtensions)
	require.NotNil(t, w.events.lastExtendedDeadline)
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 0, jst), *w.events.lastExtendedDeadline)
}

func TestRejectExtension(t *testing.T) {
	w := newWorkflowFixture(false)
	w.seedPendingExtension("DE-200", "CV-1001", "M-01")

	_, err := w.svc.RejectExtension(context.Background(), "DE-200", "admin-7", "")
	assert.ErrorIs(t, err, apperror.ErrMissingReason)

	res, err := w.svc.RejectExtension(context.Background(), "DE-200", "admin-7", "No appointment evidence attached.")
	require.NoError(t, err)
	assert.Equal(t, "rejected", res.Status)

	_, err = w.svc.ApproveExtension(context.Background(), "DE-200", "admin-7")
	assert.ErrorIs(t, err, apperror.ErrAlreadyDecided)
}

func TestListCancellationsFiltersAndOrders(t *testing.T) {
	w := newWorkflowFixture(false)
	w.seedPendingCancellation("CN-100", "CV-1001", "M-01")
	w.seedPendingCancellation("CN-101", "CV-1002", "M-02")
	decided := time.Date(2024, 1, 19, 12, 0, 0, 0, jst)
	w.f.UoW.Cancellations.Seed(&entity.CancellationApplication{
		ID:         "CN-090",
		LeadID:     "CV-0900",
		MerchantID: "M-03",
		Status:     entity.ApplicationStatusRejected,
		DecidedAt:  &decided,
		CreatedAt:  time.Date(2024, 1, 18, 8, 0, 0, 0, jst),
	})

	pending, err := w.svc.ListCancellations(context.Background(), "pending", 1, 20)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	for _, item := range pending {
		assert.Equal(t, "pending", item.Status)
	}

	rejected, err := w.svc.ListCancellations(context.Background(), "rejected", 1, 20)
	require.NoError(t, err)
	require.Len(t, rejected, 1)
	assert.Equal(t, "CN-090", rejected[0].Id)

	_, err = w.svc.ListCancellations(context.Background(), "bogus", 1, 20)
	assert.Error(t, err)
}

func TestListExtensionsPaginates(t *testing.T) {
	w := newWorkflowFixture(false)
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, jst)
	for i, id := range []string{"DE-201", "DE-202", "DE-203"} {
		leadID := "CV-100" + string(rune('1'+i))
		seedPair(w.f, leadID, "M-01", base, entity.DeliveryStatusInProgress)
		w.f.UoW.Extensions.Seed(&entity.ExtensionApplication{
			ID:         id,
			LeadID:     leadID,
			MerchantID: "M-01",
			Status:     entity.ApplicationStatusPending,
			CreatedAt:  base.Add(time.Duration(i) * time.Hour),
		})
	}

	first, err := w.svc.ListExtensions(context.Background(), "pending", 1, 2)
	require.NoError(t, err)
	assert.Len(t, first, 2)

	second, err := w.svc.ListExtensions(context.Background(), "pending", 2, 2)
	require.NoError(t, err)
	assert.Len(t, second, 1)

	// Newest first.
	assert.Equal(t, "DE-203", first[0].Id)
}
