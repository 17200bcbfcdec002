package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/dto"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/entity"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/memory"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/specification"
)

func newCascadeFixture() (*memory.Factory, *cascadeService) {
	f := memory.NewFactory()
	return f, &cascadeService{uowFactory: f, logger: nopLogger{}}
}

func repairMessage(t *testing.T, applicationID, leadID, merchantID string) *message.Message {
	t.Helper()
	payload, err := json.Marshal(dto.CascadeRepairMessage{
		ApplicationId: applicationID,
		LeadId:        leadID,
		MerchantId:    merchantID,
	})
	require.NoError(t, err)
	return message.NewMessage(watermill.NewUUID(), payload)
}

func seedApprovedWithBrokenCascade(f *memory.Factory) {
	delivered := time.Date(2024, 1, 15, 10, 0, 0, 0, jst)
	decided := time.Date(2024, 1, 21, 15, 0, 0, 0, jst)
	seedPair(f, "CV-1001", "M-01", delivered, entity.DeliveryStatusInProgress)
	f.UoW.Cancellations.Seed(&entity.CancellationApplication{
		ID:                "CN-100",
		LeadID:            "CV-1001",
		MerchantID:        "M-01",
		Status:            entity.ApplicationStatusApproved,
		Approver:          "admin-7",
		DecidedAt:         &decided,
		LeadStatusUpdated: false,
	})
}

func TestCascadeRepairAppliesMissingWrites(t *testing.T) {
	f, svc := newCascadeFixture()
	seedApprovedWithBrokenCascade(f)

	msg := repairMessage(t, "CN-100", "CV-1001", "M-01")
	svc.processMessage(context.Background(), msg)

	assertAcked(t, msg)

	ctx := context.Background()
	rec, err := f.UoW.DeliveryRecords.FindByPair(ctx, "CV-1001", "M-01")
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryStatusCancellationApproved, rec.DetailStatus)

	lead := f.UoW.Leads.Get("CV-1001")
	assert.Equal(t, entity.LeadStatusDeliveredNoContract, lead.ManagementStatus)

	app, err := f.UoW.Cancellations.FindOne(ctx, specification.ByID{ID: "CN-100"})
	require.NoError(t, err)
	assert.True(t, app.LeadStatusUpdated)
}

func TestCascadeRepairSkipsCompletedCascade(t *testing.T) {
	f, svc := newCascadeFixture()
	seedApprovedWithBrokenCascade(f)
	require.NoError(t, f.UoW.Cancellations.MarkLeadStatusUpdated(context.Background(), "CN-100"))

	msg := repairMessage(t, "CN-100", "CV-1001", "M-01")
	svc.processMessage(context.Background(), msg)

	assertAcked(t, msg)

	// Already repaired, so the delivery record was left alone.
	rec, err := f.UoW.DeliveryRecords.FindByPair(context.Background(), "CV-1001", "M-01")
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryStatusInProgress, rec.DetailStatus)
}

func TestCascadeRepairDropsMalformedAndUnknownMessages(t *testing.T) {
	f, svc := newCascadeFixture()
	seedApprovedWithBrokenCascade(f)

	malformed := message.NewMessage(watermill.NewUUID(), []byte("{not json"))
	svc.processMessage(context.Background(), malformed)
	assertAcked(t, malformed)

	unknown := repairMessage(t, "CN-999", "CV-9999", "M-09")
	svc.processMessage(context.Background(), unknown)
	assertAcked(t, unknown)
}

func TestCascadeRepairNacksOnTransientFailure(t *testing.T) {
	f, svc := newCascadeFixture()
	seedApprovedWithBrokenCascade(f)
	f.UoW.DeliveryRecords.FailNextUpdate(assert.AnError)

	msg := repairMessage(t, "CN-100", "CV-1001", "M-01")
	svc.processMessage(context.Background(), msg)

	assertNacked(t, msg)

	// The next delivery attempt succeeds.
	retry := repairMessage(t, "CN-100", "CV-1001", "M-01")
	svc.processMessage(context.Background(), retry)
	assertAcked(t, retry)
}

func assertAcked(t *testing.T, msg *message.Message) {
	t.Helper()
	select {
	case <-msg.Acked():
	case <-msg.Nacked():
		t.Fatal("message was nacked, expected ack")
	case <-time.After(time.Second):
		t.Fatal("message was neither acked nor nacked")
	}
}

func assertNacked(t *testing.T, msg *message.Message) {
	t.Helper()
	select {
	case <-msg.Nacked():
	case <-msg.Acked():
		t.Fatal("message was acked, expected nack")
	case <-time.After(time.Second):
		t.Fatal("message was neither acked nor nacked")
	}
}
