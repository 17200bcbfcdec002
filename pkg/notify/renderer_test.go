package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRenderCancellationApproved(t *testing.T) {
	got, err := Render(EventCancellationApproved, Payload{
		ApplicationID: "CN20240120103000123",
		LeadID:        "CV-1001",
		MerchantID:    "M-01",
	})

	assert.NoError(t, err)
	assert.Contains(t, got.Subject, "CV-1001")
	assert.Contains(t, got.LongBody, "CN20240120103000123")
	assert.Contains(t, got.ShortBody, "approved")
}

func TestRenderRejectionsCarryReasonVerbatim(t *testing.T) {
	// The reason is operator-authored; it must surface untouched.
	reason := "Evidence counters do not match the call log (checked 2024-01-21)."

	tests := []struct {
		name      string
		eventType string
	}{
		{name: "cancellation rejected", eventType: EventCancellationRejected},
		{name: "extension rejected", eventType: EventExtensionRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.eventType, Payload{
				ApplicationID: "CN1",
				LeadID:        "CV-1",
				RejectReason:  reason,
			})
			assert.NoError(t, err)
			assert.Contains(t, got.LongBody, reason)
			assert.Contains(t, got.ShortBody, reason)
		})
	}
}

func TestRenderRejectionWithoutReasonFails(t *testing.T) {
	_, err := Render(EventCancellationRejected, Payload{ApplicationID: "CN1"})
	assert.Error(t, err)
}

func TestRenderExtensionApprovedFormatsDeadline(t *testing.T) {
	deadline := time.Date(2024, time.February, 29, 23, 59, 59, 0, time.UTC)

	got, err := Render(EventExtensionApproved, Payload{
		ApplicationID:    "DE20240119090000456",
		LeadID:           "CV-1001",
		ExtendedDeadline: &deadline,
	})

	assert.NoError(t, err)
	assert.Contains(t, got.LongBody, "2024-02-29 23:59:59")
	assert.Contains(t, got.ShortBody, "2024-02-29 23:59:59")
}

func TestRenderExtensionApprovedWithoutDeadlineFails(t *testing.T) {
	_, err := Render(EventExtensionApproved, Payload{ApplicationID: "DE1"})
	assert.Error(t, err)
}

func TestRenderUnknownEventType(t *testing.T) {
	_, err := Render("SOMETHING_ELSE", Payload{})
	assert.Error(t, err)
}
