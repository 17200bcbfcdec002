package notify

import (
	"fmt"
	"time"
)

// Event type codes published by the workflow engine and consumed by the
// notification service.
const (
	EventCancellationApproved = "LEAD_CANCEL_APPROVED"
	EventCancellationRejected = "LEAD_CANCEL_REJECTED"
	EventExtensionApproved    = "LEAD_EXTENSION_APPROVED"
	EventExtensionRejected    = "LEAD_EXTENSION_REJECTED"
)

const deadlineLayout = "2006-01-02 15:04:05"

// Payload carries the decision facts needed to render a notification.
type Payload struct {
	ApplicationID    string
	LeadID           string
	MerchantID       string
	RejectReason     string
	ExtendedDeadline *time.Time
}

// Rendered is the channel-agnostic notification triple. LongBody targets
// email, ShortBody targets push/chat-ops.
type Rendered struct {
	Subject   string
	LongBody  string
	ShortBody string
}

// Render produces the notification content for one decision event. It
// performs no I/O; delivery belongs to the outbound channels.
func Render(eventType string, p Payload) (Rendered, error) {
	switch eventType {
	case EventCancellationApproved:
		return Rendered{
			Subject: fmt.Sprintf("Cancellation approved for lead %s", p.LeadID),
			LongBody: fmt.Sprintf(
				"Your cancellation application %s for lead %s has been approved.\n"+
					"The lead has been released and will no longer count toward your billing.",
				p.ApplicationID, p.LeadID),
			ShortBody: fmt.Sprintf("Cancellation %s approved (lead %s)", p.ApplicationID, p.LeadID),
		}, nil

	case EventCancellationRejected:
		if p.RejectReason == "" {
			return Rendered{}, fmt.Errorf("rejection event %s without a reason", p.ApplicationID)
		}
		return Rendered{
			Subject: fmt.Sprintf("Cancellation rejected for lead %s", p.LeadID),
			LongBody: fmt.Sprintf(
				"Your cancellation application %s for lead %s has been rejected.\n"+
					"Reason: %s\n"+
					"You may submit a new application while the lead remains eligible.",
				p.ApplicationID, p.LeadID, p.RejectReason),
			ShortBody: fmt.Sprintf("Cancellation %s rejected: %s", p.ApplicationID, p.RejectReason),
		}, nil

	case EventExtensionApproved:
		if p.ExtendedDeadline == nil {
			return Rendered{}, fmt.Errorf("extension approval event %s without a deadline", p.ApplicationID)
		}
		deadline := p.ExtendedDeadline.Format(deadlineLayout)
		return Rendered{
			Subject: fmt.Sprintf("Deadline extension approved for lead %s", p.LeadID),
			LongBody: fmt.Sprintf(
				"Your extension application %s for lead %s has been approved.\n"+
					"The cancellation deadline is now %s.",
				p.ApplicationID, p.LeadID, deadline),
			ShortBody: fmt.Sprintf("Extension %s approved, new deadline %s", p.ApplicationID, deadline),
		}, nil

	case EventExtensionRejected:
		if p.RejectReason == "" {
			return Rendered{}, fmt.Errorf("rejection event %s without a reason", p.ApplicationID)
		}
		return Rendered{
			Subject: fmt.Sprintf("Deadline extension rejected for lead %s", p.LeadID),
			LongBody: fmt.Sprintf(
				"Your extension application %s for lead %s has been rejected.\n"+
					"Reason: %s\n"+
					"The basic cancellation deadline remains in effect.",
				p.ApplicationID, p.LeadID, p.RejectReason),
			ShortBody: fmt.Sprintf("Extension %s rejected: %s", p.ApplicationID, p.RejectReason),
		}, nil
	}

	return Rendered{}, fmt.Errorf("unknown notification event type: %q", eventType)
}
