package dto

import (
	"time"
)

// --- Merchant-Side Cancellation Submission ---

// SubmitCancellationRequest for a merchant withdrawing from a lead
type SubmitCancellationRequest struct {
	LeadId         string            `json:"lead_id" validate:"required"`
	ApplicantName  string            `json:"applicant_name" validate:"required"`
	ReasonCategory string            `json:"reason_category" validate:"required"`
	ReasonDetail   string            `json:"reason_detail" validate:"required,min=10"`
	PhoneCount     int               `json:"phone_count" validate:"min=0"`
	SmsCount       int               `json:"sms_count" validate:"min=0"`
	LastContactAt  *time.Time        `json:"last_contact_at,omitempty"`
	ContactedAt    *time.Time        `json:"contacted_at,omitempty"`
	Fields         map[string]string `json:"fields,omitempty"`
}

// SubmitCancellationResponse after the application is stored
type SubmitCancellationResponse struct {
	ApplicationId  string    `json:"application_id"`
	Status         string    `json:"status"`
	BasicDeadline  time.Time `json:"basic_deadline"`
	WithinDeadline bool      `json:"within_deadline"`
	Message        string    `json:"message"`
}

// --- Eligible Case Listing ---

// CancelableCaseResponse is one lead the merchant may still cancel
type CancelableCaseResponse struct {
	LeadId            string    `json:"lead_id"`
	DeliveredAt       time.Time `json:"delivered_at"`
	DetailStatus      string    `json:"detail_status"`
	EffectiveDeadline time.Time `json:"effective_deadline"`
	DeadlineExtended  bool      `json:"deadline_extended"`
}

// --- Admin-Side Cancellation Management ---

// AdminCancellationListResponse for the approval queue
type AdminCancellationListResponse struct {
	Id             string            `json:"id"`
	LeadId         string            `json:"lead_id"`
	MerchantId     string            `json:"merchant_id"`
	ApplicantName  string            `json:"applicant_name"`
	ReasonCategory string            `json:"reason_category"`
	ReasonDetail   string            `json:"reason_detail"`
	Fields         map[string]string `json:"fields,omitempty"`
	PhoneCount     int               `json:"phone_count"`
	SmsCount       int               `json:"sms_count"`
	LastContactAt  *time.Time        `json:"last_contact_at,omitempty"`
	BasicDeadline  time.Time         `json:"basic_deadline"`
	WithinDeadline bool              `json:"within_deadline"`
	Status         string            `json:"status"`
	Approver       string            `json:"approver,omitempty"`
	DecidedAt      *time.Time        `json:"decided_at,omitempty"`
	RejectReason   string            `json:"reject_reason,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}

// RejectDecisionRequest for a rejection; the reason is mandatory and
// surfaced to the merchant verbatim
type RejectDecisionRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// DecisionResponse after an approve/reject decision
type DecisionResponse struct {
	ApplicationId string    `json:"application_id"`
	Status        string    `json:"status"`
	DecidedAt     time.Time `json:"decided_at"`

	// Warnings from the cross-merchant consistency check, recorded when the
	// override policy let the approval proceed.
	Warnings []string `json:"warnings,omitempty"`
}
