package dto

import (
	"time"
)

// --- Merchant-Side Extension Submission ---

// SubmitExtensionRequest for a merchant asking for more time before
// cancelling
type SubmitExtensionRequest struct {
	LeadId        string    `json:"lead_id" validate:"required"`
	ApplicantName string    `json:"applicant_name" validate:"required"`
	ContactedAt   time.Time `json:"contacted_at" validate:"required"`
	AppointmentAt time.Time `json:"appointment_at" validate:"required"`
	Reason        string    `json:"reason" validate:"required,min=10"`
}

// SubmitExtensionResponse after the application is stored
type SubmitExtensionResponse struct {
	ApplicationId    string    `json:"application_id"`
	Status           string    `json:"status"`
	BasicDeadline    time.Time `json:"basic_deadline"`
	ExtendedDeadline time.Time `json:"extended_deadline"`
	Message          string    `json:"message"`
}

// ExtensionEligibleCaseResponse is one lead the merchant may still request
// an extension for
type ExtensionEligibleCaseResponse struct {
	LeadId        string    `json:"lead_id"`
	DeliveredAt   time.Time `json:"delivered_at"`
	DetailStatus  string    `json:"detail_status"`
	BasicDeadline time.Time `json:"basic_deadline"`
}

// AdminExtensionListResponse for the approval queue
type AdminExtensionListResponse struct {
	Id               string     `json:"id"`
	LeadId           string     `json:"lead_id"`
	MerchantId       string     `json:"merchant_id"`
	ApplicantName    string     `json:"applicant_name"`
	ContactedAt      time.Time  `json:"contacted_at"`
	AppointmentAt    time.Time  `json:"appointment_at"`
	Reason           string     `json:"reason"`
	BasicDeadline    time.Time  `json:"basic_deadline"`
	ExtendedDeadline time.Time  `json:"extended_deadline"`
	Status           string     `json:"status"`
	Approver         string     `json:"approver,omitempty"`
	DecidedAt        *time.Time `json:"decided_at,omitempty"`
	RejectReason     string     `json:"reject_reason,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}
