package entity

import "time"

// ExtensionApplication is a merchant's formal request to extend the
// cancellation-submission deadline for a lead. Its only effect, once
// approved, is to widen the deadline the eligibility evaluator applies to a
// future cancellation application on the same pair.
type ExtensionApplication struct {
	ID            string // DE<timestamp>
	LeadID        string
	MerchantID    string
	ApplicantName string

	// Evidence supplied on the form.
	ContactedAt   time.Time
	AppointmentAt time.Time
	Reason        string

	BasicDeadline    time.Time
	ExtendedDeadline time.Time

	Status       ApplicationStatus
	Approver     string
	DecidedAt    *time.Time
	RejectReason string

	CreatedAt time.Time
	UpdatedAt time.Time
}
