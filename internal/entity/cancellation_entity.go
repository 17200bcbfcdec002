package entity

import (
	"fmt"
	"time"
)

// ApplicationStatus represents the approval status of a cancellation or
// extension application.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// ParseApplicationStatus validates a raw status value from the store.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	switch ApplicationStatus(s) {
	case ApplicationStatusPending, ApplicationStatusApproved, ApplicationStatusRejected:
		return ApplicationStatus(s), nil
	}
	return "", fmt.Errorf("unknown application status: %q", s)
}

// IsActive reports whether the application still occupies the pair's
// uniqueness slot. Rejected applications free the slot for a new submission.
func (s ApplicationStatus) IsActive() bool {
	return s == ApplicationStatusPending || s == ApplicationStatusApproved
}

// CancellationApplication is a merchant's formal request to withdraw from a
// lead. Never deleted; the row is the audit trail.
type CancellationApplication struct {
	ID             string // CN<timestamp>
	LeadID         string
	MerchantID     string
	ApplicantName  string
	ReasonCategory string
	ReasonDetail   string

	// Additional free-text fields supplied on the submission form.
	AdditionalFields map[string]string

	// Evidence counters copied from the delivery record at submission time.
	PhoneCount    int
	SMSCount      int
	LastContactAt *time.Time
	ContactedAt   *time.Time

	BasicDeadline  time.Time
	WithinDeadline bool

	Status            ApplicationStatus
	Approver          string
	DecidedAt         *time.Time
	RejectReason      string
	LeadStatusUpdated bool // set once the approval cascade reached the lead

	CreatedAt time.Time
	UpdatedAt time.Time
}
