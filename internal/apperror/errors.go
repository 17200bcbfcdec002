package apperror

import (
	"errors"
	"fmt"
)

// Sentinel errors for the cancellation/extension workflow. Controllers map
// these to HTTP statuses; services wrap them with context via fmt.Errorf
// and %w so errors.Is keeps matching.
var (
	ErrNotFound                   = errors.New("not found")
	ErrNotEligible                = errors.New("not eligible")
	ErrDuplicateApplication       = errors.New("active application already exists")
	ErrAlreadyDecided             = errors.New("application already decided")
	ErrMissingReason              = errors.New("rejection reason is required")
	ErrConflictingActiveMerchants = errors.New("other merchants are still actively engaged")
)

// EvidenceShortfall describes one evidence counter that fell below the
// reason category's threshold.
type EvidenceShortfall struct {
	Field    string // "phone_count" or "sms_count"
	Required int
	Actual   int
}

func (s EvidenceShortfall) String() string {
	return fmt.Sprintf("requires at least %d %s, has %d", s.Required, s.Field, s.Actual)
}

// NotEligibleError carries the specific reason a submission was refused so
// the merchant-facing surface can render the shortfall, not a generic
// failure.
type NotEligibleError struct {
	Reason     string
	Shortfalls []EvidenceShortfall
}

func (e *NotEligibleError) Error() string {
	msg := e.Reason
	for _, s := range e.Shortfalls {
		msg += "; " + s.String()
	}
	return msg
}

func (e *NotEligibleError) Unwrap() error {
	return ErrNotEligible
}

// NewNotEligible builds a NotEligibleError with a formatted reason.
func NewNotEligible(format string, args ...interface{}) *NotEligibleError {
	return &NotEligibleError{Reason: fmt.Sprintf(format, args...)}
}

// ConflictError carries the merchants the consistency check found still
// actively engaged on the lead.
type ConflictError struct {
	LeadID          string
	ActiveMerchants []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("lead %s: %v still actively engaged", e.LeadID, e.ActiveMerchants)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflictingActiveMerchants
}
