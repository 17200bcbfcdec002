package entity

import (
	"fmt"
	"time"
)

// DeliveryDetailStatus represents the per-merchant follow-up status of a
// delivered lead.
type DeliveryDetailStatus string

const (
	DeliveryStatusUnhandled            DeliveryDetailStatus = "unhandled"
	DeliveryStatusInProgress           DeliveryDetailStatus = "in_progress"
	DeliveryStatusVisited              DeliveryDetailStatus = "visited"
	DeliveryStatusQuoteSubmitted       DeliveryDetailStatus = "quote_submitted"
	DeliveryStatusAppointmentConfirmed DeliveryDetailStatus = "appointment_confirmed"
	DeliveryStatusDeclined             DeliveryDetailStatus = "declined"
	DeliveryStatusCancellationApproved DeliveryDetailStatus = "cancellation_approved"
)

// ParseDeliveryDetailStatus validates a raw status value from the store.
func ParseDeliveryDetailStatus(s string) (DeliveryDetailStatus, error) {
	switch DeliveryDetailStatus(s) {
	case DeliveryStatusUnhandled, DeliveryStatusInProgress, DeliveryStatusVisited,
		DeliveryStatusQuoteSubmitted, DeliveryStatusAppointmentConfirmed,
		DeliveryStatusDeclined, DeliveryStatusCancellationApproved:
		return DeliveryDetailStatus(s), nil
	}
	return "", fmt.Errorf("unknown delivery detail status: %q", s)
}

// IsActiveEngagement reports whether the status indicates the merchant is
// still pursuing the lead. Used by the cross-merchant consistency check.
func (s DeliveryDetailStatus) IsActiveEngagement() bool {
	switch s {
	case DeliveryStatusInProgress, DeliveryStatusVisited,
		DeliveryStatusQuoteSubmitted, DeliveryStatusAppointmentConfirmed:
		return true
	}
	return false
}

// DeliveryRecord tracks one lead-merchant pair. One record exists for every
// pair referenced by a cancellation or extension application.
type DeliveryRecord struct {
	LeadID        string
	MerchantID    string
	DeliveredAt   time.Time // denormalized from Lead
	DetailStatus  DeliveryDetailStatus
	PhoneCount    int
	SMSCount      int
	MailCount     int
	VisitCount    int
	LastContactAt *time.Time
	AppointmentAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
