package entity

import (
	"fmt"
	"time"
)

// LeadManagementStatus represents the lead-level management status.
type LeadManagementStatus string

const (
	LeadStatusDelivered           LeadManagementStatus = "delivered"
	LeadStatusInProgress          LeadManagementStatus = "in_progress"
	LeadStatusQuoteSubmitted      LeadManagementStatus = "quote_submitted"
	LeadStatusNegotiating         LeadManagementStatus = "negotiating"
	LeadStatusContracted          LeadManagementStatus = "contracted"
	LeadStatusDeliveredNoContract LeadManagementStatus = "delivered_no_contract"
)

// ParseLeadManagementStatus validates a raw status value from the store.
// Unknown values are rejected, never coerced to a default.
func ParseLeadManagementStatus(s string) (LeadManagementStatus, error) {
	switch LeadManagementStatus(s) {
	case LeadStatusDelivered, LeadStatusInProgress, LeadStatusQuoteSubmitted,
		LeadStatusNegotiating, LeadStatusContracted, LeadStatusDeliveredNoContract:
		return LeadManagementStatus(s), nil
	}
	return "", fmt.Errorf("unknown lead management status: %q", s)
}

// Lead is an inbound customer inquiry distributed to one or more merchants.
// Created by the intake subsystem; this service only reads it and sets
// delivered_no_contract when a cancellation is approved.
type Lead struct {
	ID                   string
	DeliveredAt          time.Time
	MerchantIDs          []string // delivery order preserved
	ManagementStatus     LeadManagementStatus
	ContractedMerchantID string // empty unless contracted
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// IsContracted reports whether any merchant has closed this lead.
// A contracted lead is closed to all cancellation/extension activity.
func (l *Lead) IsContracted() bool {
	return l.ContractedMerchantID != ""
}
