package dto

import (
	"time"

	"github.com/google/uuid"
)

// NotificationListResponse is one row of the merchant's in-app inbox
type NotificationListResponse struct {
	Id        uuid.UUID  `json:"id"`
	EventType string     `json:"event_type"`
	EntityId  string     `json:"entity_id,omitempty"`
	Subject   string     `json:"subject"`
	ShortBody string     `json:"short_body"`
	LongBody  string     `json:"long_body"`
	IsRead    bool       `json:"is_read"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// CascadeRepairMessage is the in-process queue payload for re-applying the
// approval cascade writes after a partial failure.
type CascadeRepairMessage struct {
	ApplicationId string `json:"application_id"`
	LeadId        string `json:"lead_id"`
	MerchantId    string `json:"merchant_id"`
}
