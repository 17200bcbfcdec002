package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Notification stores one rendered workflow notification per merchant.
// Delivery to email/push is best-effort; the row is the source of truth for
// the merchant's in-app inbox.
type Notification struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	MerchantID string         `gorm:"type:varchar(40);not null;index:idx_notifications_merchant_created,priority:1"`
	EventType  string         `gorm:"type:varchar(50);not null;index"`
	EntityID   string         `gorm:"type:varchar(30);index"` // application id
	Subject    string         `gorm:"type:varchar(200);not null"`
	LongBody   string         `gorm:"type:text;not null"`
	ShortBody  string         `gorm:"type:varchar(200);not null"`
	Payload    datatypes.JSON `gorm:"type:jsonb"`
	IsRead     bool           `gorm:"default:false"`
	ReadAt     *time.Time
	CreatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP;index:idx_notifications_merchant_created,priority:2"`
}

func (Notification) TableName() string {
	return "notifications"
}
