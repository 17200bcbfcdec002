package model

import (
	"time"
)

// DeliveryRecord GORM model, one row per lead-merchant pair.
type DeliveryRecord struct {
	ID            uint       `gorm:"primaryKey;autoIncrement"`
	LeadID        string     `gorm:"type:varchar(40);not null;uniqueIndex:idx_delivery_lead_merchant,priority:1;index"`
	MerchantID    string     `gorm:"type:varchar(40);not null;uniqueIndex:idx_delivery_lead_merchant,priority:2;index"`
	DeliveredAt   time.Time  `gorm:"not null"`
	DetailStatus  string     `gorm:"type:varchar(30);not null;default:'unhandled';index"`
	PhoneCount    int        `gorm:"not null;default:0"`
	SMSCount      int        `gorm:"column:sms_count;not null;default:0"`
	MailCount     int        `gorm:"not null;default:0"`
	VisitCount    int        `gorm:"not null;default:0"`
	LastContactAt *time.Time
	AppointmentAt *time.Time
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`

	Lead Lead `gorm:"foreignKey:LeadID"`
}

func (DeliveryRecord) TableName() string {
	return "delivery_records"
}
