package model

import (
	"time"
)

// ExtensionApplication GORM model. Same audit-trail rules as
// CancellationApplication, independent uniqueness domain.
type ExtensionApplication struct {
	ID            string `gorm:"type:varchar(30);primaryKey"` // DE<timestamp>
	LeadID        string `gorm:"type:varchar(40);not null;index:idx_ext_app_pair,priority:1"`
	MerchantID    string `gorm:"type:varchar(40);not null;index:idx_ext_app_pair,priority:2"`
	ApplicantName string `gorm:"type:varchar(100)"`

	ContactedAt   time.Time `gorm:"not null"`
	AppointmentAt time.Time `gorm:"not null"`
	Reason        string    `gorm:"type:text;not null"`

	BasicDeadline    time.Time `gorm:"not null"`
	ExtendedDeadline time.Time `gorm:"not null"`

	Status       string `gorm:"type:varchar(20);not null;default:'pending';index"`
	Approver     string `gorm:"type:varchar(100)"`
	DecidedAt    *time.Time
	RejectReason string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ExtensionApplication) TableName() string {
	return "extension_applications"
}
