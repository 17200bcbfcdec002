package model

import (
	"time"

	"gorm.io/datatypes"
)

// CancellationApplication GORM model. Rows are never deleted; they form the
// audit trail of merchant withdrawal requests.
type CancellationApplication struct {
	ID             string `gorm:"type:varchar(30);primaryKey"` // CN<timestamp>
	LeadID         string `gorm:"type:varchar(40);not null;index:idx_cancel_app_pair,priority:1"`
	MerchantID     string `gorm:"type:varchar(40);not null;index:idx_cancel_app_pair,priority:2"`
	ApplicantName  string `gorm:"type:varchar(100)"`
	ReasonCategory string `gorm:"type:varchar(50);not null"`
	ReasonDetail   string `gorm:"type:text"`

	AdditionalFields datatypes.JSONType[map[string]string] `gorm:"type:jsonb"`

	// Evidence snapshot taken at submission time.
	PhoneCount    int `gorm:"not null;default:0"`
	SMSCount      int `gorm:"column:sms_count;not null;default:0"`
	LastContactAt *time.Time
	ContactedAt   *time.Time

	BasicDeadline  time.Time `gorm:"not null"`
	WithinDeadline bool      `gorm:"not null;default:true"`

	Status            string `gorm:"type:varchar(20);not null;default:'pending';index"`
	Approver          string `gorm:"type:varchar(100)"`
	DecidedAt         *time.Time
	RejectReason      string `gorm:"type:text"`
	LeadStatusUpdated bool   `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (CancellationApplication) TableName() string {
	return "cancellation_applications"
}
