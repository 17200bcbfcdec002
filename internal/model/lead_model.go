package model

import (
	"time"

	"gorm.io/datatypes"
)

// Lead GORM model. Owned by the intake subsystem; this service updates
// management_status only.
type Lead struct {
	ID                   string                      `gorm:"type:varchar(40);primaryKey"`
	DeliveredAt          time.Time                   `gorm:"not null;index"`
	MerchantIDs          datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	ManagementStatus     string                      `gorm:"type:varchar(30);not null;default:'delivered';index"`
	ContractedMerchantID string                      `gorm:"type:varchar(40);index"`
	CreatedAt            time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt            time.Time                   `gorm:"autoUpdateTime"`
}

func (Lead) TableName() string {
	return "leads"
}
