package model

import "time"

// CancellationReason is a reference-data row: one cancellation reason
// category and its minimum evidence thresholds. Seeded by cmd/migrate.
type CancellationReason struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"`
	Code          string    `gorm:"type:varchar(50);unique;not null"`
	Label         string    `gorm:"type:varchar(100);not null"`
	MinPhoneCount int       `gorm:"not null;default:0"`
	MinSMSCount   int       `gorm:"column:min_sms_count;not null;default:0"`
	Active        bool      `gorm:"not null;default:true"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (CancellationReason) TableName() string {
	return "cancellation_reasons"
}
