package model

import "time"

// Merchant mirrors the contractor directory maintained by the
// merchant-management subsystem. This service only reads it.
type Merchant struct {
	ID            string    `gorm:"type:varchar(40);primaryKey"`
	Name          string    `gorm:"type:varchar(100);not null"`
	Email         string    `gorm:"type:varchar(200);not null"`
	NotifyByEmail bool      `gorm:"not null;default:true"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (Merchant) TableName() string {
	return "merchants"
}
