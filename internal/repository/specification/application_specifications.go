package specification

import (
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/entity"

	"gorm.io/gorm"
)

// ByLeadAndMerchant filters applications or delivery records to one
// lead-merchant pair.
type ByLeadAndMerchant struct {
	LeadID     string
	MerchantID string
}

func (s ByLeadAndMerchant) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("lead_id = ? AND merchant_id = ?", s.LeadID, s.MerchantID)
}

// ByLead filters by lead id.
type ByLead struct {
	LeadID string
}

func (s ByLead) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("lead_id = ?", s.LeadID)
}

// ByMerchant filters by merchant id.
type ByMerchant struct {
	MerchantID string
}

func (s ByMerchant) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("merchant_id = ?", s.MerchantID)
}

// ByStatus filters applications by approval status.
type ByStatus struct {
	Status entity.ApplicationStatus
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", string(s.Status))
}

// ActiveOnly keeps applications that occupy the pair's uniqueness slot
// (pending or approved). Rejected rows are history.
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status IN ?", []string{
		string(entity.ApplicationStatusPending),
		string(entity.ApplicationStatusApproved),
	})
}
