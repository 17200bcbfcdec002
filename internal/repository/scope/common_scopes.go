package scope

import "gorm.io/gorm"

// OrderByCreatedDesc orders newest first; the default for inbox-style
// listings.
func OrderByCreatedDesc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}

func OrderByCreatedAsc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}
