package implementation

import (
	"context"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/entity"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/model"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/contract"

	"gorm.io/gorm"
)

type merchantRepositoryImpl struct {
	db *gorm.DB
}

// NewMerchantRepository creates a new merchant directory repository
func NewMerchantRepository(db *gorm.DB) contract.MerchantRepository {
	return &merchantRepositoryImpl{db: db}
}

func (r *merchantRepositoryImpl) FindByID(ctx context.Context, merchantID string) (*entity.Merchant, error) {
	var modelMerchant model.Merchant
	err := r.db.WithContext(ctx).Where("id = ?", merchantID).First(&modelMerchant).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &entity.Merchant{
		ID:            modelMerchant.ID,
		Name:          modelMerchant.Name,
		Email:         modelMerchant.Email,
		NotifyByEmail: modelMerchant.NotifyByEmail,
	}, nil
}
