package implementation

import (
	"context"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/entity"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/model"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/contract"

	"gorm.io/gorm"
)

type reasonRepositoryImpl struct {
	db *gorm.DB
}

// NewReasonRepository creates a new cancellation reason repository
func NewReasonRepository(db *gorm.DB) contract.ReasonRepository {
	return &reasonRepositoryImpl{db: db}
}

func (r *reasonRepositoryImpl) FindByCode(ctx context.Context, code string) (*entity.CancellationReason, error) {
	var modelReason model.CancellationReason
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&modelReason).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return mapReasonToEntity(&modelReason), nil
}

func (r *reasonRepositoryImpl) FindAllActive(ctx context.Context) ([]*entity.CancellationReason, error) {
	var modelReasons []*model.CancellationReason
	err := r.db.WithContext(ctx).Where("active = ?", true).Order("code ASC").Find(&modelReasons).Error
	if err != nil {
		return nil, err
	}

	var reasons []*entity.CancellationReason
	for _, mr := range modelReasons {
		reasons = append(reasons, mapReasonToEntity(mr))
	}
	return reasons, nil
}

func mapReasonToEntity(mr *model.CancellationReason) *entity.CancellationReason {
	return &entity.CancellationReason{
		Code:          mr.Code,
		Label:         mr.Label,
		MinPhoneCount: mr.MinPhoneCount,
		MinSMSCount:   mr.MinSMSCount,
		Active:        mr.Active,
	}
}
