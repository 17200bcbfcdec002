package implementation

import (
	"context"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/entity"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/model"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/contract"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/specification"

	"gorm.io/gorm"
)

type leadRepositoryImpl struct {
	db *gorm.DB
}

// NewLeadRepository creates a new lead repository
func NewLeadRepository(db *gorm.DB) contract.LeadRepository {
	return &leadRepositoryImpl{db: db}
}

func (r *leadRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Lead, error) {
	var modelLead model.Lead
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&modelLead).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return mapLeadToEntity(&modelLead)
}

func (r *leadRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Lead, error) {
	var modelLeads []*model.Lead
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&modelLeads).Error; err != nil {
		return nil, err
	}

	var leads []*entity.Lead
	for _, ml := range modelLeads {
		lead, err := mapLeadToEntity(ml)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}

	return leads, nil
}

func (r *leadRepositoryImpl) UpdateManagementStatus(ctx context.Context, leadID string, status entity.LeadManagementStatus) error {
	return r.db.WithContext(ctx).Model(&model.Lead{}).
		Where("id = ?", leadID).
		Update("management_status", string(status)).Error
}

func mapLeadToEntity(ml *model.Lead) (*entity.Lead, error) {
	status, err := entity.ParseLeadManagementStatus(ml.ManagementStatus)
	if err != nil {
		return nil, err
	}
	return &entity.Lead{
		ID:                   ml.ID,
		DeliveredAt:          ml.DeliveredAt,
		MerchantIDs:          ml.MerchantIDs,
		ManagementStatus:     status,
		ContractedMerchantID: ml.ContractedMerchantID,
		CreatedAt:            ml.CreatedAt,
		UpdatedAt:            ml.UpdatedAt,
	}, nil
}
