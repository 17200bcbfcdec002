package implementation

import (
	"context"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/entity"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/model"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/contract"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/specification"

	"gorm.io/gorm"
)

type deliveryRecordRepositoryImpl struct {
	db *gorm.DB
}

// NewDeliveryRecordRepository creates a new delivery record repository
func NewDeliveryRecordRepository(db *gorm.DB) contract.DeliveryRecordRepository {
	return &deliveryRecordRepositoryImpl{db: db}
}

func (r *deliveryRecordRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DeliveryRecord, error) {
	var modelRecord model.DeliveryRecord
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&modelRecord).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return mapDeliveryRecordToEntity(&modelRecord)
}

func (r *deliveryRecordRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DeliveryRecord, error) {
	var modelRecords []*model.DeliveryRecord
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&modelRecords).Error; err != nil {
		return nil, err
	}

	var records []*entity.DeliveryRecord
	for _, mr := range modelRecords {
		record, err := mapDeliveryRecordToEntity(mr)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

func (r *deliveryRecordRepositoryImpl) FindByPair(ctx context.Context, leadID, merchantID string) (*entity.DeliveryRecord, error) {
	return r.FindOne(ctx, specification.ByLeadAndMerchant{LeadID: leadID, MerchantID: merchantID})
}

func (r *deliveryRecordRepositoryImpl) UpdateDetailStatus(ctx context.Context, leadID, merchantID string, status entity.DeliveryDetailStatus) error {
	return r.db.WithContext(ctx).Model(&model.DeliveryRecord{}).
		Where("lead_id = ? AND merchant_id = ?", leadID, merchantID).
		Update("detail_status", string(status)).Error
}

func mapDeliveryRecordToEntity(mr *model.DeliveryRecord) (*entity.DeliveryRecord, error) {
	status, err := entity.ParseDeliveryDetailStatus(mr.DetailStatus)
	if err != nil {
		return nil, err
	}
	return &entity.DeliveryRecord{
		LeadID:        mr.LeadID,
		MerchantID:    mr.MerchantID,
		DeliveredAt:   mr.DeliveredAt,
		DetailStatus:  status,
		PhoneCount:    mr.PhoneCount,
		SMSCount:      mr.SMSCount,
		MailCount:     mr.MailCount,
		VisitCount:    mr.VisitCount,
		LastContactAt: mr.LastContactAt,
		AppointmentAt: mr.AppointmentAt,
		CreatedAt:     mr.CreatedAt,
		UpdatedAt:     mr.UpdatedAt,
	}, nil
}
