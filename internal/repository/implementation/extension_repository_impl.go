package implementation

import (
	"context"
	"time"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/apperror"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/entity"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/model"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/contract"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/specification"

	"gorm.io/gorm"
)

type extensionRepositoryImpl struct {
	db *gorm.DB
}

// NewExtensionRepository creates a new extension application repository
func NewExtensionRepository(db *gorm.DB) contract.ExtensionRepository {
	return &extensionRepositoryImpl{db: db}
}

// Create re-checks the no-active-duplicate invariant at write time, same as
// the cancellation repository.
func (r *extensionRepositoryImpl) Create(ctx context.Context, app *entity.ExtensionApplication) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var active int64
		err := tx.Model(&model.ExtensionApplication{}).
			Where("lead_id = ? AND merchant_id = ?", app.LeadID, app.MerchantID).
			Where("status IN ?", []string{
				string(entity.ApplicationStatusPending),
				string(entity.ApplicationStatusApproved),
			}).
			Count(&active).Error
		if err != nil {
			return err
		}
		if active > 0 {
			return apperror.ErrDuplicateApplication
		}

		return tx.Create(mapExtensionToModel(app)).Error
	})
}

func (r *extensionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ExtensionApplication, error) {
	var modelApp model.ExtensionApplication
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&modelApp).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return mapExtensionToEntity(&modelApp)
}

func (r *extensionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ExtensionApplication, error) {
	var modelApps []*model.ExtensionApplication
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&modelApps).Error; err != nil {
		return nil, err
	}

	var apps []*entity.ExtensionApplication
	for _, ma := range modelApps {
		app, err := mapExtensionToEntity(ma)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}

	return apps, nil
}

func (r *extensionRepositoryImpl) FindActiveByPair(ctx context.Context, leadID, merchantID string) (*entity.ExtensionApplication, error) {
	return r.FindOne(ctx,
		specification.ByLeadAndMerchant{LeadID: leadID, MerchantID: merchantID},
		specification.ActiveOnly{},
	)
}

func (r *extensionRepositoryImpl) FindApprovedByPair(ctx context.Context, leadID, merchantID string) (*entity.ExtensionApplication, error) {
	return r.FindOne(ctx,
		specification.ByLeadAndMerchant{LeadID: leadID, MerchantID: merchantID},
		specification.ByStatus{Status: entity.ApplicationStatusApproved},
	)
}

func (r *extensionRepositoryImpl) Decide(ctx context.Context, id string, status entity.ApplicationStatus, approver, rejectReason string, decidedAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.ExtensionApplication{}).
		Where("id = ? AND status = ?", id, string(entity.ApplicationStatusPending)).
		Updates(map[string]interface{}{
			"status":        string(status),
			"approver":      approver,
			"reject_reason": rejectReason,
			"decided_at":    decidedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func mapExtensionToModel(app *entity.ExtensionApplication) *model.ExtensionApplication {
	return &model.ExtensionApplication{
		ID:               app.ID,
		LeadID:           app.LeadID,
		MerchantID:       app.MerchantID,
		ApplicantName:    app.ApplicantName,
		ContactedAt:      app.ContactedAt,
		AppointmentAt:    app.AppointmentAt,
		Reason:           app.Reason,
		BasicDeadline:    app.BasicDeadline,
		ExtendedDeadline: app.ExtendedDeadline,
		Status:           string(app.Status),
		Approver:         app.Approver,
		DecidedAt:        app.DecidedAt,
		RejectReason:     app.RejectReason,
	}
}

func mapExtensionToEntity(ma *model.ExtensionApplication) (*entity.ExtensionApplication, error) {
	status, err := entity.ParseApplicationStatus(ma.Status)
	if err != nil {
		return nil, err
	}
	return &entity.ExtensionApplication{
		ID:               ma.ID,
		LeadID:           ma.LeadID,
		MerchantID:       ma.MerchantID,
		ApplicantName:    ma.ApplicantName,
		ContactedAt:      ma.ContactedAt,
		AppointmentAt:    ma.AppointmentAt,
		Reason:           ma.Reason,
		BasicDeadline:    ma.BasicDeadline,
		ExtendedDeadline: ma.ExtendedDeadline,
		Status:           status,
		Approver:         ma.Approver,
		DecidedAt:        ma.DecidedAt,
		RejectReason:     ma.RejectReason,
		CreatedAt:        ma.CreatedAt,
		UpdatedAt:        ma.UpdatedAt,
	}, nil
}
