package implementation

import (
	"context"
	"time"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/apperror"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/entity"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/model"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/contract"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/specification"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type cancellationRepositoryImpl struct {
	db *gorm.DB
}

// NewCancellationRepository creates a new cancellation application repository
func NewCancellationRepository(db *gorm.DB) contract.CancellationRepository {
	return &cancellationRepositoryImpl{db: db}
}

// Create inserts the application inside a transaction that re-checks the
// no-active-duplicate invariant. The store has no lock manager, so the
// eligibility read cannot be trusted at write time; two near-simultaneous
// submissions are resolved here.
func (r *cancellationRepositoryImpl) Create(ctx context.Context, app *entity.CancellationApplication) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var active int64
		err := tx.Model(&model.CancellationApplication{}).
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

		return tx.Create(mapCancellationToModel(app)).Error
	})
}

func (r *cancellationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CancellationApplication, error) {
	var modelApp model.CancellationApplication
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

	return mapCancellationToEntity(&modelApp)
}

func (r *cancellationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CancellationApplication, error) {
	var modelApps []*model.CancellationApplication
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&modelApps).Error; err != nil {
		return nil, err
	}

	var apps []*entity.CancellationApplication
	for _, ma := range modelApps {
		app, err := mapCancellationToEntity(ma)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}

	return apps, nil
}

func (r *cancellationRepositoryImpl) FindActiveByPair(ctx context.Context, leadID, merchantID string) (*entity.CancellationApplication, error) {
	return r.FindOne(ctx,
		specification.ByLeadAndMerchant{LeadID: leadID, MerchantID: merchantID},
		specification.ActiveOnly{},
	)
}

// Decide performs the guarded terminal transition. The WHERE clause on the
// pending status makes the first administrator's write win; the loser sees
// zero rows affected.
func (r *cancellationRepositoryImpl) Decide(ctx context.Context, id string, status entity.ApplicationStatus, approver, rejectReason string, decidedAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.CancellationApplication{}).
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

func (r *cancellationRepositoryImpl) MarkLeadStatusUpdated(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&model.CancellationApplication{}).
		Where("id = ?", id).
		Update("lead_status_updated", true).Error
}

func mapCancellationToModel(app *entity.CancellationApplication) *model.CancellationApplication {
	return &model.CancellationApplication{
		ID:                app.ID,
		LeadID:            app.LeadID,
		MerchantID:        app.MerchantID,
		ApplicantName:     app.ApplicantName,
		ReasonCategory:    app.ReasonCategory,
		ReasonDetail:      app.ReasonDetail,
		AdditionalFields:  datatypes.NewJSONType(app.AdditionalFields),
		PhoneCount:        app.PhoneCount,
		SMSCount:          app.SMSCount,
		LastContactAt:     app.LastContactAt,
		ContactedAt:       app.ContactedAt,
		BasicDeadline:     app.BasicDeadline,
		WithinDeadline:    app.WithinDeadline,
		Status:            string(app.Status),
		Approver:          app.Approver,
		DecidedAt:         app.DecidedAt,
		RejectReason:      app.RejectReason,
		LeadStatusUpdated: app.LeadStatusUpdated,
	}
}

func mapCancellationToEntity(ma *model.CancellationApplication) (*entity.CancellationApplication, error) {
	status, err := entity.ParseApplicationStatus(ma.Status)
	if err != nil {
		return nil, err
	}
	return &entity.CancellationApplication{
		ID:                ma.ID,
		LeadID:            ma.LeadID,
		MerchantID:        ma.MerchantID,
		ApplicantName:     ma.ApplicantName,
		ReasonCategory:    ma.ReasonCategory,
		ReasonDetail:      ma.ReasonDetail,
		AdditionalFields:  ma.AdditionalFields.Data(),
		PhoneCount:        ma.PhoneCount,
		SMSCount:          ma.SMSCount,
		LastContactAt:     ma.LastContactAt,
		ContactedAt:       ma.ContactedAt,
		BasicDeadline:     ma.BasicDeadline,
		WithinDeadline:    ma.WithinDeadline,
		Status:            status,
		Approver:          ma.Approver,
		DecidedAt:         ma.DecidedAt,
		RejectReason:      ma.RejectReason,
		LeadStatusUpdated: ma.LeadStatusUpdated,
		CreatedAt:         ma.CreatedAt,
		UpdatedAt:         ma.UpdatedAt,
	}, nil
}
