package memory

import (
	"context"
	"sync"
	"time"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/apperror"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/entity"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/contract"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/specification"
)

// ExtensionRepository is a map-backed fake mirroring the GORM write-time
// invariants.
type ExtensionRepository struct {
	mu   sync.Mutex
	apps map[string]*entity.ExtensionApplication
}

func NewExtensionRepository() *ExtensionRepository {
	return &ExtensionRepository{apps: make(map[string]*entity.ExtensionApplication)}
}

func (r *ExtensionRepository) Seed(app *entity.ExtensionApplication) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *app
	r.apps[app.ID] = &cp
}

func (r *ExtensionRepository) Create(ctx context.Context, app *entity.ExtensionApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.apps {
		if existing.LeadID == app.LeadID && existing.MerchantID == app.MerchantID && existing.Status.IsActive() {
			return apperror.ErrDuplicateApplication
		}
	}

	cp := *app
	cp.CreatedAt = time.Now()
	r.apps[app.ID] = &cp
	return nil
}

func (r *ExtensionRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ExtensionApplication, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *ExtensionRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ExtensionApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.ExtensionApplication
	for _, app := range r.apps {
		if extensionMatches(app, specs) {
			cp := *app
			out = append(out, &cp)
		}
	}
	out = windowByCreatedAt(out, func(a *entity.ExtensionApplication) time.Time { return a.CreatedAt }, specs)
	return out, nil
}

func (r *ExtensionRepository) FindActiveByPair(ctx context.Context, leadID, merchantID string) (*entity.ExtensionApplication, error) {
	return r.FindOne(ctx,
		specification.ByLeadAndMerchant{LeadID: leadID, MerchantID: merchantID},
		specification.ActiveOnly{},
	)
}

func (r *ExtensionRepository) FindApprovedByPair(ctx context.Context, leadID, merchantID string) (*entity.ExtensionApplication, error) {
	return r.FindOne(ctx,
		specification.ByLeadAndMerchant{LeadID: leadID, MerchantID: merchantID},
		specification.ByStatus{Status: entity.ApplicationStatusApproved},
	)
}

func (r *ExtensionRepository) Decide(ctx context.Context, id string, status entity.ApplicationStatus, approver, rejectReason string, decidedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	app, ok := r.apps[id]
	if !ok || app.Status != entity.ApplicationStatusPending {
		return false, nil
	}
	app.Status = status
	app.Approver = approver
	app.RejectReason = rejectReason
	app.DecidedAt = &decidedAt
	return true, nil
}

func extensionMatches(app *entity.ExtensionApplication, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if app.ID != s.ID {
				return false
			}
		case specification.ByLeadAndMerchant:
			if app.LeadID != s.LeadID || app.MerchantID != s.MerchantID {
				return false
			}
		case specification.ByLead:
			if app.LeadID != s.LeadID {
				return false
			}
		case specification.ByMerchant:
			if app.MerchantID != s.MerchantID {
				return false
			}
		case specification.ByStatus:
			if app.Status != s.Status {
				return false
			}
		case specification.ActiveOnly:
			if !app.Status.IsActive() {
				return false
			}
		}
	}
	return true
}

var _ contract.ExtensionRepository = (*ExtensionRepository)(nil)
