package memory

import (
	"context"
	"sync"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/entity"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/contract"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/specification"
)

// DeliveryRecordRepository is a map-backed fake keyed by lead id + merchant
// id.
type DeliveryRecordRepository struct {
	mu       sync.RWMutex
	records  []*entity.DeliveryRecord
	failNext error
}

func NewDeliveryRecordRepository() *DeliveryRecordRepository {
	return &DeliveryRecordRepository{}
}

func (r *DeliveryRecordRepository) Seed(record *entity.DeliveryRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *record
	r.records = append(r.records, &cp)
}

func (r *DeliveryRecordRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DeliveryRecord, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *DeliveryRecordRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DeliveryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.DeliveryRecord
	for _, rec := range r.records {
		if deliveryMatches(rec, specs) {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *DeliveryRecordRepository) FindByPair(ctx context.Context, leadID, merchantID string) (*entity.DeliveryRecord, error) {
	return r.FindOne(ctx, specification.ByLeadAndMerchant{LeadID: leadID, MerchantID: merchantID})
}

// FailNextUpdate makes the next UpdateDetailStatus call return err, for
// exercising the cascade repair path.
func (r *DeliveryRecordRepository) FailNextUpdate(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failNext = err
}

func (r *DeliveryRecordRepository) UpdateDetailStatus(ctx context.Context, leadID, merchantID string, status entity.DeliveryDetailStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return err
	}
	for _, rec := range r.records {
		if rec.LeadID == leadID && rec.MerchantID == merchantID {
			rec.DetailStatus = status
		}
	}
	return nil
}

func deliveryMatches(rec *entity.DeliveryRecord, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByLeadAndMerchant:
			if rec.LeadID != s.LeadID || rec.MerchantID != s.MerchantID {
				return false
			}
		case specification.ByLead:
			if rec.LeadID != s.LeadID {
				return false
			}
		case specification.ByMerchant:
			if rec.MerchantID != s.MerchantID {
				return false
			}
		}
	}
	return true
}

var _ contract.DeliveryRecordRepository = (*DeliveryRecordRepository)(nil)
