package memory

import (
	"context"
	"sync"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/entity"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/contract"
)

// MerchantRepository is a map-backed directory fake.
type MerchantRepository struct {
	mu        sync.RWMutex
	merchants map[string]*entity.Merchant
}

func NewMerchantRepository() *MerchantRepository {
	return &MerchantRepository{merchants: make(map[string]*entity.Merchant)}
}

func (r *MerchantRepository) Seed(merchant *entity.Merchant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *merchant
	r.merchants[merchant.ID] = &cp
}

func (r *MerchantRepository) FindByID(ctx context.Context, merchantID string) (*entity.Merchant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if m, ok := r.merchants[merchantID]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

var _ contract.MerchantRepository = (*MerchantRepository)(nil)
