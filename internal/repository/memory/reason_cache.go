package memory

import (
	"context"
	"time"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/entity"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

const allActiveKey = "__all_active"

// CachedReasonRepository decorates a ReasonRepository with a TTL memory
// cache. Reason categories are reference data that changes rarely but is
// read on every eligibility evaluation.
type CachedReasonRepository struct {
	inner contract.ReasonRepository
	cache *cache.Cache
}

func NewCachedReasonRepository(inner contract.ReasonRepository, ttl time.Duration) *CachedReasonRepository {
	c := cache.New(ttl, 10*time.Minute)
	return &CachedReasonRepository{
		inner: inner,
		cache: c,
	}
}

func (r *CachedReasonRepository) FindByCode(ctx context.Context, code string) (*entity.CancellationReason, error) {
	if x, found := r.cache.Get(code); found {
		return x.(*entity.CancellationReason), nil
	}

	reason, err := r.inner.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if reason != nil {
		r.cache.Set(code, reason, cache.DefaultExpiration)
	}
	return reason, nil
}

func (r *CachedReasonRepository) FindAllActive(ctx context.Context) ([]*entity.CancellationReason, error) {
	if x, found := r.cache.Get(allActiveKey); found {
		return x.([]*entity.CancellationReason), nil
	}

	reasons, err := r.inner.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}
	r.cache.Set(allActiveKey, reasons, cache.DefaultExpiration)
	return reasons, nil
}
