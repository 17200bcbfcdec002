package memory

import (
	"context"
	"sync"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/entity"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/contract"
)

// ReasonRepository is a map-backed reference-data fake.
type ReasonRepository struct {
	mu      sync.RWMutex
	reasons map[string]*entity.CancellationReason
}

func NewReasonRepository() *ReasonRepository {
	return &ReasonRepository{reasons: make(map[string]*entity.CancellationReason)}
}

func (r *ReasonRepository) Seed(reason *entity.CancellationReason) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *reason
	r.reasons[reason.Code] = &cp
}

func (r *ReasonRepository) FindByCode(ctx context.Context, code string) (*entity.CancellationReason, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if reason, ok := r.reasons[code]; ok {
		cp := *reason
		return &cp, nil
	}
	return nil, nil
}

func (r *ReasonRepository) FindAllActive(ctx context.Context) ([]*entity.CancellationReason, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.CancellationReason
	for _, reason := range r.reasons {
		if reason.Active {
			cp := *reason
			out = append(out, &cp)
		}
	}
	return out, nil
}

var _ contract.ReasonRepository = (*ReasonRepository)(nil)
