package memory

import (
	"context"
	"sync"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/entity"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/contract"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/specification"
)

// LeadRepository is a map-backed implementation used by unit tests and local
// development. Spec filters are interpreted by type; unknown specs are
// ignored.
type LeadRepository struct {
	mu    sync.RWMutex
	leads map[string]*entity.Lead
}

func NewLeadRepository() *LeadRepository {
	return &LeadRepository{leads: make(map[string]*entity.Lead)}
}

// Seed inserts or replaces a lead.
func (r *LeadRepository) Seed(lead *entity.Lead) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *lead
	r.leads[lead.ID] = &cp
}

// Get returns the stored lead for assertions.
func (r *LeadRepository) Get(id string) *entity.Lead {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if l, ok := r.leads[id]; ok {
		cp := *l
		return &cp
	}
	return nil
}

func (r *LeadRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Lead, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *LeadRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entity.Lead
	for _, l := range r.leads {
		if leadMatches(l, specs) {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *LeadRepository) UpdateManagementStatus(ctx context.Context, leadID string, status entity.LeadManagementStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.leads[leadID]; ok {
		l.ManagementStatus = status
	}
	return nil
}

func leadMatches(l *entity.Lead, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if l.ID != s.ID {
				return false
			}
		}
	}
	return true
}

var _ contract.LeadRepository = (*LeadRepository)(nil)
