package service

import (
	"context"
	"sort"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/specification"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/unitofwork"
)

// ConsistencyResult is the outcome of the cross-merchant check. A non-clean
// result means approving the cancellation would mark the lead unworked while
// the listed merchants are still pursuing it.
type ConsistencyResult struct {
	Clean           bool
	ActiveMerchants []string
}

type IConsistencyChecker interface {
	// Check enumerates sibling delivery records of the lead, excluding the
	// applying merchant, and reports the ones still actively engaged.
	Check(ctx context.Context, leadID, excludeMerchantID string) (*ConsistencyResult, error)
}

type consistencyChecker struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewConsistencyChecker(uowFactory unitofwork.RepositoryFactory) IConsistencyChecker {
	return &consistencyChecker{uowFactory: uowFactory}
}

func (c *consistencyChecker) Check(ctx context.Context, leadID, excludeMerchantID string) (*ConsistencyResult, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	records, err := uow.DeliveryRecordRepository().FindAll(ctx, specification.ByLead{LeadID: leadID})
	if err != nil {
		return nil, err
	}

	var active []string
	for _, rec := range records {
		if rec.MerchantID == excludeMerchantID {
			continue
		}
		if rec.DetailStatus.IsActiveEngagement() {
			active = append(active, rec.MerchantID)
		}
	}
	sort.Strings(active)

	return &ConsistencyResult{
		Clean:           len(active) == 0,
		ActiveMerchants: active,
	}, nil
}
