package contract

import (
	"context"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/entity"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/specification"
)

// DeliveryRecordRepository reads delivery records produced when a lead is
// distributed, and applies the cancellation-approved status write of the
// approval cascade.
type DeliveryRecordRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DeliveryRecord, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DeliveryRecord, error)

	// FindByPair is the common lookup for one lead-merchant pair.
	FindByPair(ctx context.Context, leadID, merchantID string) (*entity.DeliveryRecord, error)

	// UpdateDetailStatus sets an absolute status value (idempotent).
	UpdateDetailStatus(ctx context.Context, leadID, merchantID string, status entity.DeliveryDetailStatus) error
}
