package contract

import (
	"context"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/entity"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/specification"
)

// LeadRepository reads leads produced by the intake subsystem. The only
// mutation this service performs is the management-status write of the
// cancellation approval cascade.
type LeadRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Lead, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Lead, error)

	// UpdateManagementStatus sets an absolute status value. Idempotent by
	// construction so the approval cascade can be retried safely.
	UpdateManagementStatus(ctx context.Context, leadID string, status entity.LeadManagementStatus) error
}
