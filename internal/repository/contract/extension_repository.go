package contract

import (
	"context"
	"time"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/entity"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/specification"
)

// ExtensionRepository defines operations for deadline extension
// applications. Same audit-trail and uniqueness rules as cancellations, in
// an independent uniqueness domain.
type ExtensionRepository interface {
	Create(ctx context.Context, app *entity.ExtensionApplication) error

	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ExtensionApplication, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ExtensionApplication, error)

	FindActiveByPair(ctx context.Context, leadID, merchantID string) (*entity.ExtensionApplication, error)

	// FindApprovedByPair returns the approved extension for the pair, or
	// nil. The eligibility evaluator uses it to pick the effective deadline.
	FindApprovedByPair(ctx context.Context, leadID, merchantID string) (*entity.ExtensionApplication, error)

	Decide(ctx context.Context, id string, status entity.ApplicationStatus, approver, rejectReason string, decidedAt time.Time) (bool, error)
}
