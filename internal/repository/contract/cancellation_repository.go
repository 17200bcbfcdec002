package contract

import (
	"context"
	"time"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/entity"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/specification"
)

// CancellationRepository defines operations for cancellation applications.
// Rows are never deleted; rejected applications remain as audit history.
type CancellationRepository interface {
	// Create inserts a new application. The no-active-duplicate invariant is
	// re-validated at write time; a racing submission loses with
	// apperror.ErrDuplicateApplication.
	Create(ctx context.Context, app *entity.CancellationApplication) error

	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CancellationApplication, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CancellationApplication, error)

	// FindActiveByPair returns the pending or approved application for the
	// pair, or nil.
	FindActiveByPair(ctx context.Context, leadID, merchantID string) (*entity.CancellationApplication, error)

	// Decide transitions a pending application to approved or rejected with
	// a guarded update (WHERE status = 'pending'). Returns false when the
	// application was no longer pending, so the first decision wins.
	Decide(ctx context.Context, id string, status entity.ApplicationStatus, approver, rejectReason string, decidedAt time.Time) (bool, error)

	// MarkLeadStatusUpdated records that the approval cascade reached the
	// lead (idempotent set-to-true).
	MarkLeadStatusUpdated(ctx context.Context, id string) error
}
