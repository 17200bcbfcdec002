package contract

import (
	"context"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/entity"
)

// ReasonRepository looks up cancellation reason categories and their
// evidence thresholds. Reference data owned by operations; read-only here.
type ReasonRepository interface {
	FindByCode(ctx context.Context, code string) (*entity.CancellationReason, error)
	FindAllActive(ctx context.Context) ([]*entity.CancellationReason, error)
}
