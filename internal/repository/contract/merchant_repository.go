package contract

import (
	"context"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/entity"
)

// MerchantRepository resolves contractor directory entries, mainly for
// notification delivery addresses.
type MerchantRepository interface {
	FindByID(ctx context.Context, merchantID string) (*entity.Merchant, error)
}
