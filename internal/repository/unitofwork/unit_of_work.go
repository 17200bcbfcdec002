package unitofwork

import (
	"context"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	LeadRepository() contract.LeadRepository
	DeliveryRecordRepository() contract.DeliveryRecordRepository
	CancellationRepository() contract.CancellationRepository
	ExtensionRepository() contract.ExtensionRepository
	ReasonRepository() contract.ReasonRepository
	NotificationRepository() repository.NotificationRepository
}
