package memory

import (
	"context"
	"sync"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/model"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/contract"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// UnitOfWork wires the memory repositories behind the unitofwork interface
// so services can be exercised without a database. Begin/Commit/Rollback
// are no-ops; the fakes apply writes immediately, which matches the
// production store's lock-free, idempotent-write model closely enough for
// unit tests.
type UnitOfWork struct {
	Leads           *LeadRepository
	DeliveryRecords *DeliveryRecordRepository
	Cancellations   *CancellationRepository
	Extensions      *ExtensionRepository
	Reasons         *ReasonRepository
	Notifications   *NotificationRepository
}

func NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{
		Leads:           NewLeadRepository(),
		DeliveryRecords: NewDeliveryRecordRepository(),
		Cancellations:   NewCancellationRepository(),
		Extensions:      NewExtensionRepository(),
		Reasons:         NewReasonRepository(),
		Notifications:   NewNotificationRepository(),
	}
}

func (u *UnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *UnitOfWork) Commit() error                   { return nil }
func (u *UnitOfWork) Rollback() error                 { return nil }

func (u *UnitOfWork) LeadRepository() contract.LeadRepository {
	return u.Leads
}

func (u *UnitOfWork) DeliveryRecordRepository() contract.DeliveryRecordRepository {
	return u.DeliveryRecords
}

func (u *UnitOfWork) CancellationRepository() contract.CancellationRepository {
	return u.Cancellations
}

func (u *UnitOfWork) ExtensionRepository() contract.ExtensionRepository {
	return u.Extensions
}

func (u *UnitOfWork) ReasonRepository() contract.ReasonRepository {
	return u.Reasons
}

func (u *UnitOfWork) NotificationRepository() repository.NotificationRepository {
	return u.Notifications
}

// Factory hands the same UnitOfWork to every caller, mirroring a shared
// store.
type Factory struct {
	UoW *UnitOfWork
}

func NewFactory() *Factory {
	return &Factory{UoW: NewUnitOfWork()}
}

func (f *Factory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.UoW
}

var _ unitofwork.RepositoryFactory = (*Factory)(nil)

// NotificationRepository is a slice-backed fake.
type NotificationRepository struct {
	mu    sync.Mutex
	Items []model.Notification
}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

func (r *NotificationRepository) CreateNotification(ctx context.Context, n *model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	r.Items = append(r.Items, *n)
	return nil
}

func (r *NotificationRepository) GetNotificationsByMerchantID(ctx context.Context, merchantID string, limit, offset int) ([]model.Notification, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []model.Notification
	for _, n := range r.Items {
		if n.MerchantID == merchantID {
			out = append(out, n)
		}
	}
	return out, int64(len(out)), nil
}

func (r *NotificationRepository) GetUnreadCount(ctx context.Context, merchantID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, n := range r.Items {
		if n.MerchantID == merchantID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *NotificationRepository) MarkAsRead(ctx context.Context, notificationID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.Items {
		if r.Items[i].ID == notificationID {
			r.Items[i].IsRead = true
		}
	}
	return nil
}

func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, merchantID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.Items {
		if r.Items[i].MerchantID == merchantID {
			r.Items[i].IsRead = true
		}
	}
	return nil
}

var _ repository.NotificationRepository = (*NotificationRepository)(nil)
