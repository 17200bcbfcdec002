package repository

import (
	"context"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/model"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *model.Notification) error
	GetNotificationsByMerchantID(ctx context.Context, merchantID string, limit, offset int) ([]model.Notification, int64, error)
	GetUnreadCount(ctx context.Context, merchantID string) (int64, error)
	MarkAsRead(ctx context.Context, notificationID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, merchantID string) error
}
