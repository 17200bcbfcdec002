package mapper

import (
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/dto"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/model"
)

func ToNotificationListResponse(n model.Notification) dto.NotificationListResponse {
	return dto.NotificationListResponse{
		Id:        n.ID,
		EventType: n.EventType,
		EntityId:  n.EntityID,
		Subject:   n.Subject,
		ShortBody: n.ShortBody,
		LongBody:  n.LongBody,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

func ToNotificationListResponses(notifications []model.Notification) []dto.NotificationListResponse {
	out := make([]dto.NotificationListResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, ToNotificationListResponse(n))
	}
	return out
}
