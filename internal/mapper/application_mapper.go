package mapper

import (
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/dto"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/entity"
)

// ToAdminCancellationListResponse maps an application to its approval-queue
// row.
func ToAdminCancellationListResponse(app *entity.CancellationApplication) *dto.AdminCancellationListResponse {
	if app == nil {
		return nil
	}
	return &dto.AdminCancellationListResponse{
		Id:             app.ID,
		LeadId:         app.LeadID,
		MerchantId:     app.MerchantID,
		ApplicantName:  app.ApplicantName,
		ReasonCategory: app.ReasonCategory,
		ReasonDetail:   app.ReasonDetail,
		Fields:         app.AdditionalFields,
		PhoneCount:     app.PhoneCount,
		SmsCount:       app.SMSCount,
		LastContactAt:  app.LastContactAt,
		BasicDeadline:  app.BasicDeadline,
		WithinDeadline: app.WithinDeadline,
		Status:         string(app.Status),
		Approver:       app.Approver,
		DecidedAt:      app.DecidedAt,
		RejectReason:   app.RejectReason,
		CreatedAt:      app.CreatedAt,
	}
}

// ToAdminExtensionListResponse maps an extension application to its
// approval-queue row.
func ToAdminExtensionListResponse(app *entity.ExtensionApplication) *dto.AdminExtensionListResponse {
	if app == nil {
		return nil
	}
	return &dto.AdminExtensionListResponse{
		Id:               app.ID,
		LeadId:           app.LeadID,
		MerchantId:       app.MerchantID,
		ApplicantName:    app.ApplicantName,
		ContactedAt:      app.ContactedAt,
		AppointmentAt:    app.AppointmentAt,
		Reason:           app.Reason,
		BasicDeadline:    app.BasicDeadline,
		ExtendedDeadline: app.ExtendedDeadline,
		Status:           string(app.Status),
		Approver:         app.Approver,
		DecidedAt:        app.DecidedAt,
		RejectReason:     app.RejectReason,
		CreatedAt:        app.CreatedAt,
	}
}
