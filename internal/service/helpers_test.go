package service

import (
	"context"
	"time"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/entity"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/memory"
)

// nopLogger keeps test output quiet.
type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// capturingQueue records repair payloads instead of publishing them.
type capturingQueue struct {
	published [][]byte
	failWith  error
}

func (q *capturingQueue) Publish(ctx context.Context, payload []byte) error {
	if q.failWith != nil {
		return q.failWith
	}
	q.published = append(q.published, payload)
	return nil
}

// capturingEvents records decision events emitted by the workflow engine.
type capturingEvents struct {
	approvedCancellations []string
	rejectedCancellations []string
	approvedExtensions    []string
	rejectedExtensions    []string
	lastReason            string
	lastExtendedDeadline  *time.Time
}

func (c *capturingEvents) PublishCancellationApproved(ctx context.Context, app *entity.CancellationApplication) {
	c.approvedCancellations = append(c.approvedCancellations, app.ID)
}

func (c *capturingEvents) PublishCancellationRejected(ctx context.Context, app *entity.CancellationApplication, reason string) {
	c.rejectedCancellations = append(c.rejectedCancellations, app.ID)
	c.lastReason = reason
}

func (c *capturingEvents) PublishExtensionApproved(ctx context.Context, app *entity.ExtensionApplication) {
	c.approvedExtensions = append(c.approvedExtensions, app.ID)
	dl := app.ExtendedDeadline
	c.lastExtendedDeadline = &dl
}

func (c *capturingEvents) PublishExtensionRejected(ctx context.Context, app *entity.ExtensionApplication, reason string) {
	c.rejectedExtensions = append(c.rejectedExtensions, app.ID)
	c.lastReason = reason
}

// jst is the business timezone used throughout the fixtures.
var jst = time.FixedZone("JST", 9*60*60)

// seedPair registers a lead delivered to one merchant with an open
// follow-up status.
func seedPair(f *memory.Factory, leadID, merchantID string, deliveredAt time.Time, status entity.DeliveryDetailStatus) {
	f.UoW.Leads.Seed(&entity.Lead{
		ID:               leadID,
		DeliveredAt:      deliveredAt,
		MerchantIDs:      []string{merchantID},
		ManagementStatus: entity.LeadStatusDelivered,
	})
	f.UoW.DeliveryRecords.Seed(&entity.DeliveryRecord{
		LeadID:       leadID,
		MerchantID:   merchantID,
		DeliveredAt:  deliveredAt,
		DetailStatus: status,
	})
}

// seedSibling adds another delivery record for the same lead.
func seedSibling(f *memory.Factory, leadID, merchantID string, deliveredAt time.Time, status entity.DeliveryDetailStatus) {
	f.UoW.DeliveryRecords.Seed(&entity.DeliveryRecord{
		LeadID:       leadID,
		MerchantID:   merchantID,
		DeliveredAt:  deliveredAt,
		DetailStatus: status,
	})
}
