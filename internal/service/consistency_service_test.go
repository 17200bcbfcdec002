package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/entity"
	"github.com/gaihekitosoukuraberu/kuraberu-main-sub003/internal/repository/memory"
)

func TestConsistencyCheck(t *testing.T) {
	delivered := time.Date(2024, 1, 15, 10, 0, 0, 0, jst)

	tests := []struct {
		name       string
		siblings   map[string]entity.DeliveryDetailStatus
		wantClean  bool
		wantActive []string
	}{
		{
			name:      "sole merchant on the lead",
			siblings:  nil,
			wantClean: true,
		},
		{
			name: "siblings all wound down",
			siblings: map[string]entity.DeliveryDetailStatus{
				"M-02": entity.DeliveryStatusDeclined,
				"M-03": entity.DeliveryStatusCancellationApproved,
			},
			wantClean: true,
		},
		{
			name: "unhandled sibling is not active engagement",
			siblings: map[string]entity.DeliveryDetailStatus{
				"M-02": entity.DeliveryStatusUnhandled,
			},
			wantClean: true,
		},
		{
			name: "one sibling still working the lead",
			siblings: map[string]entity.DeliveryDetailStatus{
				"M-02": entity.DeliveryStatusQuoteSubmitted,
			},
			wantClean:  false,
			wantActive: []string{"M-02"},
		},
		{
			name: "multiple active siblings reported sorted",
			siblings: map[string]entity.DeliveryDetailStatus{
				"M-04": entity.DeliveryStatusVisited,
				"M-02": entity.DeliveryStatusInProgress,
				"M-03": entity.DeliveryStatusDeclined,
			},
			wantClean:  false,
			wantActive: []string{"M-02", "M-04"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := memory.NewFactory()
			seedPair(f, "CV-1001", "M-01", delivered, entity.DeliveryStatusInProgress)
			for merchantID, status := range tt.siblings {
				seedSibling(f, "CV-1001", merchantID, delivered, status)
			}

			res, err := NewConsistencyChecker(f).Check(context.Background(), "CV-1001", "M-01")
			require.NoError(t, err)
			assert.Equal(t, tt.wantClean, res.Clean)
			assert.Equal(t, tt.wantActive, res.ActiveMerchants)
		})
	}
}

func TestConsistencyCheckExcludesApplicantOwnRecord(t *testing.T) {
	// The applicant's own record is in_progress, which would count as
	// active engagement if it were not excluded.
	f := memory.NewFactory()
	seedPair(f, "CV-1001", "M-01", time.Date(2024, 1, 15, 10, 0, 0, 0, jst), entity.DeliveryStatusInProgress)

	res, err := NewConsistencyChecker(f).Check(context.Background(), "CV-1001", "M-01")
	require.NoError(t, err)
	assert.True(t, res.Clean)
}
