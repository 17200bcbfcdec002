package deadline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d, hh, mm, ss int) time.Time {
	return time.Date(y, m, d, hh, mm, ss, 0, time.UTC)
}

func TestBasic(t *testing.T) {
	tests := []struct {
		name        string
		deliveredAt time.Time
		want        time.Time
	}{
		{
			name:        "mid month morning delivery",
			deliveredAt: date(2024, time.January, 15, 10, 0, 0),
			want:        date(2024, time.January, 22, 23, 59, 59),
		},
		{
			name:        "time component forced to end of day",
			deliveredAt: date(2024, time.January, 15, 23, 59, 59),
			want:        date(2024, time.January, 22, 23, 59, 59),
		},
		{
			name:        "crosses month boundary",
			deliveredAt: date(2024, time.January, 28, 9, 30, 0),
			want:        date(2024, time.February, 4, 23, 59, 59),
		},
		{
			name:        "crosses year boundary",
			deliveredAt: date(2023, time.December, 29, 18, 0, 0),
			want:        date(2024, time.January, 5, 23, 59, 59),
		},
		{
			name:        "leap day delivery",
			deliveredAt: date(2024, time.February, 29, 12, 0, 0),
			want:        date(2024, time.March, 7, 23, 59, 59),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Basic(tt.deliveredAt))
		})
	}
}

func TestExtended(t *testing.T) {
	tests := []struct {
		name        string
		deliveredAt time.Time
		want        time.Time
	}{
		{
			name:        "january delivery lands on leap february end",
			deliveredAt: date(2024, time.January, 15, 10, 0, 0),
			want:        date(2024, time.February, 29, 23, 59, 59),
		},
		{
			name:        "non leap year february end",
			deliveredAt: date(2023, time.January, 15, 10, 0, 0),
			want:        date(2023, time.February, 28, 23, 59, 59),
		},
		{
			name:        "december delivery rolls into next year",
			deliveredAt: date(2023, time.December, 5, 10, 0, 0),
			want:        date(2024, time.January, 31, 23, 59, 59),
		},
		{
			name:        "first of month gives the longest window",
			deliveredAt: date(2024, time.March, 1, 0, 0, 0),
			want:        date(2024, time.April, 30, 23, 59, 59),
		},
		{
			name:        "last of month gives the shortest window",
			deliveredAt: date(2024, time.March, 31, 23, 0, 0),
			want:        date(2024, time.April, 30, 23, 59, 59),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extended(tt.deliveredAt)
			assert.Equal(t, tt.want, got)

			// The extended deadline always falls inside the month
			// immediately following the delivery month.
			next := tt.deliveredAt.AddDate(0, 1, -tt.deliveredAt.Day()+1)
			assert.Equal(t, next.Month(), got.Month())
		})
	}
}

func TestExtendedSpread(t *testing.T) {
	// End-of-next-month is not "+1 month": the window ranges roughly 15-75
	// days depending on the day of delivery.
	shortest := date(2024, time.March, 31, 0, 0, 0)
	longest := date(2024, time.January, 1, 0, 0, 0)

	assert.Equal(t, 30, int(Extended(shortest).Sub(shortest).Hours()/24))
	assert.Equal(t, 59, int(Extended(longest).Sub(longest).Hours()/24))
}

func TestPolicyBasicDays(t *testing.T) {
	p := Policy{BasicDays: 14}
	got := p.Basic(date(2024, time.June, 1, 8, 0, 0))
	assert.Equal(t, date(2024, time.June, 15, 23, 59, 59), got)
}

func TestDeadlinePreservesLocation(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	assert.NoError(t, err)

	deliveredAt := time.Date(2024, time.January, 15, 10, 0, 0, 0, loc)
	assert.Equal(t, loc, Basic(deliveredAt).Location())
	assert.Equal(t, loc, Extended(deliveredAt).Location())
}
