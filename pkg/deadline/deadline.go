package deadline

import "time"

// DefaultBasicDays is the standard submission window after delivery.
const DefaultBasicDays = 7

// Policy holds the injected deadline parameters. The zero value is not
// usable; construct via DefaultPolicy or from config.
type Policy struct {
	BasicDays int
}

// DefaultPolicy returns the standard 7-day policy.
func DefaultPolicy() Policy {
	return Policy{BasicDays: DefaultBasicDays}
}

// Basic returns the universal submission deadline for cancellation and
// extension requests: deliveredAt + BasicDays, at 23:59:59 of that day.
func (p Policy) Basic(deliveredAt time.Time) time.Time {
	d := deliveredAt.AddDate(0, 0, p.BasicDays)
	return endOfDay(d)
}

// Extended returns the widened deadline granted by an approved extension:
// the last calendar day of the month following deliveredAt's month, at
// 23:59:59. Depending on the day of delivery this spans 15 to 75 days.
func (p Policy) Extended(deliveredAt time.Time) time.Time {
	y, m, _ := deliveredAt.Date()
	// Day 0 of month m+2 normalizes to the last day of month m+1.
	d := time.Date(y, m+2, 0, 0, 0, 0, 0, deliveredAt.Location())
	return endOfDay(d)
}

// Basic computes the basic deadline under the default policy.
func Basic(deliveredAt time.Time) time.Time {
	return DefaultPolicy().Basic(deliveredAt)
}

// Extended computes the extended deadline under the default policy.
func Extended(deliveredAt time.Time) time.Time {
	return DefaultPolicy().Extended(deliveredAt)
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}
