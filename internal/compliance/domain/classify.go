package domain

import "time"

const (
	// ExpiringWindowDays marks items nearing their deadline.
	ExpiringWindowDays = 30
	// CriticalWindowDays marks items urgent enough to alert on.
	CriticalWindowDays = 7
	// AlertCap truncates the alert list to the most urgent entries.
	AlertCap = 20

	// Document freshness bands, in days since creation.
	DocumentFreshDays = 90
	DocumentAgingDays = 180

	// TrendDeltaPoints is the percentage-point movement treated as a real change.
	TrendDeltaPoints = 2
)

// DaysBetween returns to-from in whole days at date precision (time of day is
// ignored).
func DaysBetween(from, to time.Time) int {
	fy, fm, fd := from.UTC().Date()
	ty, tm, td := to.UTC().Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// ClassifyExpiry buckets a record by its expiry date relative to ref. A
// missing expiry date counts as expired: an untracked deadline cannot attest
// compliance. Returns the status and days until expiry (meaningless when the
// date is absent).
func ClassifyExpiry(expiry *time.Time, ref time.Time) (ItemStatus, int) {
	if expiry == nil {
		return ItemExpired, 0
	}
	days := DaysBetween(ref, *expiry)
	switch {
	case days < 0:
		return ItemExpired, days
	case days <= ExpiringWindowDays:
		return ItemExpiring, days
	default:
		return ItemValid, days
	}
}

// ClassifyDocumentAge buckets a generated document by age since creation.
// Documents carry no expiry field; fixed 90/180-day bands stand in for one.
func ClassifyDocumentAge(createdAt, ref time.Time) ItemStatus {
	age := DaysBetween(createdAt, ref)
	switch {
	case age < DocumentFreshDays:
		return ItemValid
	case age <= DocumentAgingDays:
		return ItemExpiring
	default:
		return ItemExpired
	}
}

// ClassifyTrend compares overall percentages period over period.
func ClassifyTrend(current, previous int) Trend {
	delta := current - previous
	switch {
	case delta >= TrendDeltaPoints:
		return TrendImproving
	case delta <= -TrendDeltaPoints:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// Percentage computes compliant/total as an integer percentage, 0 when empty.
func Percentage(compliant, total int) int {
	if total <= 0 {
		return 0
	}
	return int(float64(compliant)/float64(total)*100 + 0.5)
}
