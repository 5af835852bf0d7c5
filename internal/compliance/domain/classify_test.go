package domain

import (
	"testing"
	"time"
)

var ref = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func datePtr(t time.Time) *time.Time { return &t }

func TestClassifyExpiry(t *testing.T) {
	tests := []struct {
		name     string
		expiry   *time.Time
		want     ItemStatus
		wantDays int
	}{
		{name: "missing expiry is expired", expiry: nil, want: ItemExpired, wantDays: 0},
		{name: "yesterday is expired", expiry: datePtr(ref.AddDate(0, 0, -1)), want: ItemExpired, wantDays: -1},
		{name: "today is expiring", expiry: datePtr(ref), want: ItemExpiring, wantDays: 0},
		{name: "thirty days out is expiring", expiry: datePtr(ref.AddDate(0, 0, 30)), want: ItemExpiring, wantDays: 30},
		{name: "thirty one days out is valid", expiry: datePtr(ref.AddDate(0, 0, 31)), want: ItemValid, wantDays: 31},
		{name: "time of day ignored", expiry: datePtr(ref.AddDate(0, 0, 30).Add(11 * time.Hour)), want: ItemExpiring, wantDays: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, days := ClassifyExpiry(tt.expiry, ref)
			if status != tt.want || days != tt.wantDays {
				t.Fatalf("ClassifyExpiry = (%q, %d), want (%q, %d)", status, days, tt.want, tt.wantDays)
			}
		})
	}
}

func TestClassifyDocumentAge(t *testing.T) {
	tests := []struct {
		name    string
		ageDays int
		want    ItemStatus
	}{
		{name: "fresh", ageDays: 0, want: ItemValid},
		{name: "just under ninety days", ageDays: 89, want: ItemValid},
		{name: "ninety days is aging", ageDays: 90, want: ItemExpiring},
		{name: "one eighty days is aging", ageDays: 180, want: ItemExpiring},
		{name: "over one eighty is stale", ageDays: 181, want: ItemExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			createdAt := ref.AddDate(0, 0, -tt.ageDays)
			if got := ClassifyDocumentAge(createdAt, ref); got != tt.want {
				t.Fatalf("ClassifyDocumentAge(%d days) = %q, want %q", tt.ageDays, got, tt.want)
			}
		})
	}
}

func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		current  int
		previous int
		want     Trend
	}{
		{current: 82, previous: 80, want: TrendImproving},
		{current: 78, previous: 80, want: TrendDeclining},
		{current: 81, previous: 80, want: TrendStable},
		{current: 79, previous: 80, want: TrendStable},
		{current: 80, previous: 80, want: TrendStable},
		{current: 100, previous: 0, want: TrendImproving},
	}
	for _, tt := range tests {
		if got := ClassifyTrend(tt.current, tt.previous); got != tt.want {
			t.Fatalf("ClassifyTrend(%d, %d) = %q, want %q", tt.current, tt.previous, got, tt.want)
		}
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		compliant int
		total     int
		want      int
	}{
		{compliant: 0, total: 0, want: 0},
		{compliant: 0, total: 10, want: 0},
		{compliant: 8, total: 10, want: 80},
		{compliant: 1, total: 3, want: 33},
		{compliant: 2, total: 3, want: 67},
		{compliant: 10, total: 10, want: 100},
	}
	for _, tt := range tests {
		if got := Percentage(tt.compliant, tt.total); got != tt.want {
			t.Fatalf("Percentage(%d, %d) = %d, want %d", tt.compliant, tt.total, got, tt.want)
		}
	}
}

func TestParsePeriod(t *testing.T) {
	if p, ok := ParsePeriod("monthly"); !ok || p != PeriodMonthly {
		t.Fatalf("expected monthly, got (%q, %v)", p, ok)
	}
	if p, ok := ParsePeriod("quarterly"); !ok || p != PeriodQuarterly {
		t.Fatalf("expected quarterly, got (%q, %v)", p, ok)
	}
	if _, ok := ParsePeriod("weekly"); ok {
		t.Fatalf("expected weekly to be rejected")
	}
	if PeriodMonthly.Months() != 1 || PeriodQuarterly.Months() != 3 {
		t.Fatalf("unexpected lookback lengths")
	}
}
