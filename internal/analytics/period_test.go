package analytics

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPickGranularity(t *testing.T) {
	from := date(2024, time.March, 1)

	tests := []struct {
		days int
		want Granularity
	}{
		{20, GranularityDay},
		{31, GranularityDay},
		{32, GranularityWeek},
		{60, GranularityWeek},
		{90, GranularityWeek},
		{91, GranularityMonth},
		{200, GranularityMonth},
	}

	for _, tt := range tests {
		got := PickGranularity(from, from.AddDate(0, 0, tt.days))
		if got != tt.want {
			t.Fatalf("span of %d days: expected granularity %v, got %v", tt.days, tt.want, got)
		}
	}
}

func TestPeriodKeyLabels(t *testing.T) {
	ts := time.Date(2024, time.January, 31, 15, 30, 0, 0, time.UTC)

	label, start := PeriodKey(ts, GranularityDay)
	if label != "2024-01-31" {
		t.Fatalf("expected day label 2024-01-31, got %s", label)
	}
	if !start.Equal(date(2024, time.January, 31)) {
		t.Fatalf("expected day start at midnight, got %v", start)
	}

	label, start = PeriodKey(ts, GranularityWeek)
	if label != "2024-W05" {
		t.Fatalf("expected week label 2024-W05, got %s", label)
	}
	// 2024-01-31 is a Wednesday; the bucket starts on Monday the 29th.
	if !start.Equal(date(2024, time.January, 29)) {
		t.Fatalf("expected week start on monday, got %v", start)
	}

	label, start = PeriodKey(ts, GranularityMonth)
	if label != "2024-01" {
		t.Fatalf("expected month label 2024-01, got %s", label)
	}
	if !start.Equal(date(2024, time.January, 1)) {
		t.Fatalf("expected month start on the 1st, got %v", start)
	}
}

func TestPeriodKeyISOWeekYearBoundary(t *testing.T) {
	// 2024-12-30 belongs to ISO week 1 of 2025.
	label, _ := PeriodKey(date(2024, time.December, 30), GranularityWeek)
	if label != "2025-W01" {
		t.Fatalf("expected 2025-W01 across the year boundary, got %s", label)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Barfer Perro Pollo", BucketPerro},
		{"Menu Gato Vaca", BucketGato},
		{"Hueso Recreativo", BucketHuesos},
		{"Complementos Pack", BucketComplementos},
		{"Complemento para perro", BucketComplementos},
		{"Big Dog Box", BucketOtros},
		{"", BucketOtros},
	}
	for _, tt := range tests {
		if got := Classify(tt.name); got != tt.want {
			t.Fatalf("Classify(%q): expected %s, got %s", tt.name, tt.want, got)
		}
	}
}
