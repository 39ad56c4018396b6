// Package analytics derives time-bucketed sales rollups from raw order
// documents. Everything is recomputed from the store on each request; there is
// no cache or incremental view, so cost grows linearly with matching orders.
package analytics

import (
	"fmt"
	"time"
)

type Granularity int

const (
	GranularityDay Granularity = iota
	GranularityWeek
	GranularityMonth
)

// PickGranularity chooses the bucket size from the requested span. One policy
// shared by every period report: up to a month of data buckets by day, up to a
// quarter by ISO week, anything longer by month.
func PickGranularity(from, to time.Time) Granularity {
	days := int(to.Sub(from).Hours() / 24)
	switch {
	case days <= 31:
		return GranularityDay
	case days <= 90:
		return GranularityWeek
	default:
		return GranularityMonth
	}
}

// PeriodKey returns the bucket label and bucket start for a timestamp.
// Labels: "2006-01-02" for days, "2006-W04" for ISO weeks, "2006-01" for
// months.
func PeriodKey(t time.Time, g Granularity) (string, time.Time) {
	t = t.UTC()
	switch g {
	case GranularityWeek:
		year, week := t.ISOWeek()
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		monday := day.AddDate(0, 0, -((int(day.Weekday()) + 6) % 7))
		return fmt.Sprintf("%d-W%02d", year, week), monday
	case GranularityMonth:
		start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		return t.Format("2006-01"), start
	default:
		start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return t.Format("2006-01-02"), start
	}
}
