package analytics

import (
	"time"

	"github.com/creatorstation/creator-dashboard/internal/config"
)

// Supported analysis periods for the X endpoints.
const (
	Period2Hours = "2hours"
	Period1Day   = "1day"
	Period1Week  = "1week"
	Period1Month = "1month"
)

type bucketSpec struct {
	width time.Duration
	count int
	// label layout, Go reference time
	layout string
}

var bucketSpecs = map[string]bucketSpec{
	Period2Hours: {width: 10 * time.Minute, count: 12, layout: "15:04"},
	Period1Day:   {width: time.Hour, count: 24, layout: "15:04"},
	Period1Week:  {width: 24 * time.Hour, count: 7, layout: "01/02"},
	Period1Month: {width: 24 * time.Hour, count: 30, layout: "01/02"},
}

// periodWindow returns the JST start of the analysis window ending at now.
func periodWindow(period string, now time.Time) time.Time {
	now = now.In(config.JST)
	switch period {
	case Period2Hours:
		return now.Add(-2 * time.Hour)
	case Period1Week:
		return now.AddDate(0, 0, -7)
	case Period1Month:
		return now.AddDate(0, 0, -30)
	default:
		return now.AddDate(0, 0, -1)
	}
}

// bucketLabels generates chart labels from the window start, one per bucket.
func bucketLabels(period string, start time.Time) []string {
	spec := bucketSpecs[period]
	labels := make([]string, spec.count)
	for i := 0; i < spec.count; i++ {
		labels[i] = start.Add(time.Duration(i) * spec.width).In(config.JST).Format(spec.layout)
	}
	return labels
}

// bucketIndex maps a timestamp to its bucket, or -1 if outside the window.
func bucketIndex(period string, start, t time.Time) int {
	spec := bucketSpecs[period]
	if t.Before(start) {
		return -1
	}
	idx := int(t.Sub(start) / spec.width)
	if idx < 0 || idx >= spec.count {
		return -1
	}
	return idx
}
