package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/creatorstation/creator-dashboard/internal/config"
)

func TestPeriodWindow(t *testing.T) {
	now := time.Date(2025, 8, 20, 15, 30, 0, 0, config.JST)

	assert.Equal(t, now.Add(-2*time.Hour), periodWindow(Period2Hours, now))
	assert.Equal(t, now.AddDate(0, 0, -1), periodWindow(Period1Day, now))
	assert.Equal(t, now.AddDate(0, 0, -7), periodWindow(Period1Week, now))
	assert.Equal(t, now.AddDate(0, 0, -30), periodWindow(Period1Month, now))
}

func TestBucketLabels(t *testing.T) {
	start := time.Date(2025, 8, 20, 13, 30, 0, 0, config.JST)

	labels := bucketLabels(Period2Hours, start)
	assert.Len(t, labels, 12)
	assert.Equal(t, "13:30", labels[0])
	assert.Equal(t, "13:40", labels[1])
	assert.Equal(t, "15:20", labels[11])

	labels = bucketLabels(Period1Day, start)
	assert.Len(t, labels, 24)
	assert.Equal(t, "13:30", labels[0])
	assert.Equal(t, "14:30", labels[1])

	labels = bucketLabels(Period1Week, start)
	assert.Len(t, labels, 7)
	assert.Equal(t, "08/20", labels[0])
	assert.Equal(t, "08/26", labels[6])

	labels = bucketLabels(Period1Month, start)
	assert.Len(t, labels, 30)
}

func TestBucketIndex(t *testing.T) {
	start := time.Date(2025, 8, 20, 13, 0, 0, 0, config.JST)

	assert.Equal(t, 0, bucketIndex(Period2Hours, start, start))
	assert.Equal(t, 0, bucketIndex(Period2Hours, start, start.Add(9*time.Minute)))
	assert.Equal(t, 1, bucketIndex(Period2Hours, start, start.Add(10*time.Minute)))
	assert.Equal(t, 11, bucketIndex(Period2Hours, start, start.Add(119*time.Minute)))

	// outside the window
	assert.Equal(t, -1, bucketIndex(Period2Hours, start, start.Add(-time.Minute)))
	assert.Equal(t, -1, bucketIndex(Period2Hours, start, start.Add(2*time.Hour)))

	assert.Equal(t, 6, bucketIndex(Period1Week, start, start.Add(6*24*time.Hour)))
	assert.Equal(t, -1, bucketIndex(Period1Week, start, start.Add(7*24*time.Hour)))
}
