package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/creatorstation/creator-dashboard/internal/config"
)

func TestParseISODuration(t *testing.T) {
	assert.Equal(t, 3661.0, parseISODuration("PT1H1M1S"))
	assert.Equal(t, 754.0, parseISODuration("PT12M34S"))
	assert.Equal(t, 45.0, parseISODuration("PT45S"))
	assert.Equal(t, 7200.0, parseISODuration("PT2H"))
	assert.Equal(t, 0.0, parseISODuration("invalid"))
}

func TestYTWindow(t *testing.T) {
	now := time.Date(2025, 8, 20, 15, 30, 0, 0, config.JST)

	start, end, days := ytWindow(Period1Week, now)
	assert.Equal(t, 7, days)
	assert.Equal(t, time.Date(2025, 8, 13, 0, 0, 0, 0, config.JST), start)
	assert.Equal(t, time.Date(2025, 8, 21, 0, 0, 0, 0, config.JST), end)

	start, _, days = ytWindow(Period1Month, now)
	assert.Equal(t, 30, days)
	assert.Equal(t, time.Date(2025, 7, 21, 0, 0, 0, 0, config.JST), start)
}

func TestPostClickQuality(t *testing.T) {
	days := []DailyDataItem{
		{Views: 100},
		{Views: 300},
		{Views: 600},
	}
	gained := []int{0, 5, 10}
	shares := []int{1, 2, 3}

	postClickQuality(days, gained, shares)

	// the strongest day normalises to 100 on every component
	assert.NotNil(t, days[2].PostClickQualityScore)
	assert.Equal(t, 100.0, *days[2].PostClickQualityScore)
	assert.Equal(t, 0.0, *days[0].PostClickQualityScore)
	assert.Greater(t, *days[1].PostClickQualityScore, 0.0)
	assert.Less(t, *days[1].PostClickQualityScore, 100.0)
}

func TestPostClickQualityFlat(t *testing.T) {
	days := []DailyDataItem{{Views: 50}, {Views: 50}}
	postClickQuality(days, []int{0, 0}, []int{0, 0})

	// equal non-zero views score 100 on the view component only
	assert.Equal(t, 60.0, *days[0].PostClickQualityScore)
	assert.Equal(t, 60.0, *days[1].PostClickQualityScore)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 33.33, round2(100.0/3.0))
	assert.Equal(t, 50.0, round2(50.0))
}
