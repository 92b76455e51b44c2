package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorstation/creator-dashboard/internal/config"
	"github.com/creatorstation/creator-dashboard/internal/models"
)

func TestReportFileName(t *testing.T) {
	at := time.Date(2025, 8, 17, 15, 30, 45, 123*1e6, config.JST)

	assert.Equal(t, "YouTube_Analytics_Report_25-8-17-15-30-45-123.xlsx",
		reportFileName(models.ReportTypeYouTubeAnalytics, at))
	assert.Equal(t, "X_Analytics_Report_25-8-17-15-30-45-123.xlsx",
		reportFileName(models.ReportTypeXAnalytics, at))
	assert.Equal(t, "Report_25-8-17-15-30-45-123.xlsx",
		reportFileName("unknown", at))

	// single digit components stay unpadded, milliseconds keep three digits
	early := time.Date(2025, 1, 2, 3, 4, 5, 6*1e6, config.JST)
	assert.Equal(t, "X_Analytics_Report_25-1-2-3-4-5-006.xlsx",
		reportFileName(models.ReportTypeXAnalytics, early))
}

func TestReportSubdir(t *testing.T) {
	assert.Contains(t, reportSubdir(models.ReportTypeYouTubeAnalytics), "YouTube分析レポート登録簿")
	assert.Contains(t, reportSubdir(models.ReportTypeXAnalytics), "X分析レポート登録簿")
}

func TestUniquePathCollision(t *testing.T) {
	dir := t.TempDir()

	path, name := uniquePath(dir, "report.xlsx")
	assert.Equal(t, "report.xlsx", name)

	require.NoError(t, writeDummy(path))

	_, name2 := uniquePath(dir, "report.xlsx")
	assert.NotEqual(t, name, name2)
	assert.Contains(t, name2, "report_")
	assert.Contains(t, name2, ".xlsx")
}

func TestSaveReportBodyValidation(t *testing.T) {
	valid := SaveReportBody{
		ReportType:    models.ReportTypeXAnalytics,
		AnalyticsData: map[string]any{"likes_count": 10},
		Period:        "過去1週間",
	}
	assert.NoError(t, valid.Validate())

	badType := valid
	badType.ReportType = "tiktok_analytics"
	assert.Error(t, badType.Validate())

	noData := valid
	noData.AnalyticsData = nil
	assert.Error(t, noData.Validate())
}

func TestScheduledPostBodyValidation(t *testing.T) {
	valid := ScheduledPostBody{
		Content:           "本日21時から配信します！",
		ScheduledDatetime: "2025-08-20T21:00:00+09:00",
	}
	assert.NoError(t, valid.Validate())

	tooLong := valid
	for len([]rune(tooLong.Content)) <= 280 {
		tooLong.Content += "あ"
	}
	assert.Error(t, tooLong.Validate())
}
