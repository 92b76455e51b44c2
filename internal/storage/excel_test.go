package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDummy(path string) error {
	return os.WriteFile(path, []byte("x"), 0644)
}

func TestBuildXReportSheets(t *testing.T) {
	analytics := map[string]any{
		"likes_count":       float64(120),
		"retweets_count":    float64(30),
		"replies_count":     float64(12),
		"impressions_count": float64(5000),
		"followers_count":   float64(800),
		"hashtag_analysis": []any{
			map[string]any{"tag": "#VTuber", "likes": float64(80)},
			map[string]any{"tag": "#歌ってみた", "likes": float64(30)},
			map[string]any{"tag": "#配信", "likes": float64(10)},
			map[string]any{"tag": "#おまけ", "likes": float64(1)},
		},
		"engagement_trend": []any{
			map[string]any{"time": "10:00", "engagement": float64(5), "impressions": float64(100)},
		},
	}
	suggestion := map[string]any{
		"summary":         "良好です",
		"key_insights":    []any{"インサイト1"},
		"recommendations": []any{"施策1", "施策2"},
	}

	f := buildXReport(analytics, suggestion, "過去1週間")
	assert.ElementsMatch(t,
		[]string{"KPIサマリー", "ハッシュタグ分析", "トレンドデータ", "改善提案"},
		f.GetSheetList())

	period, err := f.GetCellValue("KPIサマリー", "B2")
	require.NoError(t, err)
	assert.Equal(t, "過去1週間", period)

	// only the top 3 hashtags land on the sheet
	fourth, err := f.GetCellValue("ハッシュタグ分析", "B5")
	require.NoError(t, err)
	assert.Empty(t, fourth)
}

func TestBuildYouTubeReportSheets(t *testing.T) {
	analytics := map[string]any{
		"views":                   float64(1500),
		"estimatedMinutesWatched": float64(4000),
		"averageViewDuration":     float64(95.5),
		"viewerRetentionRate":     float64(48.2),
		"subscribersGained":       float64(30),
		"subscribersLost":         float64(5),
		"shares":                  float64(12),
		"dailyData": []any{
			map[string]any{
				"date": "2025-08-14", "views": float64(200),
				"estimatedMinutesWatched": float64(500),
				"netSubscribers":          float64(3),
				"averageViewDuration":     float64(90),
			},
		},
	}

	f := buildYouTubeReport(analytics, map[string]any{"summary": "s"}, "過去1週間")
	assert.ElementsMatch(t,
		[]string{"KPIサマリー", "日次トレンド", "改善提案"},
		f.GetSheetList())

	date, err := f.GetCellValue("日次トレンド", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2025-08-14", date)
}

func TestReportSavesToDisk(t *testing.T) {
	f := buildXReport(map[string]any{}, map[string]any{}, "期間")
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, f.SaveAs(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
