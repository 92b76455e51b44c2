package storage

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// The report workbooks mirror the dashboard layout: a KPI summary sheet,
// trend data and the improvement suggestions.

func writeHeader(f *excelize.File, sheet string, headers []string) {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
}

func writeRow(f *excelize.File, sheet string, row int, values []any) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, v)
	}
}

func writeSuggestionSheet(f *excelize.File, suggestion map[string]any) {
	const sheet = "改善提案"
	f.NewSheet(sheet)
	writeHeader(f, sheet, []string{"項目", "内容"})

	row := 2
	if s, ok := suggestion["summary"].(string); ok {
		writeRow(f, sheet, row, []any{"サマリー", s})
		row++
	}
	for _, key := range []struct{ field, label string }{
		{"key_insights", "インサイト"},
		{"recommendations", "改善施策"},
		{"hashtag_recommendations", "推奨ハッシュタグ"},
	} {
		items, _ := suggestion[key.field].([]any)
		for _, item := range items {
			writeRow(f, sheet, row, []any{key.label, item})
			row++
		}
	}
	if s, ok := suggestion["best_posting_time"].(string); ok {
		writeRow(f, sheet, row, []any{"おすすめ投稿時間", s})
	}
}

// buildYouTubeReport lays out KPIサマリー, 日次トレンド and 改善提案 sheets.
func buildYouTubeReport(analytics, suggestion map[string]any, period string) *excelize.File {
	f := excelize.NewFile()

	const kpi = "KPIサマリー"
	f.SetSheetName("Sheet1", kpi)
	writeHeader(f, kpi, []string{"指標", "値"})
	rows := []struct {
		label string
		field string
	}{
		{"分析期間", ""},
		{"視聴回数", "views"},
		{"総再生時間(分)", "estimatedMinutesWatched"},
		{"平均視聴時間(秒)", "averageViewDuration"},
		{"視聴維持率(%)", "viewerRetentionRate"},
		{"登録者増", "subscribersGained"},
		{"登録者減", "subscribersLost"},
		{"共有数", "shares"},
	}
	for i, r := range rows {
		value := any(period)
		if r.field != "" {
			value = analytics[r.field]
		}
		writeRow(f, kpi, i+2, []any{r.label, value})
	}

	const trend = "日次トレンド"
	f.NewSheet(trend)
	writeHeader(f, trend, []string{"日付", "視聴回数", "総再生時間(分)", "登録者純増", "平均視聴時間(秒)"})
	daily, _ := analytics["dailyData"].([]any)
	for i, d := range daily {
		day, _ := d.(map[string]any)
		writeRow(f, trend, i+2, []any{
			day["date"], day["views"], day["estimatedMinutesWatched"],
			day["netSubscribers"], day["averageViewDuration"],
		})
	}

	writeSuggestionSheet(f, suggestion)
	return f
}

// buildXReport lays out KPIサマリー, ハッシュタグ分析, トレンドデータ and
// 改善提案 sheets.
func buildXReport(analytics, suggestion map[string]any, period string) *excelize.File {
	f := excelize.NewFile()

	const kpi = "KPIサマリー"
	f.SetSheetName("Sheet1", kpi)
	writeHeader(f, kpi, []string{"指標", "値"})
	rows := []struct {
		label string
		field string
	}{
		{"分析期間", ""},
		{"いいね", "likes_count"},
		{"リツイート", "retweets_count"},
		{"リプライ", "replies_count"},
		{"インプレッション", "impressions_count"},
		{"フォロワー", "followers_count"},
	}
	for i, r := range rows {
		value := any(period)
		if r.field != "" {
			value = analytics[r.field]
		}
		writeRow(f, kpi, i+2, []any{r.label, value})
	}

	const hashtags = "ハッシュタグ分析"
	f.NewSheet(hashtags)
	writeHeader(f, hashtags, []string{"順位", "ハッシュタグ", "いいね数"})
	tags, _ := analytics["hashtag_analysis"].([]any)
	for i, t := range tags {
		if i >= 3 {
			break
		}
		tag, _ := t.(map[string]any)
		writeRow(f, hashtags, i+2, []any{fmt.Sprintf("%d位", i+1), tag["tag"], tag["likes"]})
	}

	const trend = "トレンドデータ"
	f.NewSheet(trend)
	writeHeader(f, trend, []string{"時間", "エンゲージメント", "インプレッション"})
	points, _ := analytics["engagement_trend"].([]any)
	for i, p := range points {
		point, _ := p.(map[string]any)
		writeRow(f, trend, i+2, []any{point["time"], point["engagement"], point["impressions"]})
	}

	writeSuggestionSheet(f, suggestion)
	return f
}
