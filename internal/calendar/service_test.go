package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorstation/creator-dashboard/internal/config"
)

func TestClassifyEvent(t *testing.T) {
	// description prefix wins over title markers
	assert.Equal(t, TypeXAutoPost, ClassifyEvent("youtube配信", "[種類: X自動投稿]\n詳細"))

	assert.Equal(t, TypeImportant, ClassifyEvent("ミーティング #重要", ""))
	assert.Equal(t, TypeYouTubeLive, ClassifyEvent("YouTube歌枠", ""))
	assert.Equal(t, TypeYouTubeLive, ClassifyEvent("youtubeコラボ", ""))
	assert.Equal(t, TypeXAutoPost, ClassifyEvent("Xに投稿", ""))
	assert.Equal(t, TypeOther, ClassifyEvent("歯医者", ""))

	// lowercase x is not the X marker
	assert.Equal(t, TypeOther, ClassifyEvent("box整理", ""))

	// unknown type in the prefix falls through to title rules
	assert.Equal(t, TypeOther, ClassifyEvent("予定", "[種類: 謎]\n詳細"))
}

func TestTypeColors(t *testing.T) {
	assert.Equal(t, "5", typeColors[TypeYouTubeLive])
	assert.Equal(t, "9", typeColors[TypeXAutoPost])
	assert.Equal(t, "11", typeColors[TypeImportant])
	assert.Equal(t, "8", typeColors[TypeOther])
}

func TestParseJSTDateOnly(t *testing.T) {
	// all-day events carry a bare date, which must still parse so the
	// upcoming filter can drop past entries
	got, err := parseJST("2025-08-14")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 8, 14, 0, 0, 0, 0, config.JST), got)

	_, err = parseJST("14/08/2025")
	assert.Error(t, err)
}

func TestNormalizeTimesOvernight(t *testing.T) {
	start, end, err := normalizeTimes("2025-08-20T23:00:00", "2025-08-20T01:00:00")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 8, 20, 23, 0, 0, 0, config.JST), start)
	// end rolls to the next day
	assert.Equal(t, time.Date(2025, 8, 21, 1, 0, 0, 0, config.JST), end)
}

func TestNormalizeTimesRegular(t *testing.T) {
	start, end, err := normalizeTimes("2025-08-20T10:00:00", "2025-08-20T12:00:00")
	require.NoError(t, err)
	assert.True(t, end.After(start))
	assert.Equal(t, 2*time.Hour, end.Sub(start))
}

func TestNormalizeTimesRejectsGarbage(t *testing.T) {
	_, _, err := normalizeTimes("tomorrow", "2025-08-20T12:00:00")
	assert.Error(t, err)
}

func TestStrippedDescription(t *testing.T) {
	assert.Equal(t, "詳細テキスト", strippedDescription("[種類: その他]\n詳細テキスト"))
	assert.Equal(t, "素のテキスト", strippedDescription("素のテキスト"))
}

func TestEventBodyValidation(t *testing.T) {
	valid := EventBody{
		Title: "配信",
		Start: "2025-08-20T20:00:00",
		End:   "2025-08-20T22:00:00",
		Type:  TypeYouTubeLive,
	}
	assert.NoError(t, valid.Validate())

	badType := valid
	badType.Type = "飲み会"
	assert.Error(t, badType.Validate())
}
